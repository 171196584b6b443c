package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/meisterluk/clonecore/internals"
)

func TestHashAlgosCommandPlainListsDefault(t *testing.T) {
	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &HashAlgosCommand{}

	code, err := cmd.Run(w, w)
	if err != nil || code != 0 {
		t.Fatalf(`unexpected (code=%d, err=%s)`, code, err)
	}
	defaultName := internals.HashAlgos{}.Default().Instance().Name()
	if !strings.Contains(out.String(), defaultName+" *") {
		t.Errorf(`expected default algorithm %q marked with " *" in output:\n%s`, defaultName, out.String())
	}
}

func TestHashAlgosCommandJSON(t *testing.T) {
	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &HashAlgosCommand{JSONOutput: true}

	code, err := cmd.Run(w, w)
	if err != nil || code != 0 {
		t.Fatalf(`unexpected (code=%d, err=%s)`, code, err)
	}
	var result HashAlgosJSONResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf(`invalid JSON output: %s`, err)
	}
	if len(result.SupHashAlgos) == 0 {
		t.Errorf(`expected a non-empty list of supported algorithms`)
	}
}

func TestHashAlgosCommandCheckSupportSucceeds(t *testing.T) {
	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &HashAlgosCommand{CheckSupport: "xxhash"}

	code, err := cmd.Run(w, w)
	if err != nil {
		t.Fatalf(`unexpected error: %s`, err)
	}
	if code != 0 {
		t.Errorf(`expected exit code 0 for a supported algorithm, got %d`, code)
	}
}

func TestHashAlgosCommandCheckSupportFails(t *testing.T) {
	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &HashAlgosCommand{CheckSupport: "not-a-real-algorithm"}

	code, err := cmd.Run(w, w)
	if err != nil {
		t.Fatalf(`unexpected error: %s`, err)
	}
	if code != 100 {
		t.Errorf(`expected exit code 100 for an unsupported algorithm, got %d`, code)
	}
}

func TestHashAlgosCommandConfigOutput(t *testing.T) {
	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &HashAlgosCommand{ConfigOutput: true, CheckSupport: "xxhash"}

	code, err := cmd.Run(w, w)
	if err != nil || code != 0 {
		t.Fatalf(`unexpected (code=%d, err=%s)`, code, err)
	}
	var got HashAlgosCommand
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf(`expected --config to emit the command struct as JSON, got: %s`, err)
	}
	if got.CheckSupport != "xxhash" {
		t.Errorf(`expected echoed CheckSupport "xxhash", got %q`, got.CheckSupport)
	}
}
