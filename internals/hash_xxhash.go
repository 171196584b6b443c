package internals

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// XXHash implements Yann Collet's xxHash (64-bit variant), adopted as
// clonecore's default fast structural hash for D-cup bucketing.
type XXHash struct {
	h   *xxhash.Digest
	sum []byte
}

// NewXXHash returns a properly initialized XXHash instance.
func NewXXHash() *XXHash {
	c := new(XXHash)
	c.h = xxhash.New()
	return c
}

// Size returns the number of bytes of the hashsum.
func (c *XXHash) Size() int {
	return 8
}

// ReadFile provides an interface to update the hash state with the
// content of an entire file.
func (c *XXHash) ReadFile(filepath string) error {
	fd, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer fd.Close()

	_, err = io.Copy(c.h, fd)
	if err != nil {
		return err
	}
	c.sum = nil
	return nil
}

// ReadBytes provides an interface to update the hash state with
// individual bytes.
func (c *XXHash) ReadBytes(data []byte) error {
	_, err := c.h.Write(data)
	c.sum = nil
	return err
}

// Reset resets the hash state to its initial state.
func (c *XXHash) Reset() {
	c.h.Reset()
	c.sum = nil
}

// Digest returns the digest resulting from the hash state.
func (c *XXHash) Digest() []byte {
	if c.sum == nil {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, c.h.Sum64())
		c.sum = buf
	}
	return c.sum
}

// HexDigest returns the hash state digest encoded in a hexadecimal
// string.
func (c *XXHash) HexDigest() string {
	return hex.EncodeToString(c.Digest())
}

// Name returns the hash algorithm's name.
func (c *XXHash) Name() string {
	return "xxhash"
}
