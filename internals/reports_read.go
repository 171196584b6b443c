package internals

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var headLineRegex *regexp.Regexp
var tailLineRegex *regexp.Regexp
var lineSpanRegex *regexp.Regexp

func init() {
	headLineRegex = regexp.MustCompilePOSIX(`# +([0-9.]+(\.[0-9.]+){0,2}) +([0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}) +([-_a-zA-Z0-9]+) +([0-9]+) +([^\r\n]+)`)
	tailLineRegex = regexp.MustCompilePOSIX(`([0-9a-fA-F]+) +([^ \r\n]+) +([0-9a-fA-F]+) +([^ \r\n]+) +([0-9]+(\.[0-9]+)?)`)
	lineSpanRegex = regexp.MustCompilePOSIX(`^(.*):([0-9]+)-([0-9]+)$`)
}

// NewReportReader creates a file descriptor for filepath and returns a
// Report instance wrapping it, ready for repeated Iterate calls.
func NewReportReader(filepath string) (*Report, error) {
	reportFile := new(Report)
	reportFile.FilePath = filepath
	if filepath == "-" {
		reportFile.File = os.Stdin
	} else {
		fd, err := os.Open(filepath)
		if err != nil {
			return nil, err
		}
		reportFile.File = fd
	}
	return reportFile, nil
}

// Iterate reads and parses the next tail line (one reported clone) in the
// file, transparently consuming the head line and any comment lines first.
func (r *Report) Iterate() (ReportTailLine, error) {
	tail := ReportTailLine{}
	tailLineRead := false

	for {
		eofMet := false
		var cache [1]byte
		var buffer [512]byte
		bufferIndex := 0
		for {
			_, err := r.File.Read(cache[:])
			if err != io.EOF {
				if err != nil {
					return tail, err
				}
				if bufferIndex > 0 || (cache[0] != '\n' && cache[0] != '\r') {
					buffer[bufferIndex] = cache[0]
					bufferIndex++
					if bufferIndex == 512 {
						return tail, fmt.Errorf(`line too long, please report this issue to the developers`)
					}
				}
			} else {
				eofMet = true
				break
			}
			if bufferIndex > 0 && cache[0] == '\n' {
				break
			}
		}

		if bufferIndex == 0 && eofMet {
			return tail, io.EOF
		}

		if !utf8.Valid(buffer[0:bufferIndex]) {
			return tail, fmt.Errorf(`non-UTF-8 data found in report file, but report files must be UTF-8 encoded`)
		}

		if buffer[0] == '#' && r.Head.HashAlgorithm == "" {
			groups := headLineRegex.FindSubmatch(buffer[0:bufferIndex])
			if len(groups) == 0 {
				return tail, fmt.Errorf(`could not parse head line`)
			}

			versionNumber, err := ParseVersionNumber(string(groups[1]))
			if err != nil {
				return tail, err
			}

			timestamp, err := ParseTimestamp(string(groups[3]))
			if err != nil {
				return tail, err
			}

			hashAlgorithm := strings.ToLower(string(groups[4]))
			if _, err := AlgorithmByName(hashAlgorithm); err != nil {
				return tail, fmt.Errorf(`unsupported hash algorithm '%s' specified`, hashAlgorithm)
			}

			sourceCount, err := strconv.Atoi(string(groups[5]))
			if err != nil {
				return tail, fmt.Errorf(`source count is invalid: %s`, err)
			}

			r.Head.Version = versionNumber
			r.Head.Timestamp = timestamp
			r.Head.HashAlgorithm = hashAlgorithm
			r.Head.SourceCount = sourceCount
			r.Head.BasePath = string(groups[6])

			return r.Iterate() // go to next line

		} else if buffer[0] == '#' {
			// comment line, nothing to do

		} else {
			groups := tailLineRegex.FindSubmatch(buffer[0:bufferIndex])
			if len(groups) == 0 {
				return tail, fmt.Errorf(`could not parse tail line '%s'`, buffer[0:bufferIndex])
			}

			firstDigest, err := hex.DecodeString(string(groups[1]))
			if err != nil {
				return tail, fmt.Errorf(`could not decode hexadecimal digest '%s'`, groups[1])
			}
			firstPath, firstLines, err := parseLineSpan(string(groups[2]))
			if err != nil {
				return tail, err
			}

			secondDigest, err := hex.DecodeString(string(groups[3]))
			if err != nil {
				return tail, fmt.Errorf(`could not decode hexadecimal digest '%s'`, groups[3])
			}
			secondPath, secondLines, err := parseLineSpan(string(groups[4]))
			if err != nil {
				return tail, err
			}

			distance, err := strconv.ParseFloat(string(groups[5]), 64)
			if err != nil {
				return tail, fmt.Errorf(`distance is invalid: %s`, err)
			}

			tail.FirstDigest = firstDigest
			tail.FirstPath = firstPath
			tail.FirstLines = firstLines
			tail.SecondDigest = secondDigest
			tail.SecondPath = secondPath
			tail.SecondLines = secondLines
			tail.Distance = distance
			tailLineRead = true
		}

		if tailLineRead {
			break
		}
	}

	return tail, nil
}

// parseLineSpan splits an encoded "path:start-end" location back into its
// path and inclusive line bounds.
func parseLineSpan(encoded string) (path string, lines []int, err error) {
	groups := lineSpanRegex.FindStringSubmatch(encoded)
	if groups == nil {
		return "", nil, fmt.Errorf(`could not parse location '%s'`, encoded)
	}
	start, err := strconv.Atoi(groups[2])
	if err != nil {
		return "", nil, err
	}
	end, err := strconv.Atoi(groups[3])
	if err != nil {
		return "", nil, err
	}
	path, err = byteDecode(groups[1])
	if err != nil {
		return "", nil, err
	}
	return path, []int{start, end}, nil
}

// Close closes the report's underlying file descriptor, if it owns one.
func (r *Report) Close() {
	if r.File != os.Stdin && r.File != os.Stdout && r.File != os.Stderr {
		r.File.Close()
	}
}

// ParseVersionNumber takes a Semantic Versioning version number and parses
// it into an array of integers or returns an error. Compare with
// https://semver.org/
func ParseVersionNumber(version string) ([3]uint16, error) {
	parts := strings.SplitN(version, ".", 3)
	var numbers [3]uint16
	for i, part := range parts {
		val, err := strconv.Atoi(part)
		if err != nil {
			return numbers, err
		}
		if val < 0 || val > 65535 {
			return numbers, fmt.Errorf(`version number specifier outside of range, 0 ≤ %d ≤ 65535 unsatisfied`, val)
		}
		numbers[i] = uint16(val)
	}
	return numbers, nil
}

// ParseTimestamp takes a timestamp as string and returns a time.Time
// instance or an error.
func ParseTimestamp(timestamp string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05", timestamp)
}
