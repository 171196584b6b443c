package internals

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// contains tests whether the given slice contains a particular string item
func contains(set []string, item string) bool {
	for _, element := range set {
		if item == element {
			return true
		}
	}
	return false
}

// byteEncode implements the path byte-encoding used by the report line format
func byteEncode(basename string) string {
	if utf8.ValidString(basename) {
		// only individual characters need to be encoded
		re := regexp.MustCompile(`\\{1,}`)
		basename = re.ReplaceAllString(basename, `\$0`)
		basename = strings.Replace(basename, "\x0A", `\x0A`, -1)
		basename = strings.Replace(basename, "\x0B", `\x0B`, -1)
		basename = strings.Replace(basename, "\x0C", `\x0C`, -1)
		basename = strings.Replace(basename, "\x0D", `\x0D`, -1)
		basename = strings.Replace(basename, "\x85", `\x85`, -1)
		basename = strings.Replace(basename, "\xE2\x80\xA8", `\xE2\x80\xA8`, -1) // U+2028
		basename = strings.Replace(basename, "\xE2\x80\xA9", `\xE2\x80\xA9`, -1) // U+2029
		return basename
	}

	// encode the entire string
	s := []byte(basename)
	encoded := make([]byte, 0, 4*len(s))
	for _, b := range s {
		twoChars := strings.ToUpper(hex.EncodeToString([]byte{b}))
		encoded = append(encoded, '\\', 'x', twoChars[0], twoChars[1])
	}
	return string(encoded)
}

// byteDecode implements the inverse operation of byteEncode.
func byteDecode(basename string) (string, error) {
	if !utf8.ValidString(basename) {
		return "", fmt.Errorf(`byteDecode requires a valid utf-8 string as argument, got '%q'`, basename)
	}
	var err error

	// a run of several backslashes is an encoded backslash run (one extra
	// backslash prepended); a single backslash starts an escaped character
	re := regexp.MustCompile(`\\+(x0A|x0B|x0C|x0D|x85|xE2\\x80\\xA8|xE2\\x80\\xA9)?`)
	basename = re.ReplaceAllStringFunc(basename, func(match string) string {
		escape := strings.TrimLeft(match, `\`)
		if len(match)-len(escape) > 1 {
			return match[1:]
		} else if escape == "" {
			return match
		}
		s, e := hex.DecodeString(strings.NewReplacer(`\`, "", "x", "").Replace(escape))
		if e != nil {
			err = e
		}
		return string(s)
	})
	if err != nil {
		return "", fmt.Errorf(`byteDecode got an invalid argument: '%s'`, err.Error())
	}

	return basename, nil
}
