package internals

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// NewReportWriter returns a freshly-initialized Report instance ready for
// HeadLine followed by any number of TailLine calls.
func NewReportWriter(filepath string) (*Report, error) {
	report := new(Report)

	if filepath == "-" {
		report.File = os.Stdout
	} else {
		fd, err := os.Create(filepath)
		if err != nil {
			return report, err
		}
		report.File = fd
	}
	report.FilePath = filepath

	return report, nil
}

// HeadLine writes the report's head line.
func (r *Report) HeadLine(hashAlgorithm string, sourceCount int, basePath string) error {
	_, err := fmt.Fprintf(r.File, "# 1.0.0 %s %s %d %s\n",
		time.Now().UTC().Format("2006-01-02T15:04:05"),
		hashAlgorithm, sourceCount, byteEncode(basePath))
	return err
}

// TailLine writes one reported clone as a tail line: both sides' digest and
// location, followed by the anti-unification distance between them.
func (r *Report) TailLine(tail ReportTailLine) error {
	_, err := fmt.Fprintf(r.File, "%s %s %s %s %g\n",
		hex.EncodeToString(tail.FirstDigest), encodeLocation(tail.FirstPath, tail.FirstLines),
		hex.EncodeToString(tail.SecondDigest), encodeLocation(tail.SecondPath, tail.SecondLines),
		tail.Distance)
	return err
}

// encodeLocation renders a clone side's source path and inclusive line span
// as "path:start-end", byte-encoding the path the same way the teacher's
// reports encode a file basename.
func encodeLocation(path string, lines []int) string {
	start, end := 0, 0
	if len(lines) > 0 {
		start, end = lines[0], lines[len(lines)-1]
	}
	return fmt.Sprintf("%s:%d-%d", byteEncode(path), start, end)
}
