package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/maxvaer/urlcheck/internal/result"
)

// CSVWriter writes the flattened result set in CSV format.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVWriter creates a CSV output writer.
func NewCSVWriter(outputFile string) (*CSVWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &CSVWriter{w: csv.NewWriter(w), closer: closer}, nil
}

func (c *CSVWriter) Write(set *result.Set) error {
	if err := c.w.Write([]string{"url", "status", "size", "error"}); err != nil {
		return err
	}
	for _, code := range set.StatusCodes() {
		for _, size := range set.Sizes(code) {
			for _, u := range set.Buckets[code][size] {
				row := []string{u, strconv.Itoa(code), strconv.FormatInt(size, 10), ""}
				if err := c.w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	for _, f := range set.Failures {
		if err := c.w.Write([]string{f.URL, "", "", f.Err.Error()}); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
