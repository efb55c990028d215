package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/maxvaer/urlcheck/internal/result"
)

type jsonEntry struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status"`
	SizeBytes  int64  `json:"size"`
}

type jsonError struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

type jsonStats struct {
	Total     int     `json:"total"`
	Valid     int     `json:"valid"`
	Skipped   int     `json:"skipped"`
	Errors    int     `json:"errors"`
	Duration  float64 `json:"duration_seconds"`
	Timestamp string  `json:"timestamp"`
}

type jsonReport struct {
	Stats   jsonStats   `json:"stats"`
	Results []jsonEntry `json:"results"`
	Errors  []jsonError `json:"errors"`
}

// JSONWriter exports the whole result set as one JSON document.
type JSONWriter struct {
	w      io.Writer
	closer io.Closer
}

// NewJSONWriter creates a JSON output writer.
func NewJSONWriter(outputFile string) (*JSONWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{w: w, closer: closer}, nil
}

func (j *JSONWriter) Write(set *result.Set) error {
	report := jsonReport{
		Stats: jsonStats{
			Total:     set.Stats.Total,
			Valid:     set.Stats.Valid,
			Skipped:   set.Stats.Skipped(),
			Errors:    set.Stats.Errored,
			Duration:  set.Stats.Duration().Seconds(),
			Timestamp: set.Stats.End.Format(time.RFC3339),
		},
		Results: []jsonEntry{},
		Errors:  []jsonError{},
	}
	for _, code := range set.StatusCodes() {
		for _, size := range set.Sizes(code) {
			for _, u := range set.Buckets[code][size] {
				report.Results = append(report.Results, jsonEntry{URL: u, StatusCode: code, SizeBytes: size})
			}
		}
	}
	for _, f := range set.Failures {
		report.Errors = append(report.Errors, jsonError{
			URL:    f.URL,
			Reason: f.Err.Kind.String(),
			Detail: f.Err.Detail,
		})
	}

	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
