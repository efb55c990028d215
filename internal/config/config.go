package config

import (
	"fmt"
	"time"
)

// Options holds all configuration for a check run.
type Options struct {
	// Input
	URLFile string // empty = read from stdin
	Domain  string // wildcard filter, e.g. *.example.com

	// Probing
	Concurrency   int
	Timeout       time.Duration
	Rate          float64 // requests per second, 0 = unlimited
	IncludeStatus []int   // accepted in addition to the defaults

	// Output
	OutputFile   string
	OutputFormat string // "html", "text", "json", "csv"
	Quiet        bool
	NoColor      bool
	Verbose      bool
	LogFile      string
}

// Validate rejects configurations that must never reach a run. Called
// before any probe is dispatched.
func (o *Options) Validate() error {
	if o.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", o.Concurrency)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %g", o.Rate)
	}
	switch o.OutputFormat {
	case "html", "text", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q (want html, text, json, or csv)", o.OutputFormat)
	}
	return nil
}
