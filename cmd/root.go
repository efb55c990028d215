package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maxvaer/urlcheck/internal/config"
	"github.com/maxvaer/urlcheck/internal/runner"
	"github.com/maxvaer/urlcheck/pkg/version"
)

var opts config.Options

var rootCmd = &cobra.Command{
	Use:     "urlcheck [FILE] [flags]",
	Short:   "Concurrent URL checker with HTML reporting",
	Version: version.Version,
	Long: `urlcheck probes a list of URLs over HTTP under a bounded concurrency
budget, classifies each response by status code and size, and renders
the results as an HTML report for bug bounty reconnaissance.`,
	Example: `  urlcheck urls.txt
  urlcheck urls.txt -c 50 -t 5s -o report.html
  cat urls.txt | urlcheck -d '*.example.com'
  urlcheck urls.txt -i 401,429 --format json -o results.json
  urlcheck urls.txt --rate 100 --log-file urlcheck.log`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			opts.URLFile = args[0]
		}
		return opts.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !opts.Quiet {
			printBanner()
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Probing
	f.IntVarP(&opts.Concurrency, "concurrency", "c", 20, "Number of concurrent requests")
	f.DurationVarP(&opts.Timeout, "timeout", "t", 10*time.Second, "Request timeout")
	f.Float64Var(&opts.Rate, "rate", 0, "Maximum requests per second (0 = unlimited)")
	f.VarP(&intSliceValue{target: &opts.IncludeStatus}, "include", "i", "Additional accepted status codes (comma-separated)")

	// Input
	f.StringVarP(&opts.Domain, "domain", "d", "", "Filter by domain with wildcard support (e.g. *.example.com)")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "url_results.html", "Output file path")
	f.StringVar(&opts.OutputFormat, "format", "html", "Output format: html, text, json, csv")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output (log each probed URL)")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.StringVar(&opts.LogFile, "log-file", "", "Write JSON logs to this rotating file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var _ pflag.Value = (*intSliceValue)(nil)

// intSliceValue implements pflag.Value for comma-separated int slices.
// Entries that do not parse as integers are skipped rather than
// rejected, matching how extra status codes have always been handled.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

func printBanner() {
	fmt.Fprintf(os.Stderr, `
                __     __           __
  __  _________/ /____/ /_  ___  __/ /__
 / / / / ___/ / ___/ __ \/ _ \/ ___/ //_/
/ /_/ / /  / / /__/ / / /  __/ /__/ ,<
\__,_/_/  /_/\___/_/ /_/\___/\___/_/|_|   v%s

`, version.Version)
}
