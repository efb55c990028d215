package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/maxvaer/urlcheck/internal/config"
	"github.com/maxvaer/urlcheck/internal/dispatch"
	"github.com/maxvaer/urlcheck/internal/input"
	"github.com/maxvaer/urlcheck/internal/logging"
	"github.com/maxvaer/urlcheck/internal/output"
	"github.com/maxvaer/urlcheck/internal/probe"
	"github.com/maxvaer/urlcheck/internal/result"
)

// Run executes a full check: load the URL list, probe everything under
// the concurrency budget, aggregate, and render the report.
func Run(ctx context.Context, opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	log := logging.New(opts.Verbose, opts.LogFile)
	defer log.Sync()

	// 1. Load and prepare the URL list.
	urls, err := input.Load(opts.URLFile)
	if err != nil {
		return err
	}
	loaded := len(urls)
	urls = input.Dedupe(urls)
	urls = input.FilterDomain(urls, opts.Domain)
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to check (loaded %d before dedupe and domain filter)", loaded)
	}
	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "[*] Loaded %d URLs, checking %d after dedupe and domain filter\n", loaded, len(urls))
	}

	// 2. Build the accept set and result state.
	accept := result.DefaultAccept()
	accept.Extend(opts.IncludeStatus...)
	set := result.NewSet(accept)

	// 3. Build prober, limiter, and progress display.
	prober := probe.NewProber(opts.Timeout, opts.Concurrency, log)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), opts.Concurrency)
	}

	showProgress := !opts.Quiet && term.IsTerminal(int(os.Stderr.Fd()))
	progress := output.NewProgress(len(urls), !showProgress)
	progress.Start()

	// 4. Dispatch and fold. The fold loop is the only goroutine that
	// touches the result set.
	d := &dispatch.Dispatcher{
		Prober:  prober,
		Permits: dispatch.NewPermits(opts.Concurrency),
		Limiter: limiter,
		Sink:    progress,
	}
	for oc := range d.Run(ctx, urls) {
		if oc.Failed() {
			progress.IncrementErrors()
			log.Debug("probe failed",
				zap.String("url", oc.URL),
				zap.String("reason", oc.Err.Error()))
		}
		set.Fold(oc)
	}
	set.Finalize()
	progress.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "[+] Done: %d total, %d valid, %d errors in %s\n",
			set.Stats.Total, set.Stats.Valid, set.Stats.Errored,
			set.Stats.Duration().Round(time.Millisecond))
	}

	// 5. Render the report.
	out, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating output writer: %w", err)
	}
	defer out.Close()
	if err := out.Write(set); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if !opts.Quiet && opts.OutputFormat == "html" && opts.OutputFile != "" {
		fmt.Fprintf(os.Stderr, "[+] HTML report written to %s\n", opts.OutputFile)
	}
	return nil
}

func createWriter(opts *config.Options) (output.Writer, error) {
	switch opts.OutputFormat {
	case "json":
		return output.NewJSONWriter(opts.OutputFile)
	case "csv":
		return output.NewCSVWriter(opts.OutputFile)
	case "text":
		return output.NewTextWriter(opts.OutputFile, opts.NoColor, opts.Quiet)
	default:
		return output.NewHTMLWriter(opts.OutputFile)
	}
}
