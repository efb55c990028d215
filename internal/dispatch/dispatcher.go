package dispatch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/maxvaer/urlcheck/internal/probe"
)

// DefaultBatchSize caps how many probe goroutines and buffered outcomes
// exist at once. Batches run strictly one after another.
const DefaultBatchSize = 1000

// ProgressSink receives one call per completed probe. Implementations
// must be safe for concurrent use.
type ProgressSink interface {
	Increment()
}

// NopSink discards progress updates.
type NopSink struct{}

func (NopSink) Increment() {}

// Dispatcher fans probe checks out across the permit pool in sequential
// batches and streams outcomes back as they complete.
type Dispatcher struct {
	Prober    *probe.Prober
	Permits   *Permits
	Limiter   *rate.Limiter // nil = unpaced
	Sink      ProgressSink  // nil = no progress reporting
	BatchSize int           // <= 0 means DefaultBatchSize
}

// Run probes every URL and returns a channel yielding exactly one
// outcome per URL, in no particular order. The channel is closed once
// the final batch has fully completed. A canceled context still yields
// one (failure) outcome per remaining URL.
func (d *Dispatcher) Run(ctx context.Context, urls []string) <-chan probe.Outcome {
	batchSize := d.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	sink := d.Sink
	if sink == nil {
		sink = NopSink{}
	}

	// The buffer holds a full batch, so batch goroutines never block on
	// a slow consumer and a batch is the peak number of buffered
	// outcomes.
	out := make(chan probe.Outcome, batchSize)
	go func() {
		defer close(out)
		for start := 0; start < len(urls); start += batchSize {
			end := start + batchSize
			if end > len(urls) {
				end = len(urls)
			}
			d.runBatch(ctx, urls[start:end], sink, out)
		}
	}()
	return out
}

// runBatch schedules one goroutine per URL, gated by the permit pool,
// and returns only after every probe in the batch has reported.
func (d *Dispatcher) runBatch(ctx context.Context, batch []string, sink ProgressSink, out chan<- probe.Outcome) {
	var wg sync.WaitGroup
	for _, u := range batch {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			oc := d.checkOne(ctx, u)
			sink.Increment()
			out <- oc
		}(u)
	}
	wg.Wait()
}

func (d *Dispatcher) checkOne(ctx context.Context, url string) probe.Outcome {
	if d.Limiter != nil {
		if err := d.Limiter.Wait(ctx); err != nil {
			return probe.Fail(url, probe.OtherError, err)
		}
	}
	if err := d.Permits.Acquire(ctx); err != nil {
		return probe.Fail(url, probe.OtherError, err)
	}
	defer d.Permits.Release()
	return d.Prober.Check(ctx, url)
}
