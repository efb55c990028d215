package result

import (
	"sort"
	"time"

	"github.com/maxvaer/urlcheck/internal/probe"
)

// Stats holds run-level counters. Total counts every folded outcome.
// Valid counts only successes whose status is in the accept set;
// successes outside it count toward Total alone.
type Stats struct {
	Total   int
	Valid   int
	Errored int
	Start   time.Time
	End     time.Time
}

// Skipped is the number of successes excluded by the accept set.
func (s Stats) Skipped() int { return s.Total - s.Valid - s.Errored }

// Duration is the wall time from run start to finalization.
func (s Stats) Duration() time.Duration { return s.End.Sub(s.Start) }

// Set accumulates probe outcomes bucketed by status code and response
// size. It is not safe for concurrent use: outcomes must be folded from
// a single goroutine.
type Set struct {
	accept AcceptSet

	// Buckets maps status code -> size -> URLs in fold order.
	Buckets  map[int]map[int64][]string
	Failures []probe.Outcome
	Stats    Stats
}

// NewSet creates an empty result set and stamps the start time. A nil
// accept set falls back to the defaults.
func NewSet(accept AcceptSet) *Set {
	if accept == nil {
		accept = DefaultAccept()
	}
	return &Set{
		accept:  accept,
		Buckets: make(map[int]map[int64][]string),
		Stats:   Stats{Start: time.Now()},
	}
}

// Fold records one outcome. Failures go to the failure list; accepted
// successes go to their (status, size) bucket. Successes with a
// non-accepted status only bump Total.
func (s *Set) Fold(oc probe.Outcome) {
	s.Stats.Total++
	if oc.Failed() {
		s.Stats.Errored++
		s.Failures = append(s.Failures, oc)
		return
	}
	if !s.accept.Contains(oc.StatusCode) {
		return
	}
	s.Stats.Valid++
	sizes := s.Buckets[oc.StatusCode]
	if sizes == nil {
		sizes = make(map[int64][]string)
		s.Buckets[oc.StatusCode] = sizes
	}
	sizes[oc.SizeBytes] = append(sizes[oc.SizeBytes], oc.URL)
}

// Finalize stamps the end time. Call it once, after the last fold.
func (s *Set) Finalize() {
	s.Stats.End = time.Now()
}

// StatusCodes returns the bucketed status codes in report order:
// 200 first, then 3xx, then 403, then the rest ascending.
func (s *Set) StatusCodes() []int {
	codes := make([]int, 0, len(s.Buckets))
	for c := range s.Buckets {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		ri, rj := statusRank(codes[i]), statusRank(codes[j])
		if ri != rj {
			return ri < rj
		}
		return codes[i] < codes[j]
	})
	return codes
}

// Sizes returns the size keys for one status code in ascending order.
func (s *Set) Sizes(code int) []int64 {
	sizes := make([]int64, 0, len(s.Buckets[code]))
	for sz := range s.Buckets[code] {
		sizes = append(sizes, sz)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

func statusRank(code int) int {
	switch {
	case code == 200:
		return 0
	case code >= 300 && code < 400:
		return 1
	case code == 403:
		return 2
	default:
		return 3
	}
}
