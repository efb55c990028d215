package result

import (
	"errors"
	"reflect"
	"testing"

	"github.com/maxvaer/urlcheck/internal/probe"
)

func success(url string, status int, size int64) probe.Outcome {
	return probe.Outcome{URL: url, StatusCode: status, SizeBytes: size}
}

func timeoutFailure(url string) probe.Outcome {
	return probe.Fail(url, probe.Timeout, errors.New("deadline exceeded"))
}

func TestDefaultAccept(t *testing.T) {
	s := DefaultAccept()
	for _, code := range []int{200, 300, 301, 308, 399, 403} {
		if !s.Contains(code) {
			t.Errorf("default accept set should contain %d", code)
		}
	}
	for _, code := range []int{201, 404, 401, 500} {
		if s.Contains(code) {
			t.Errorf("default accept set should not contain %d", code)
		}
	}
}

func TestExtendIgnoresInvalidCodes(t *testing.T) {
	s := DefaultAccept()
	s.Extend(401, -1, 0, 1000, 429)
	if !s.Contains(401) || !s.Contains(429) {
		t.Error("valid extension codes missing")
	}
	if s.Contains(-1) || s.Contains(0) || s.Contains(1000) {
		t.Error("out-of-range codes should have been ignored")
	}
}

func TestFoldEndToEndScenario(t *testing.T) {
	// A -> 200/120, B -> 404, C -> timeout, D -> 301/0.
	set := NewSet(nil)
	set.Fold(success("http://a/", 200, 120))
	set.Fold(success("http://b/", 404, 50))
	set.Fold(timeoutFailure("http://c/"))
	set.Fold(success("http://d/", 301, 0))
	set.Finalize()

	if set.Stats.Total != 4 {
		t.Errorf("total = %d, want 4", set.Stats.Total)
	}
	if set.Stats.Valid != 2 {
		t.Errorf("valid = %d, want 2 (A and D)", set.Stats.Valid)
	}
	if set.Stats.Errored != 1 {
		t.Errorf("errored = %d, want 1 (C)", set.Stats.Errored)
	}
	if set.Stats.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1 (B, non-accepted 404)", set.Stats.Skipped())
	}
	if set.Stats.Total != set.Stats.Valid+set.Stats.Errored+set.Stats.Skipped() {
		t.Error("counter invariant violated")
	}

	if got := set.Buckets[200][120]; !reflect.DeepEqual(got, []string{"http://a/"}) {
		t.Errorf("bucket[200][120] = %v", got)
	}
	if got := set.Buckets[301][0]; !reflect.DeepEqual(got, []string{"http://d/"}) {
		t.Errorf("bucket[301][0] = %v", got)
	}
	if _, ok := set.Buckets[404]; ok {
		t.Error("404 must not be bucketed with the default accept set")
	}
	if len(set.Failures) != 1 || set.Failures[0].URL != "http://c/" {
		t.Errorf("failures = %v, want only C", set.Failures)
	}
}

func TestFoldSameBucketKeepsFoldOrder(t *testing.T) {
	set := NewSet(nil)
	set.Fold(success("http://first/", 200, 500))
	set.Fold(success("http://second/", 200, 500))

	want := []string{"http://first/", "http://second/"}
	if got := set.Buckets[200][500]; !reflect.DeepEqual(got, want) {
		t.Errorf("bucket order = %v, want %v", got, want)
	}
}

func TestFoldOrderIndependentBuckets(t *testing.T) {
	outcomes := []probe.Outcome{
		success("http://a/", 200, 10),
		success("http://b/", 200, 20),
		success("http://c/", 301, 10),
		timeoutFailure("http://d/"),
		success("http://e/", 404, 5),
	}

	forward := NewSet(nil)
	for _, oc := range outcomes {
		forward.Fold(oc)
	}

	backward := NewSet(nil)
	for i := len(outcomes) - 1; i >= 0; i-- {
		backward.Fold(outcomes[i])
	}

	if forward.Stats.Total != backward.Stats.Total ||
		forward.Stats.Valid != backward.Stats.Valid ||
		forward.Stats.Errored != backward.Stats.Errored {
		t.Error("counters differ with fold order")
	}
	for code, sizes := range forward.Buckets {
		for size, urls := range sizes {
			got := backward.Buckets[code][size]
			if len(got) != len(urls) {
				t.Errorf("bucket[%d][%d] size differs: %v vs %v", code, size, urls, got)
				continue
			}
			want := make(map[string]bool, len(urls))
			for _, u := range urls {
				want[u] = true
			}
			for _, u := range got {
				if !want[u] {
					t.Errorf("bucket[%d][%d] contents differ: %v vs %v", code, size, urls, got)
				}
			}
		}
	}
}

func TestExtendedAcceptSetCountsExtraCode(t *testing.T) {
	accept := DefaultAccept()
	accept.Extend(401)
	set := NewSet(accept)
	set.Fold(success("http://a/", 401, 0))

	if set.Stats.Valid != 1 {
		t.Errorf("valid = %d, want 1 with 401 accepted", set.Stats.Valid)
	}
	if got := set.Buckets[401][0]; len(got) != 1 {
		t.Errorf("bucket[401][0] = %v", got)
	}
}

func TestStatusCodesReportOrder(t *testing.T) {
	set := NewSet(AcceptSet{500: {}, 403: {}, 302: {}, 301: {}, 200: {}, 404: {}})
	for _, code := range []int{500, 403, 302, 200, 301, 404} {
		set.Fold(success("http://x/", code, 0))
	}

	want := []int{200, 301, 302, 403, 404, 500}
	if got := set.StatusCodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("StatusCodes() = %v, want %v", got, want)
	}
}

func TestSizesAscending(t *testing.T) {
	set := NewSet(nil)
	set.Fold(success("http://a/", 200, 300))
	set.Fold(success("http://b/", 200, 100))
	set.Fold(success("http://c/", 200, 200))

	want := []int64{100, 200, 300}
	if got := set.Sizes(200); !reflect.DeepEqual(got, want) {
		t.Errorf("Sizes(200) = %v, want %v", got, want)
	}
}
