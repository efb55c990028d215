// Package input loads, deduplicates, and filters the URL list before a
// run starts.
package input

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"golang.org/x/term"
)

// Load reads the URL list from file, or from stdin when file is empty
// and stdin is piped. One URL per line; blank lines are skipped.
func Load(file string) ([]string, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening URL file: %w", err)
		}
		defer f.Close()
		return read(f)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no input: provide a URL file or pipe URLs on stdin")
	}
	return read(os.Stdin)
}

func read(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	return urls, nil
}

// Dedupe drops repeated URLs, keeping the first occurrence of each in
// input order.
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// FilterDomain keeps URLs whose hostname matches the wildcard pattern,
// e.g. "*.example.com". An empty pattern keeps everything. URLs that do
// not parse are dropped.
func FilterDomain(urls []string, pattern string) []string {
	if pattern == "" {
		return urls
	}
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		host := u.Hostname()
		if host == "" {
			host = u.Host
		}
		if ok, _ := path.Match(pattern, host); ok {
			out = append(out, raw)
		}
	}
	return out
}
