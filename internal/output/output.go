package output

import (
	"io"
	"os"

	"github.com/maxvaer/urlcheck/internal/result"
)

// Writer renders a finalized result set in one output format.
type Writer interface {
	Write(set *result.Set) error
	Close() error
}

// openOutput returns the destination writer. An empty path means
// stdout, which must not be closed.
func openOutput(outputFile string) (io.Writer, io.Closer, error) {
	if outputFile == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
