package cli

import (
	"bufio"
	"context"
	"io"
)

type readResult struct {
	line string
	err  error
}

// lineReader reads lines in a background goroutine so a blocked read can
// be abandoned when the context is cancelled. An abandoned read stays
// pending and its line is returned by the next call.
type lineReader struct {
	reader  *bufio.Reader
	pending chan readResult
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

// ReadString reads up to and including '\n', or returns ctx.Err() as soon
// as ctx is done.
func (r *lineReader) ReadString(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if r.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := r.reader.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		r.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-r.pending:
		r.pending = nil
		return res.line, res.err
	}
}
