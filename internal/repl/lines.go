package repl

import (
	"bufio"
	"context"
)

type lineResult struct {
	line string
	err  error
}

// lineReader reads one line per request on its own goroutine so that a
// blocked read can be abandoned when the context ends. Reads only happen
// on request, which leaves the buffered reader free for prompts between
// lines.
type lineReader struct {
	br  *bufio.Reader
	req chan struct{}
	res chan lineResult
}

func newLineReader(br *bufio.Reader) *lineReader {
	lr := &lineReader{
		br:  br,
		req: make(chan struct{}),
		res: make(chan lineResult, 1),
	}
	go lr.loop()
	return lr
}

func (lr *lineReader) loop() {
	for range lr.req {
		line, err := lr.br.ReadString('\n')
		lr.res <- lineResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case lr.req <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-lr.res:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// stop ends the goroutine once any pending read returns.
func (lr *lineReader) stop() {
	close(lr.req)
}
