package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
)

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func never(error) bool { return false }

func TestStart_OneLinePerValue(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 1, func(enc *json.Encoder, v int) error {
		return enc.Encode(map[string]int{"n": v})
	}, never)
	for i := 0; i < 3; i++ {
		in <- i
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("want 3 lines, got %d: %q", got, buf.String())
	}
}

func TestStart_DrainsAfterError(t *testing.T) {
	boom := errors.New("boom")
	in, done := Start[int](io.Discard, 1, func(*json.Encoder, int) error { return boom }, never)
	// More sends than the buffer holds must not block.
	for i := 0; i < 10; i++ {
		in <- i
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestStart_BrokenPipeIsQuiet(t *testing.T) {
	closed := io.ErrClosedPipe
	in, done := Start[int](failingWriter{closed}, 1, func(enc *json.Encoder, v int) error {
		return enc.Encode(v)
	}, func(err error) bool { return errors.Is(err, closed) })
	in <- 1
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe should be suppressed, got %v", err)
	}
}
