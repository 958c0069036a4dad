package app

import (
	"bytes"
	"maps"
	"net/http"
	"sync"
)

// Buffer returns a copy of c whose response is held in memory, for handlers
// that run on a goroutine the caller may abandon. flush sends the buffered
// header, status and body through c. After discard, writes through the copy
// fail with http.ErrHandlerTimeout and c is free to write its own response.
func Buffer(c Context) (bc Context, flush func() error, discard func()) {
	rc, ok := c.(*requestContext)
	if !ok {
		return c, func() error { return nil }, func() {}
	}

	bw := &bufferedWriter{header: make(http.Header)}
	cp := *rc
	cp.responseWriter = NewResponseWriter(bw)

	return &cp, func() error { return bw.flushTo(rc.responseWriter) }, bw.discard
}

type bufferedWriter struct {
	// header is owned by the handler goroutine until flushTo runs.
	header http.Header

	mu          sync.Mutex
	buf         bytes.Buffer
	code        int
	wroteHeader bool
	discarded   bool
}

func (w *bufferedWriter) Header() http.Header { return w.header }

func (w *bufferedWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.discarded || w.wroteHeader {
		return
	}
	w.code = code
	w.wroteHeader = true
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.discarded {
		return 0, http.ErrHandlerTimeout
	}
	if !w.wroteHeader {
		w.code = http.StatusOK
		w.wroteHeader = true
	}
	return w.buf.Write(b)
}

func (w *bufferedWriter) discard() {
	w.mu.Lock()
	w.discarded = true
	w.buf.Reset()
	w.mu.Unlock()
}

func (w *bufferedWriter) flushTo(dst *ResponseWriter) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.discarded || !w.wroteHeader {
		return nil
	}
	maps.Copy(dst.Header(), w.header)
	dst.WriteHeader(w.code)
	_, err := dst.Write(w.buf.Bytes())
	return err
}
