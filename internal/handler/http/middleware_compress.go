package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

// withCompression gzips JSON and plain text answers for clients that accept
// it. A full sync delta of a long list compresses well.
var withCompression = middleware.Compress(gzip.DefaultCompression, "application/json", "text/plain")

var gzipReaderPool = sync.Pool{
	New: func() any { return new(gzip.Reader) },
}

// withGZipRequests transparently inflates request bodies sent with
// "Content-Encoding: gzip". A body that is not valid gzip is a 400.
func withGZipRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zr := gzipReaderPool.Get().(*gzip.Reader)
		if err := zr.Reset(r.Body); err != nil {
			gzipReaderPool.Put(zr)
			http.Error(w, "Invalid gzip data", http.StatusBadRequest)
			return
		}

		r.Body = &pooledGZipBody{Reader: zr, orig: r.Body}
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

// pooledGZipBody returns its reader to the pool on Close.
type pooledGZipBody struct {
	*gzip.Reader
	orig   io.Closer
	closed bool
}

func (b *pooledGZipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	_ = b.Reader.Close()
	gzipReaderPool.Put(b.Reader)
	return b.orig.Close()
}
