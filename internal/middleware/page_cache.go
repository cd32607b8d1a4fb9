package middleware

import (
	"bytes"
	"net/http"

	"github.com/antonv42/textpost/backend/internal/cache"
	"github.com/labstack/echo/v4"
)

// captureWriter tees the response body so a successful render can be
// stored after the handler returns
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// PageCache serves GET responses from the page cache, keyed by request
// path+query (so each page number caches separately). Misses render as
// usual and are stored for the cache TTL when the handler responded 200.
// A concurrent race may render the same page twice; the duplicate store
// is harmless.
func PageCache(pc *cache.PageCache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := c.Request().URL.RequestURI()
			if entry, ok := pc.Get(key); ok {
				return c.Blob(entry.Status, entry.ContentType, entry.Body)
			}

			writer := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = writer

			if err := next(c); err != nil {
				return err
			}

			if writer.status == http.StatusOK {
				pc.Set(key, &cache.Entry{
					Status:      writer.status,
					ContentType: writer.Header().Get(echo.HeaderContentType),
					Body:        writer.body.Bytes(),
				})
			}
			return nil
		}
	}
}
