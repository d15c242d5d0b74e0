package newsdesk

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// requestIDHeader carries the request id, either given by the client or generated.
const requestIDHeader = "X-Request-ID"

// middleware is a convenient type for declaring middlewares.
type middleware func(httprouter.Handle) httprouter.Handle

// contextKey is a type for storing values in each request context.
type contextKey string

// String returns a stringified context key.
func (k contextKey) String() string { return string(k) }

// ctxKeyRequestID is the context key for storing the current request id in a context
var ctxKeyRequestID = contextKey("request_id")

// ctxRequestID is a helper func to fetch the request id from the context.
func ctxRequestID(ctx context.Context) string {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	if !ok {
		return ""
	}
	return v
}

// withMiddlewares is a helper function to declare routes with middlewares more easily.
// The caller declares its routes in the body on the f function, calling f's argument on its
// httprouter.Handle to wrap them.
func withMiddlewares(f func(middleware), middlewares ...middleware) {
	wrapper := func(handle httprouter.Handle) httprouter.Handle {
		h := handle
		for i := len(middlewares) - 1; i >= 0; i-- {
			m := middlewares[i]
			h = m(h)
		}
		return h
	}

	f(wrapper)
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestIDMiddleware reuses the X-Request-ID header of the request or generates a new
// id, echoes it in the response and stores it in the request context.
func (s *Server) requestIDMiddleware() middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := context.WithValue(r.Context(), ctxKeyRequestID, id)
			next(w, r.WithContext(ctx), p)
		}
	}
}

// loggingMiddleware stores a request scoped logger in the context, retrievable with
// zerolog.Ctx, and logs the request once it has been handled.
func (s *Server) loggingMiddleware() middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
			start := time.Now()
			logger := s.Logger.With().
				Str("request_id", ctxRequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()

			rec := newStatusRecorder(w)
			next(rec, r.WithContext(logger.WithContext(r.Context())), p)

			logger.Info().
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("Request handled")
		}
	}
}

// timeoutMiddleware bounds the request context by the configured request timeout, which
// the store honours on every call.
func (s *Server) timeoutMiddleware() middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		if s.config.RequestTimeout <= 0 {
			return next
		}

		return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
			ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
			defer cancel()
			next(w, r.WithContext(ctx), p)
		}
	}
}
