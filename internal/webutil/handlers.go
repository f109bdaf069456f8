package webutil

import (
	"errors"
	"net/http"

	"github.com/languagesphere/server/internal/logging"
)

// AppHandler is an http handler that returns an error. MakeHandler adapts
// it into a standard http.HandlerFunc.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler converts an AppHandler into an http.HandlerFunc. Returned
// *HTTPError values are written as JSON error responses; any other error
// is logged and reported as a generic 500. If the handler already started
// streaming a response, the error is only logged.
func MakeHandler(logger logging.Logger, h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := WrapResponseWriter(w)

		err := h(ww, r)
		if err == nil {
			return
		}

		var he *HTTPError
		if !errors.As(err, &he) {
			he = ErrInternalServerWrap("", err)
		}

		if he.Code >= http.StatusInternalServerError {
			logger.Error(r.Context(), "handler error",
				"method", r.Method, "path", r.URL.Path, "error", err)
		}

		if HasResponseWriterSentHeader(ww) {
			logger.Warn(r.Context(), "error after response started",
				"method", r.Method, "path", r.URL.Path, "error", err)
			return
		}

		RespondWithError(ww, he)
	}
}
