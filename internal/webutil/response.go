package webutil

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// RespondWithJSON marshals data and writes it with the given status code.
// Marshal failures fall back to a plain 500 so the client always gets a
// response.
func RespondWithJSON(w http.ResponseWriter, code int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, msgInternalServer, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// RespondWithError writes an HTTPError as a JSON error body.
func RespondWithError(w http.ResponseWriter, he *HTTPError) {
	RespondWithJSON(w, he.Code, errorResponse{Message: he.Message, Errors: he.Details})
}

// statusRecorder wraps an http.ResponseWriter to record whether a header
// has been sent, so error handling can tell if the response is already
// under way.
type statusRecorder struct {
	http.ResponseWriter
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// WrapResponseWriter returns a writer that tracks whether the response
// header has been written.
func WrapResponseWriter(w http.ResponseWriter) http.ResponseWriter {
	return &statusRecorder{ResponseWriter: w}
}

// HasResponseWriterSentHeader reports whether the wrapped writer already
// started the response. Writers not produced by WrapResponseWriter report
// false.
func HasResponseWriterSentHeader(w http.ResponseWriter) bool {
	if rec, ok := w.(*statusRecorder); ok {
		return rec.wroteHeader
	}
	return false
}
