package guardrails

import (
	"fmt"
	"net/http"
	"strconv"
)

var _ http.Handler = &httpAdmissionHandler{}

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// MiddlewareConfig holds the wiring for the admission middleware.
type MiddlewareConfig struct {
	Admitter  Admitter
	Extractor Extractor
	Scope     string
	Policy    Policy
}

type httpAdmissionHandler struct {
	handler http.Handler
	config  *MiddlewareConfig
}

// NewHTTPAdmissionHandler wraps an existing http.Handler and performs admission
// control before forwarding the request to it.
func NewHTTPAdmissionHandler(originalHandler http.Handler, config *MiddlewareConfig) http.Handler {
	return &httpAdmissionHandler{
		handler: originalHandler,
		config:  config,
	}
}

// ServeHTTP checks the caller's quota and forwards the request if admitted.
func (h *httpAdmissionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := h.config.Extractor.Extract(r.Header)
	key := RateLimitKey(h.config.Scope, identity)

	verdict := h.config.Admitter.CheckAndRecord(r.Context(), key, h.config.Policy)

	w.Header().Set(headerRateLimitLimit, strconv.Itoa(h.config.Policy.MaxRequests))
	w.Header().Set(headerRateLimitRemaining, strconv.Itoa(verdict.Remaining))
	w.Header().Set(headerRateLimitReset, strconv.Itoa(verdict.ResetInSeconds))

	if !verdict.Admitted {
		h.writeResponse(w, http.StatusTooManyRequests, "you have sent too many requests to this service, slow down please")
		return
	}

	h.handler.ServeHTTP(w, r)
}

func (h *httpAdmissionHandler) writeResponse(w http.ResponseWriter, status int, msg string, args ...interface{}) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(fmt.Sprintf(msg, args...))); err != nil {
		fmt.Printf("failed to write body to HTTP request: %v", err)
	}
}
