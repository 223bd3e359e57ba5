package log

import (
	"net/http"
	"time"

	"go.uber.org/atomic"
)

type loggingHandler struct {
	handler http.Handler
	logger  Logger
	nextID  *atomic.Uint64
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewLoggingHandler wraps handler and logs every request it serves
func NewLoggingHandler(handler http.Handler, logger Logger) http.Handler {
	return &loggingHandler{
		handler: handler,
		logger:  OrNop(logger),
		nextID:  atomic.NewUint64(0),
	}
}

func (h *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := h.nextID.Inc()
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	h.handler.ServeHTTP(recorder, r)

	h.logger.Info("request served",
		"id", id,
		"method", r.Method,
		"path", r.URL.Path,
		"status", recorder.status,
		"duration", time.Since(start))
}
