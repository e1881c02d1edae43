package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// PageHandler serves the embedded guide page.
type PageHandler struct {
	indexHTML []byte
}

// NewPageHandler creates a new page handler.
func NewPageHandler(indexHTML []byte) *PageHandler {
	return &PageHandler{indexHTML: indexHTML}
}

// ServeIndex handles GET /
func (h *PageHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.indexHTML); err != nil {
		log.Error().Err(err).Msg("failed to write index page")
	}
}
