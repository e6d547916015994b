package handlers

import (
	"net/http"
	"strings"

	"github.com/vperic/linguachat/internal/linkpreview"
)

type PreviewHandler struct {
	fetcher *linkpreview.Fetcher
}

func NewPreviewHandler(fetcher *linkpreview.Fetcher) *PreviewHandler {
	return &PreviewHandler{fetcher: fetcher}
}

// Get scrapes Open Graph metadata for a URL. A preview that cannot be built
// is a 404, not an error: the client simply renders the bare link.
func (h *PreviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" || (!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")) {
		writeError(w, http.StatusBadRequest, "INVALID_URL", "A http(s) url parameter is required")
		return
	}

	preview := h.fetcher.Fetch(r.Context(), url)
	if preview == nil {
		writeError(w, http.StatusNotFound, "NO_PREVIEW", "No preview available for this URL")
		return
	}

	writeJSON(w, http.StatusOK, preview)
}
