package images

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/ayush/employee-admin/internal/httpx"
)

// Handler serves stored images.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Serve streams the image named by the {filename} URL parameter.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.svc.Open(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, rc); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("image stream interrupted")
	}
}
