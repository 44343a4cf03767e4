package employees

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/employee-admin/internal/httpx"
)

// Handler holds employee HTTP handlers.
type Handler struct {
	svc       *Service
	maxUpload int64
}

func NewHandler(svc *Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// List returns every employee.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, docs)
}

// Get returns a single employee by ID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, doc)
}

// Create stores a new employee from a multipart form with an image part.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fields, img, err := parseForm(w, r, h.maxUpload)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	defer img.Close()

	doc, err := h.svc.Create(r.Context(), fields, img)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, doc)
}

// Update applies a partial form, optionally replacing the image.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields, img, err := parseForm(w, r, h.maxUpload)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	defer img.Close()

	doc, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), fields, img)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, doc)
}

// Delete removes an employee and its image.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "User deleted successfully")
}
