package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andrewpaige1/promptdec-api/middleware"
	"github.com/andrewpaige1/promptdec-api/schemas"
)

func (h *DBHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.Store.ListTemplates(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewTemplateResponses(tpls))
}

func (h *DBHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Store.GetTemplate(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewTemplateResponse(tpl))
}

func (h *DBHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req schemas.TemplateCreate
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	tpl, err := req.Build(userID)
	if err != nil {
		h.writeError(w, r, "template", err)
		return
	}

	tpl, err = h.Store.CreateTemplate(r.Context(), userID, tpl)
	if err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewTemplateResponse(tpl))
}

func (h *DBHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req schemas.TemplateUpdate
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		h.writeError(w, r, "template", err)
		return
	}

	tpl, err := h.Store.UpdateTemplate(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), changes)
	if err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewTemplateResponse(tpl))
}

func (h *DBHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTemplate(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, "template", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
