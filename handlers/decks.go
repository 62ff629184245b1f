package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andrewpaige1/promptdec-api/middleware"
	"github.com/andrewpaige1/promptdec-api/schemas"
)

func (h *DBHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.Store.ListDecks(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewDeckResponses(decks))
}

func (h *DBHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.Store.GetDeck(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewDeckResponse(deck))
}

func (h *DBHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req schemas.DeckCreate
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	deck, err := req.Build(userID)
	if err != nil {
		h.writeError(w, r, "deck", err)
		return
	}

	deck, err = h.Store.CreateDeck(r.Context(), userID, deck)
	if err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewDeckResponse(deck))
}

func (h *DBHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	var req schemas.DeckUpdate
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		h.writeError(w, r, "deck", err)
		return
	}

	deck, err := h.Store.UpdateDeck(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), changes)
	if err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewDeckResponse(deck))
}

func (h *DBHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteDeck(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, "deck", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
