package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/middleware"
	"github.com/andrewpaige1/promptdec-api/repository"
	"github.com/andrewpaige1/promptdec-api/schemas"
)

// cardFilter reads the deck_id, is_favorite and tag query parameters.
func cardFilter(r *http.Request) (repository.CardFilter, error) {
	var filter repository.CardFilter
	q := r.URL.Query()

	if v := q.Get("deck_id"); v != "" {
		filter.DeckID = &v
	}
	if v := q.Get("tag"); v != "" {
		filter.Tag = &v
	}
	if v := q.Get("is_favorite"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			return filter, &schemas.ValidationError{Fields: []schemas.FieldError{
				{Field: "is_favorite", Message: "must be true or false"},
			}}
		}
		filter.IsFavorite = &fav
	}
	return filter, nil
}

func (h *DBHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	filter, err := cardFilter(r)
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}

	cards, err := h.Store.ListCards(r.Context(), middleware.UserIDFromContext(r.Context()), filter)
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewCardResponses(cards))
}

func (h *DBHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.Store.GetCard(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewCardResponse(card))
}

func (h *DBHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req schemas.CardCreate
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	card, err := req.Build(userID)
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}

	card, err = h.Store.CreateCard(r.Context(), userID, card)
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewCardResponse(card))
}

func (h *DBHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req schemas.CardUpdate
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}

	card, err := h.Store.UpdateCard(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), changes)
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewCardResponse(card))
}

func (h *DBHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCard(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DBHandler) DuplicateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	card, err := h.Store.DuplicateCard(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, "card", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IncDuplicated()
	}
	h.Log.Debug("duplicated card", zap.String("source_id", id), zap.String("card_id", card.ID))
	writeJSON(w, http.StatusOK, schemas.NewCardResponse(card))
}
