package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/andrewpaige1/promptdec-api/config"
	"github.com/andrewpaige1/promptdec-api/metrics"
	"github.com/andrewpaige1/promptdec-api/models"
	"github.com/andrewpaige1/promptdec-api/repository"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	repo    *repository.Repository
	metrics *metrics.Recorder
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := config.Connect(config.Config{DatabaseURL: "sqlite://:memory:"}, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))

	repo := repository.New(db)
	rec := metrics.NewRecorder()
	h, err := NewRouter(&DBHandler{
		Store:   repo,
		Log:     zap.NewNop(),
		Metrics: rec,
		Version: "0.1.0",
	}, config.Default())
	require.NoError(t, err)

	return &testAPI{t: t, handler: h, repo: repo, metrics: rec}
}

// do sends a request and decodes a JSON response into out when non-nil.
func (a *testAPI) do(method, path, body string, out any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

type deckJSON struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
}

type cardJSON struct {
	ID          string          `json:"id"`
	DeckID      string          `json:"deck_id"`
	UserID      string          `json:"user_id"`
	FrontTitle  *string         `json:"front_title"`
	BackContent *string         `json:"back_content"`
	BackFormat  string          `json:"back_format"`
	Tags        []string        `json:"tags"`
	CustomJSON  json.RawMessage `json:"front_custom_json"`
	IsFavorite  bool            `json:"is_favorite"`
}

type errorJSON struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func TestEndToEndScenario(t *testing.T) {
	api := newTestAPI(t)

	var deck deckJSON
	rec := api.do(http.MethodPost, "/decks", `{"name":"Test Deck","description":"desc"}`, &deck)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, "test-user-123", deck.UserID)

	var decks []deckJSON
	rec = api.do(http.MethodGet, "/decks", "", &decks)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decks, 1)
	assert.Equal(t, deck.ID, decks[0].ID)

	var updated deckJSON
	rec = api.do(http.MethodPut, "/decks/"+deck.ID, `{"name":"Updated Deck"}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated Deck", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desc", *updated.Description)

	var card cardJSON
	rec = api.do(http.MethodPost, "/cards",
		`{"deck_id":"`+deck.ID+`","front_title":"Test Card","back_content":"Explain recursion"}`, &card)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "markdown", card.BackFormat)

	var dup cardJSON
	rec = api.do(http.MethodPost, "/cards/"+card.ID+"/duplicate", "", &dup)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, card.ID, dup.ID)
	require.NotNil(t, dup.FrontTitle)
	assert.Contains(t, *dup.FrontTitle, "(Copy)")
	assert.Equal(t, card.DeckID, dup.DeckID)

	rec = api.do(http.MethodDelete, "/cards/"+card.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	var notFound errorJSON
	rec = api.do(http.MethodGet, "/cards/"+card.ID, "", &notFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", notFound.Error)
}

func TestHealthAndRoot(t *testing.T) {
	api := newTestAPI(t)

	var health map[string]string
	rec := api.do(http.MethodGet, "/health", "", &health)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "healthy", "service": "promptdec-api", "version": "0.1.0"}, health)

	var root map[string]string
	rec = api.do(http.MethodGet, "/", "", &root)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PromptDec API", root["message"])

	var ready map[string]string
	rec = api.do(http.MethodGet, "/ready", "", &ready)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", ready["status"])
}

func TestCreateCardReferenceErrors(t *testing.T) {
	api := newTestAPI(t)

	var body errorJSON
	rec := api.do(http.MethodPost, "/cards", `{"deck_id":"missing","front_title":"x"}`, &body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_reference", body.Error)

	var cards []cardJSON
	api.do(http.MethodGet, "/cards", "", &cards)
	assert.Empty(t, cards)
}

func TestRequestBodyErrors(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		kind   string
	}{
		{"malformed json", http.MethodPost, "/decks", `{"name":`, http.StatusBadRequest, "bad_request"},
		{"unknown field", http.MethodPost, "/decks", `{"name":"x","id":"mine"}`, http.StatusBadRequest, "bad_request"},
		{"owner not accepted", http.MethodPost, "/decks", `{"name":"x","user_id":"someone"}`, http.StatusBadRequest, "bad_request"},
		{"empty body", http.MethodPost, "/decks", ``, http.StatusBadRequest, "bad_request"},
		{"trailing brace", http.MethodPost, "/decks", `{"name":"A"}}`, http.StatusBadRequest, "bad_request"},
		{"two values", http.MethodPost, "/decks", `{"name":"A"} {"name":"B"}`, http.StatusBadRequest, "bad_request"},
		{"blank name", http.MethodPost, "/decks", `{"name":"  "}`, http.StatusUnprocessableEntity, "validation_error"},
		{"bad back format", http.MethodPost, "/cards", `{"deck_id":"d","back_format":"html"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"bad tags", http.MethodPost, "/cards", `{"deck_id":"d","tags":"not json"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"bad filter", http.MethodGet, "/cards?is_favorite=maybe", ``, http.StatusUnprocessableEntity, "validation_error"},
		{"unknown deck", http.MethodGet, "/decks/nope", ``, http.StatusNotFound, "not_found"},
		{"update unknown card with bad deck", http.MethodPut, "/cards/does-not-exist", `{"deck_id":"nope"}`, http.StatusNotFound, "not_found"},
		{"unknown route", http.MethodGet, "/nope", ``, http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorJSON
			rec := api.do(tt.method, tt.path, tt.body, &body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, body.Error)
		})
	}
}

func TestUpdateCardPartialAndNull(t *testing.T) {
	api := newTestAPI(t)

	var deck deckJSON
	api.do(http.MethodPost, "/decks", `{"name":"d"}`, &deck)
	var card cardJSON
	rec := api.do(http.MethodPost, "/cards",
		`{"deck_id":"`+deck.ID+`","front_title":"T","back_content":"B","tags":["a"],"front_custom_json":{"k":1}}`, &card)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated cardJSON
	rec = api.do(http.MethodPut, "/cards/"+card.ID, `{"back_content":null,"is_favorite":true}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, updated.BackContent)
	assert.True(t, updated.IsFavorite)
	require.NotNil(t, updated.FrontTitle)
	assert.Equal(t, "T", *updated.FrontTitle)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.JSONEq(t, `{"k":1}`, string(updated.CustomJSON))

	var verr errorJSON
	rec = api.do(http.MethodPut, "/cards/"+card.ID, `{"back_format":null}`, &verr)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", verr.Error)

	var other deckJSON
	api.do(http.MethodPost, "/decks", `{"name":"other"}`, &other)
	var moved cardJSON
	rec = api.do(http.MethodPut, "/cards/"+card.ID, `{"deck_id":"`+other.ID+`"}`, &moved)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, other.ID, moved.DeckID)

	rec = api.do(http.MethodPut, "/cards/"+card.ID, `{"deck_id":"missing"}`, &verr)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_reference", verr.Error)
}

func TestListCardsByDeck(t *testing.T) {
	api := newTestAPI(t)

	var d1, d2 deckJSON
	api.do(http.MethodPost, "/decks", `{"name":"one"}`, &d1)
	api.do(http.MethodPost, "/decks", `{"name":"two"}`, &d2)
	api.do(http.MethodPost, "/cards", `{"deck_id":"`+d1.ID+`","tags":["x"]}`, nil)
	api.do(http.MethodPost, "/cards", `{"deck_id":"`+d1.ID+`"}`, nil)
	api.do(http.MethodPost, "/cards", `{"deck_id":"`+d2.ID+`","is_favorite":true}`, nil)

	var cards []cardJSON
	api.do(http.MethodGet, "/cards?deck_id="+d1.ID, "", &cards)
	assert.Len(t, cards, 2)

	api.do(http.MethodGet, "/cards?is_favorite=true", "", &cards)
	assert.Len(t, cards, 1)

	api.do(http.MethodGet, "/cards?tag=x", "", &cards)
	assert.Len(t, cards, 1)

	rec := api.do(http.MethodDelete, "/decks/"+d1.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	api.do(http.MethodGet, "/cards", "", &cards)
	assert.Len(t, cards, 1)
}

func TestTemplateRoutes(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.repo.SeedDefaultTemplates(context.Background())
	require.NoError(t, err)

	var tpls []map[string]any
	rec := api.do(http.MethodGet, "/templates", "", &tpls)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, tpls, len(repository.DefaultTemplates))

	var created map[string]any
	rec = api.do(http.MethodPost, "/templates", `{"name":"Mine","template_json":"{\"x\":1}"}`, &created)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-user-123", created["user_id"])
	assert.Equal(t, map[string]any{"x": float64(1)}, created["template_json"])

	id := created["id"].(string)
	var deck deckJSON
	api.do(http.MethodPost, "/decks", `{"name":"d"}`, &deck)
	var card cardJSON
	rec = api.do(http.MethodPost, "/cards", `{"deck_id":"`+deck.ID+`","front_template_id":"`+id+`"}`, &card)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodDelete, "/templates/"+id, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var after map[string]any
	api.do(http.MethodGet, "/cards/"+card.ID, "", &after)
	assert.Nil(t, after["front_template_id"])

	shared := tpls[0]["id"].(string)
	var body errorJSON
	rec = api.do(http.MethodPut, "/templates/"+shared, `{"name":"mine now"}`, &body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMe(t *testing.T) {
	api := newTestAPI(t)
	var me map[string]any
	rec := api.do(http.MethodGet, "/me", "", &me)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-user-123", me["id"])
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	var deck deckJSON
	api.do(http.MethodPost, "/decks", `{"name":"d"}`, &deck)
	var card cardJSON
	api.do(http.MethodPost, "/cards", `{"deck_id":"`+deck.ID+`"}`, &card)
	api.do(http.MethodPost, "/cards/"+card.ID+"/duplicate", "", nil)

	rec := api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `promptdec_http_requests_total{method="POST",route="/decks",status="200"} 1`)
	assert.Contains(t, out, "promptdec_cards_duplicated_total 1")
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/decks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

// failingStore fails every call it overrides; calls it does not override
// panic through the nil embedded interface.
type failingStore struct {
	Store
}

func (f *failingStore) EnsureUser(ctx context.Context, p repository.Profile) (models.User, bool, error) {
	return models.User{ID: p.ID}, false, nil
}

func (f *failingStore) ListDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	return nil, errors.New("connection reset by peer")
}

func TestStoreFailureIsInternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h, err := NewRouter(&DBHandler{Store: &failingStore{}, Log: zap.New(core)}, config.Default())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/decks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.JSONEq(t, `{"error":"internal_error","detail":"internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestReadyReportsStoreFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

	h, err := NewRouter(&DBHandler{Store: repository.New(db), Log: zap.NewNop()}, config.Default())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBodyTooLarge(t *testing.T) {
	api := newTestAPI(t)
	big := `{"name":"` + string(bytes.Repeat([]byte("a"), maxBodyBytes)) + `"}`

	var body errorJSON
	rec := api.do(http.MethodPost, "/decks", big, &body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", body.Error)
}
