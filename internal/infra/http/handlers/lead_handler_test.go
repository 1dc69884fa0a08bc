package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/danguerrag/go-leads-api/internal/config"
	"github.com/danguerrag/go-leads-api/internal/entity"
	"github.com/danguerrag/go-leads-api/internal/infra/http/handlers"
	"github.com/danguerrag/go-leads-api/internal/infra/mail"
	"github.com/danguerrag/go-leads-api/internal/usecase"
)

// memLeadRepository keeps leads in insertion order, like the table scan
// the real repository orders by.
type memLeadRepository struct {
	mu    sync.Mutex
	leads []*entity.Lead
}

func (r *memLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *lead
	r.leads = append(r.leads, &copied)
	return nil
}

func (r *memLeadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		copied := *l
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			copied := *l
			return &copied, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (r *memLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.leads {
		if l.ID == lead.ID {
			copied := *lead
			r.leads[i] = &copied
			return nil
		}
	}
	return entity.ErrLeadNotFound
}

func (r *memLeadRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.leads {
		if l.ID == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return entity.ErrLeadNotFound
}

func (r *memLeadRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.leads)
}

// chanSender pushes every accepted message onto a channel so tests can
// wait for the fire-and-forget notification goroutine.
type chanSender struct {
	messages chan mail.Message
	err      error
}

func newChanSender() *chanSender {
	return &chanSender{messages: make(chan mail.Message, 8)}
}

func (s *chanSender) Send(msg mail.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.messages <- msg
	return "<test@localhost>", nil
}

func activeMailConfig() config.MailConfig {
	return config.MailConfig{
		Enabled:   true,
		Host:      "smtp.example.com",
		Port:      587,
		User:      "bot@example.com",
		Password:  "secret",
		Recipient: "ops@example.com",
	}
}

func newTestServer(t *testing.T, cfg config.MailConfig, sender mail.Sender) (*chi.Mux, *memLeadRepository) {
	t.Helper()

	repo := &memLeadRepository{}
	notifier := mail.NewLeadNotifier(cfg, zaptest.NewLogger(t))
	if sender != nil {
		notifier.Sender = sender
	}
	uc := usecase.NewLeadUseCase(repo, notifier)
	handler := handlers.NewLeadHandler(uc)

	r := chi.NewRouter()
	r.Route("/leads", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Patch("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r, repo
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func anaPayload() map[string]any {
	return map[string]any{
		"fullName": "Ana Gomez",
		"email":    "ana@example.com",
		"phone":    "+1234567890",
		"message":  "Interested in pricing",
	}
}

func TestCreateLead_Created(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, repo := newTestServer(t, cfg, nil)

	before := time.Now()
	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())
	after := time.Now()

	require.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Ana Gomez", lead.FullName)
	assert.False(t, lead.Date.Before(before.Add(-time.Second)))
	assert.False(t, lead.Date.After(after.Add(time.Second)))
	assert.Equal(t, 1, repo.count())
}

func TestCreateLead_ValidationFailures(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing message", map[string]any{"fullName": "Ana", "email": "ana@example.com", "phone": "+123"}},
		{"invalid email", map[string]any{"fullName": "Ana", "email": "not-an-email", "phone": "+123", "message": "hi"}},
		{"unknown field", map[string]any{"fullName": "Ana", "email": "ana@example.com", "phone": "+123", "message": "hi", "admin": true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, repo := newTestServer(t, cfg, nil)

			rec := doJSON(t, router, http.MethodPost, "/leads", tc.payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, repo.count())
		})
	}
}

func TestCreateLead_MalformedJSON(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, repo := newTestServer(t, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, repo.count())
}

func TestEndToEnd_ActiveMailer(t *testing.T) {
	sender := newChanSender()
	router, repo := newTestServer(t, activeMailConfig(), sender)

	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.NotEmpty(t, lead.ID)
	assert.WithinDuration(t, time.Now(), lead.Date, 5*time.Second)
	assert.Equal(t, 1, repo.count())

	select {
	case msg := <-sender.messages:
		assert.Equal(t, "ops@example.com", msg.To)
		assert.Contains(t, msg.TextBody, "ana@example.com")
		assert.Contains(t, msg.TextBody, "Interested in pricing")
	case <-time.After(2 * time.Second):
		t.Fatal("expected an outbound message, got none")
	}

	// Exactly one.
	select {
	case <-sender.messages:
		t.Fatal("expected exactly one outbound message")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEndToEnd_DisabledMailer(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	sender := newChanSender()
	router, repo := newTestServer(t, cfg, sender)

	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, 1, repo.count())

	select {
	case <-sender.messages:
		t.Fatal("disabled mailer must not send")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCreateLead_SenderFailureDoesNotAffectPersistence(t *testing.T) {
	sender := newChanSender()
	sender.err = errors.New("smtp always down")
	router, repo := newTestServer(t, activeMailConfig(), sender)

	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())

	require.Equal(t, http.StatusCreated, rec.Code)
	var lead entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Ana Gomez", lead.FullName)
	assert.Equal(t, 1, repo.count())
}

func TestListLeads(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, _ := newTestServer(t, cfg, nil)

	rec := doJSON(t, router, http.MethodGet, "/leads", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var leads []entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&leads))
	assert.Empty(t, leads)

	first := anaPayload()
	second := anaPayload()
	second["fullName"] = "Luis Perez"
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/leads", first).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/leads", second).Code)

	rec = doJSON(t, router, http.MethodGet, "/leads", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&leads))
	require.Len(t, leads, 2)
	assert.Equal(t, "Ana Gomez", leads[0].FullName)
	assert.Equal(t, "Luis Perez", leads[1].FullName)
}

func TestGetLead(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, _ := newTestServer(t, cfg, nil)

	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = doJSON(t, router, http.MethodGet, "/leads/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)

	rec = doJSON(t, router, http.MethodGet, "/leads/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateLead(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, repo := newTestServer(t, cfg, nil)

	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = doJSON(t, router, http.MethodPatch, "/leads/"+created.ID, map[string]any{"message": "Please call me back"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Please call me back", updated.Message)
	assert.Equal(t, "Ana Gomez", updated.FullName)

	rec = doJSON(t, router, http.MethodPatch, "/leads/missing-id", map[string]any{"message": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, repo.count())
}

func TestDeleteLead_Idempotence(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, repo := newTestServer(t, cfg, nil)

	rec := doJSON(t, router, http.MethodPost, "/leads", anaPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = doJSON(t, router, http.MethodDelete, "/leads/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, repo.count())

	// A second delete is a NotFound, not a silent success.
	rec = doJSON(t, router, http.MethodDelete, "/leads/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimiter_Blocks(t *testing.T) {
	cfg := activeMailConfig()
	cfg.Enabled = false
	router, _ := newTestServer(t, cfg, nil)

	var last int
	for i := 0; i < 11; i++ {
		last = doJSON(t, router, http.MethodPost, "/leads", anaPayload()).Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
