package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadagent/internal/agent"
	"leadagent/internal/config"
	"leadagent/internal/leads"
	"leadagent/internal/llm"
	"leadagent/internal/render"
	"leadagent/internal/session"
	"leadagent/internal/tools"
)

func newTestServer(t *testing.T, replies ...string) (*Server, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	staticDir := t.TempDir()

	configStore := config.NewStore(dataDir)
	require.NoError(t, configStore.Save(map[string]any{"company_name": "Acme Travel"}))

	sessions := session.NewStore(dataDir + "/sessions")
	leadStore := leads.NewStore(dataDir)
	mailer := tools.NewMailer(tools.SMTPConfig{Host: "smtp.example.com", Port: 587})
	renderer := render.NewFlyerRenderer(staticDir)
	registry := tools.NewRegistry(leadStore, mailer, renderer)
	orchestrator := agent.New(&llm.MockClient{Replies: replies}, configStore, registry)

	return New(orchestrator, sessions, configStore, leadStore, staticDir), sessions
}

func postJSON(t *testing.T, srv *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestChatCreatesSessionAndPersistsTurns(t *testing.T) {
	srv, sessions := newTestServer(t, "Hello! How can I help?")

	rec := postJSON(t, srv, "/api/chat", map[string]any{"message": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Response  string `json:"response"`
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello! How can I help?", resp.Response)
	require.NotEmpty(t, resp.SessionID)

	stored, err := sessions.Get(resp.SessionID)
	require.NoError(t, err)
	require.Len(t, stored.Turns, 2)
	assert.Equal(t, "user", stored.Turns[0].Role)
	assert.Equal(t, "hi", stored.Turns[0].Content)
	assert.Equal(t, "assistant", stored.Turns[1].Role)
}

func TestChatContinuesExistingSession(t *testing.T) {
	srv, sessions := newTestServer(t, "first", "second")

	rec := postJSON(t, srv, "/api/chat", map[string]any{"message": "one"})
	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = postJSON(t, srv, "/api/chat", map[string]any{"message": "two", "session_id": resp.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := sessions.Get(resp.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Turns, 4)
}

func TestChatUnknownSessionIs404(t *testing.T) {
	srv, _ := newTestServer(t, "irrelevant")

	rec := postJSON(t, srv, "/api/chat", map[string]any{"message": "hi", "session_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatRequiresMessage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postJSON(t, srv, "/api/chat", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatExposesSideChannel(t *testing.T) {
	srv, _ := newTestServer(t, `{"tool":"generate_flyer_pdf","params":{"title":"Bali","content":"fun","filename":"bali.pdf"}}`)

	rec := postJSON(t, srv, "/api/chat", map[string]any{"message": "flyer please"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ToolExecuted *tools.SideChannel `json:"tool_executed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.ToolExecuted)
	assert.Equal(t, "download", resp.ToolExecuted.Action)
}

func TestConfigRoundTripOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postJSON(t, srv, "/api/config", map[string]any{"ceo_email": "boss@acme.example"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getJSON(t, srv, "/api/config")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "boss@acme.example", doc["ceo_email"])
	assert.Equal(t, "Acme Travel", doc["company_name"])
}

func TestApplyUnknownPresetIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postJSON(t, srv, "/api/presets/apply", map[string]any{"preset_id": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKnowledgeUpload(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postJSON(t, srv, "/api/knowledge", map[string]any{"text": "Bali packages from $999."})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalytics(t *testing.T) {
	srv, _ := newTestServer(t, "hello")

	rec := postJSON(t, srv, "/api/chat", map[string]any{"message": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getJSON(t, srv, "/api/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TotalSessions int `json:"total_sessions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalSessions)
}
