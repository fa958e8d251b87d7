package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agenthub/agenthub/internal/config"
	"github.com/agenthub/agenthub/internal/registry"
	"github.com/agenthub/agenthub/internal/router"
	"github.com/agenthub/agenthub/internal/service"
	"github.com/agenthub/agenthub/policy"
	"github.com/agenthub/agenthub/tests/helpers"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	s := helpers.NewTestSQLiteStore(t)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	cfg := &config.Config{StaleAfter: time.Minute}
	svc := service.New(s, registry.New(s), router.New(), engine, cfg)
	return NewHandler(svc)
}

func doJSON(t *testing.T, h func(echo.Context) error, method, path, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func registerTestAgent(t *testing.T, h *Handler, id string, caps string) {
	t.Helper()
	body := `{"agent_id":"` + id + `","agent_name":"` + id + `","agent_type":"worker","endpoint_url":"http://` + id + `","capabilities":` + caps + `}`
	rec := doJSON(t, h.RegisterAgent, http.MethodPost, "/v1/agents/register", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: expected 200, got %d: %s", id, rec.Code, rec.Body.String())
	}
}

func TestRegisterAgentValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.RegisterAgent, http.MethodPost, "/v1/agents/register", `{"agent_name":"demo"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterAgentSuccess(t *testing.T) {
	h := newTestHandler(t)
	registerTestAgent(t, h, "demo", `["testing"]`)

	rec := doJSON(t, h.GetAgent, http.MethodGet, "/v1/agents/demo", "", "agent_id", "demo")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHeartbeatUnknownAgent(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.Heartbeat, http.MethodPost, "/v1/agents/ghost/heartbeat", "", "agent_id", "ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHeartbeatSuccess(t *testing.T) {
	h := newTestHandler(t)
	registerTestAgent(t, h, "demo", `[]`)

	rec := doJSON(t, h.Heartbeat, http.MethodPost, "/v1/agents/demo/heartbeat", "", "agent_id", "demo")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListAgents(t *testing.T) {
	h := newTestHandler(t)
	registerTestAgent(t, h, "a1", `["testing"]`)
	registerTestAgent(t, h, "a2", `[]`)

	rec := doJSON(t, h.ListAgents, http.MethodGet, "/v1/agents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetAgentNotFound(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.GetAgent, http.MethodGet, "/v1/agents/a1", "", "agent_id", "a1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
