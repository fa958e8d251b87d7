package v1

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCreateSessionValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.CreateSession, http.MethodPost, "/v1/sessions", `{"name":"review"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateSessionAndFetch(t *testing.T) {
	h := newTestHandler(t)
	registerTestAgent(t, h, "a1", `[]`)
	registerTestAgent(t, h, "a2", `[]`)

	body := `{"name":"review","participants":["a1","a2"],"type":"pairing"}`
	rec := doJSON(t, h.CreateSession, http.MethodPost, "/v1/sessions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	sessionID := resp["session_id"]
	if sessionID == "" {
		t.Fatalf("expected a session_id")
	}

	rec = doJSON(t, h.GetSession, http.MethodGet, "/v1/sessions/"+sessionID, "", "session_id", sessionID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Each participant got an invite.
	rec = doJSON(t, h.GetMessages, http.MethodGet, "/v1/messages/a1", "", "agent_id", "a1")
	var inbox struct {
		Messages []map[string]interface{} `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &inbox); err != nil {
		t.Fatalf("decode inbox failed: %v", err)
	}
	if len(inbox.Messages) != 1 {
		t.Fatalf("expected 1 invite, got %d", len(inbox.Messages))
	}
}

func TestCoordinate(t *testing.T) {
	h := newTestHandler(t)
	registerTestAgent(t, h, "a1", `[]`)

	body := `{"task_name":"render","payload":{"frames":10},"participants":["a1"]}`
	rec := doJSON(t, h.Coordinate, http.MethodPost, "/v1/sessions/coordinate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.GetSession, http.MethodGet, "/v1/sessions/nope", "", "session_id", "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	h := newTestHandler(t)
	registerTestAgent(t, h, "a1", `["testing"]`)

	rec := doJSON(t, h.Status, http.MethodGet, "/v1/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var status map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status failed: %v", err)
	}
	if status["total_agents"].(float64) != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
}
