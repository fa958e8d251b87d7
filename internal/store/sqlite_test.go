package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreAgentUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	hb := time.Now()
	agent := &domain.Agent{
		AgentID:       "a1",
		Name:          "Demo",
		Type:          "worker",
		Endpoint:      "http://agent",
		Capabilities:  []string{"code_review", "testing"},
		Status:        domain.AgentStatusOnline,
		LastHeartbeat: &hb,
		CreatedAt:     time.Now(),
	}
	if err := s.UpsertAgent(ctx, agent); err != nil {
		t.Fatalf("UpsertAgent failed: %v", err)
	}

	got, err := s.GetAgent(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got == nil || got.Endpoint != "http://agent" {
		t.Fatalf("unexpected agent: %+v", got)
	}
	if len(got.Capabilities) != 2 || got.Capabilities[0] != "code_review" {
		t.Fatalf("unexpected capabilities: %+v", got.Capabilities)
	}

	// Re-registering the same id overwrites without creating a duplicate.
	agent.Endpoint = "http://agent-v2"
	agent.Capabilities = []string{"testing"}
	if err := s.UpsertAgent(ctx, agent); err != nil {
		t.Fatalf("UpsertAgent overwrite failed: %v", err)
	}

	agents, err := s.ListAgents(ctx)
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}
	if agents[0].Endpoint != "http://agent-v2" || len(agents[0].Capabilities) != 1 {
		t.Fatalf("overwrite not applied: %+v", agents[0])
	}
}

func TestSQLiteStoreAgentLiveness(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	hb := time.Now().Add(-2 * time.Minute)
	agent := &domain.Agent{
		AgentID:       "a1",
		Name:          "Demo",
		Type:          "worker",
		Endpoint:      "http://agent",
		Status:        domain.AgentStatusOnline,
		LastHeartbeat: &hb,
		CreatedAt:     time.Now(),
	}
	if err := s.UpsertAgent(ctx, agent); err != nil {
		t.Fatalf("UpsertAgent failed: %v", err)
	}

	// Offline transition keeps the existing heartbeat.
	if err := s.UpdateAgentLiveness(ctx, "a1", domain.AgentStatusOffline, nil); err != nil {
		t.Fatalf("UpdateAgentLiveness failed: %v", err)
	}
	got, err := s.GetAgent(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got.Status != domain.AgentStatusOffline {
		t.Fatalf("expected offline, got %s", got.Status)
	}
	if got.LastHeartbeat == nil {
		t.Fatalf("heartbeat should be preserved")
	}

	now := time.Now()
	if err := s.UpdateAgentLiveness(ctx, "a1", domain.AgentStatusOnline, &now); err != nil {
		t.Fatalf("UpdateAgentLiveness failed: %v", err)
	}
	got, _ = s.GetAgent(ctx, "a1")
	if got.Status != domain.AgentStatusOnline {
		t.Fatalf("expected online, got %s", got.Status)
	}
}

func TestSQLiteStoreMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	msg := &domain.Message{
		MessageID: "m1",
		SenderID:  "a1",
		Type:      "STATUS_UPDATE",
		Content:   json.RawMessage(`{"text":"hello"}`),
		Priority:  1,
		CreatedAt: time.Now(),
	}
	// Broadcast message: empty receiver stored as NULL.
	if err := s.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	direct := &domain.Message{
		MessageID:  "m2",
		SenderID:   "a1",
		ReceiverID: "a2",
		Type:       "STATUS_UPDATE",
		Content:    json.RawMessage(`{"text":"direct"}`),
		Priority:   2,
		CreatedAt:  time.Now(),
	}
	if err := s.CreateMessage(ctx, direct); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	// a2's history covers both the broadcast and the direct message.
	messages, err := s.GetMessages(ctx, "a2", 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 2 || messages[0].MessageID != "m1" || messages[1].MessageID != "m2" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
	if messages[1].Priority != 2 {
		t.Fatalf("unexpected priority: %d", messages[1].Priority)
	}

	// The sender's own broadcast is not part of its history.
	messages, err = s.GetMessages(ctx, "a1", 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty history for sender, got %+v", messages)
	}

	count, err := s.CountMessages(ctx)
	if err != nil {
		t.Fatalf("CountMessages failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 messages, got %d", count)
	}
}

func TestSQLiteStoreTasks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	task := &domain.Task{
		TaskID:      "t1",
		Type:        "testing",
		RequesterID: "req",
		AssigneeID:  "a1",
		Description: "run the suite",
		Payload:     json.RawMessage(`{"suite":"unit"}`),
		Priority:    1,
		Status:      domain.TaskStatusAssigned,
		CreatedAt:   time.Now(),
	}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	count, err := s.CountTasksByStatus(ctx, domain.TaskStatusAssigned)
	if err != nil {
		t.Fatalf("CountTasksByStatus failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 assigned task, got %d", count)
	}

	// A completion from anyone but the assignee does not touch the row.
	updated, err := s.CompleteTask(ctx, "t1", "a2", domain.TaskStatusCompleted, nil, time.Now())
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if updated {
		t.Fatalf("non-assignee should not update the task")
	}

	updated, err = s.CompleteTask(ctx, "t1", "a1", domain.TaskStatusCompleted, json.RawMessage(`{"passed":true}`), time.Now())
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !updated {
		t.Fatalf("expected the assignee's completion to apply")
	}

	got, err := s.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Status != domain.TaskStatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
	if got.CompletedAt == nil || got.Result == nil {
		t.Fatalf("completion fields missing: %+v", got)
	}

	// The task is terminal; a later write cannot move it again.
	updated, err = s.CompleteTask(ctx, "t1", "a1", domain.TaskStatusFailed, nil, time.Now())
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if updated {
		t.Fatalf("terminal task should not be updated again")
	}
	got, _ = s.GetTask(ctx, "t1")
	if got.Status != domain.TaskStatusCompleted {
		t.Fatalf("terminal status overwritten: %s", got.Status)
	}

	missing, err := s.GetTask(ctx, "nope")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown task")
	}
}

func TestSQLiteStoreSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	session := &domain.Session{
		SessionID:    "s1",
		Name:         "review",
		Participants: []string{"a1", "a2"},
		Type:         "pairing",
		Status:       domain.SessionStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := s.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || len(got.Participants) != 2 || got.Status != domain.SessionStatusActive {
		t.Fatalf("unexpected session: %+v", got)
	}
}
