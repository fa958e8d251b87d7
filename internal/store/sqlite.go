package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/agenthub/agenthub/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS agent_registry (
			agent_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			capabilities TEXT,
			status TEXT NOT NULL DEFAULT 'online',
			last_heartbeat DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS message_history (
			message_id TEXT PRIMARY KEY,
			sender_id TEXT NOT NULL,
			receiver_id TEXT,
			message_type TEXT NOT NULL,
			content TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON message_history(receiver_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS task_coordination (
			task_id TEXT PRIMARY KEY,
			task_type TEXT NOT NULL,
			requester_id TEXT NOT NULL,
			assignee_id TEXT NOT NULL,
			description TEXT NOT NULL,
			payload TEXT,
			priority INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,
			result TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON task_coordination(assignee_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS collaboration_sessions (
			session_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			participants TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertAgent registers or overwrites an agent record.
func (s *SQLiteStore) UpsertAgent(ctx context.Context, agent *domain.Agent) error {
	caps, _ := json.Marshal(agent.Capabilities)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO agent_registry (agent_id, name, type, endpoint, capabilities, status, last_heartbeat, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		agent.AgentID, agent.Name, agent.Type, agent.Endpoint, string(caps), agent.Status, agent.LastHeartbeat, agent.CreatedAt)
	return err
}

// GetAgent retrieves an agent by ID.
func (s *SQLiteStore) GetAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT agent_id, name, type, endpoint, capabilities, status, last_heartbeat, created_at FROM agent_registry WHERE agent_id = ?`,
		agentID)
	agent, err := scanAgent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// ListAgents lists all agents in registration order.
func (s *SQLiteStore) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT agent_id, name, type, endpoint, capabilities, status, last_heartbeat, created_at FROM agent_registry ORDER BY created_at, agent_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *agent)
	}
	return agents, rows.Err()
}

// UpdateAgentLiveness updates the status and heartbeat of an agent.
func (s *SQLiteStore) UpdateAgentLiveness(ctx context.Context, agentID string, status domain.AgentStatus, lastHeartbeat *time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE agent_registry SET status = ?, last_heartbeat = COALESCE(?, last_heartbeat) WHERE agent_id = ?`,
		status, lastHeartbeat, agentID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	var agent domain.Agent
	var caps sql.NullString
	var lastHeartbeat sql.NullTime
	if err := row.Scan(&agent.AgentID, &agent.Name, &agent.Type, &agent.Endpoint, &caps, &agent.Status, &lastHeartbeat, &agent.CreatedAt); err != nil {
		return nil, err
	}
	if caps.Valid && caps.String != "" && caps.String != "null" {
		if err := json.Unmarshal([]byte(caps.String), &agent.Capabilities); err != nil {
			return nil, fmt.Errorf("failed to decode capabilities for %s: %w", agent.AgentID, err)
		}
	}
	if lastHeartbeat.Valid {
		agent.LastHeartbeat = &lastHeartbeat.Time
	}
	return &agent, nil
}

// CreateMessage records a message in the history.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	var receiverID sql.NullString
	if message.ReceiverID != "" {
		receiverID = sql.NullString{String: message.ReceiverID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO message_history (message_id, sender_id, receiver_id, message_type, content, priority, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.SenderID, receiverID, message.Type, string(message.Content), message.Priority, message.CreatedAt)
	return err
}

// GetMessages retrieves the message history addressed to an agent. A NULL
// receiver is a broadcast, addressed to everyone but its sender.
func (s *SQLiteStore) GetMessages(ctx context.Context, agentID string, limit int) ([]domain.Message, error) {
	query := `SELECT message_id, sender_id, receiver_id, message_type, content, priority, created_at FROM message_history
		WHERE receiver_id = ? OR (receiver_id IS NULL AND sender_id != ?) ORDER BY created_at ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, agentID, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var receiverID sql.NullString
		var content string
		if err := rows.Scan(&msg.MessageID, &msg.SenderID, &receiverID, &msg.Type, &content, &msg.Priority, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if receiverID.Valid {
			msg.ReceiverID = receiverID.String
		}
		msg.Content = json.RawMessage(content)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// CountMessages counts all recorded messages.
func (s *SQLiteStore) CountMessages(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM message_history`).Scan(&count)
	return count, err
}

// CreateTask creates a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *domain.Task) error {
	payload := ""
	if task.Payload != nil {
		payload = string(task.Payload)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO task_coordination (task_id, task_type, requester_id, assignee_id, description, payload, priority, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.TaskID, task.Type, task.RequesterID, task.AssigneeID, task.Description, payload, task.Priority, task.Status, task.CreatedAt)
	return err
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	var task domain.Task
	var payload, result sql.NullString
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT task_id, task_type, requester_id, assignee_id, description, payload, priority, status, created_at, completed_at, result FROM task_coordination WHERE task_id = ?`,
		taskID).Scan(&task.TaskID, &task.Type, &task.RequesterID, &task.AssigneeID, &task.Description, &payload, &task.Priority, &task.Status, &task.CreatedAt, &completedAt, &result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if payload.Valid && payload.String != "" {
		task.Payload = json.RawMessage(payload.String)
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	if result.Valid && result.String != "" {
		task.Result = json.RawMessage(result.String)
	}
	return &task, nil
}

// CompleteTask moves a task to a terminal state and stores its result. The
// update is conditional on the caller being the stored assignee and the task
// still being assigned, so concurrent submissions cannot both win; it
// returns whether a row was updated.
func (s *SQLiteStore) CompleteTask(ctx context.Context, taskID, agentID string, status domain.TaskStatus, result json.RawMessage, completedAt time.Time) (bool, error) {
	var resultStr sql.NullString
	if result != nil {
		resultStr = sql.NullString{String: string(result), Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE task_coordination SET status = ?, completed_at = ?, result = ? WHERE task_id = ? AND assignee_id = ? AND status = ?`,
		status, completedAt, resultStr, taskID, agentID, domain.TaskStatusAssigned)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountTasksByStatus counts tasks in the given status.
func (s *SQLiteStore) CountTasksByStatus(ctx context.Context, status domain.TaskStatus) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_coordination WHERE status = ?`, status).Scan(&count)
	return count, err
}

// CreateSession creates a new collaboration session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	participants, _ := json.Marshal(session.Participants)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collaboration_sessions (session_id, name, participants, type, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		session.SessionID, session.Name, string(participants), session.Type, session.Status, session.CreatedAt)
	return err
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	var participants string
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, name, participants, type, status, created_at FROM collaboration_sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.Name, &participants, &session.Type, &session.Status, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if participants != "" && participants != "null" {
		if err := json.Unmarshal([]byte(participants), &session.Participants); err != nil {
			return nil, fmt.Errorf("failed to decode participants for %s: %w", sessionID, err)
		}
	}
	return &session, nil
}
