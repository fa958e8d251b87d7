package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/metrics"
)

// RequestTask matches a task request to a capable online agent, persists
// the task in assigned state and delivers a TASK_REQUEST message to the
// assignee's mailbox. Dispatch is synchronous; there is no pending state
// and no later reassignment.
func (s *Service) RequestTask(ctx context.Context, requesterID, taskType, description string, payload json.RawMessage, priority int, preferredAgent string) (*domain.Task, error) {
	if requesterID == "" {
		return nil, fmt.Errorf("requester_id is required: %w", domain.ErrValidation)
	}
	if taskType == "" {
		return nil, fmt.Errorf("task_type is required: %w", domain.ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("description is required: %w", domain.ErrValidation)
	}
	if priority <= 0 {
		priority = 1
	}

	decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"task_type":    taskType,
		"requester_id": requesterID,
		"priority":     priority,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate dispatch policy: %w", err)
	}
	if decision == "block" {
		return nil, fmt.Errorf("task type %s: %w", taskType, domain.ErrPolicyBlocked)
	}

	assignee, ok := s.registry.FindCapable(taskType, preferredAgent)
	if !ok {
		return nil, fmt.Errorf("task type %s: %w", taskType, domain.ErrNoCapableAgent)
	}

	task := &domain.Task{
		TaskID:      "task_" + uuid.New().String()[:8],
		Type:        taskType,
		RequesterID: requesterID,
		AssigneeID:  assignee.AgentID,
		Description: description,
		Payload:     payload,
		Priority:    priority,
		Status:      domain.TaskStatusAssigned,
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to persist task: %w", err)
	}

	content, err := json.Marshal(domain.TaskRequestPayload{
		TaskID:      task.TaskID,
		TaskType:    task.Type,
		Description: task.Description,
		Payload:     task.Payload,
		Priority:    task.Priority,
		RequesterID: task.RequesterID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task request: %w", err)
	}
	if _, err := s.SendMessage(ctx, requesterID, assignee.AgentID, domain.MessageTypeTaskRequest, content, priority); err != nil {
		return nil, err
	}

	metrics.TasksDispatched.Inc()
	return task, nil
}

// SubmitResult moves a task to a terminal state and notifies the original
// requester with a TASK_RESPONSE message.
//
// The update is conditional on the caller being the stored assignee and
// the task still being assigned; a mismatch or an already-terminal task is
// a silent no-op success. Status only moves forward, even under concurrent
// submissions.
func (s *Service) SubmitResult(ctx context.Context, taskID, agentID string, result json.RawMessage, status domain.TaskStatus) error {
	if taskID == "" {
		return fmt.Errorf("task_id is required: %w", domain.ErrValidation)
	}
	if agentID == "" {
		return fmt.Errorf("agent_id is required: %w", domain.ErrValidation)
	}
	if status == "" {
		status = domain.TaskStatusCompleted
	}
	if status != domain.TaskStatusCompleted && status != domain.TaskStatusFailed {
		return fmt.Errorf("status must be %s or %s: %w", domain.TaskStatusCompleted, domain.TaskStatusFailed, domain.ErrValidation)
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}

	if task.AssigneeID != agentID {
		log.Printf("WARN: result for %s from %s ignored, assignee is %s", taskID, agentID, task.AssigneeID)
		return nil
	}

	// The store update is conditional on the task still being assigned, so
	// only the first of two racing submissions wins.
	now := time.Now()
	updated, err := s.store.CompleteTask(ctx, taskID, agentID, status, result, now)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if !updated {
		log.Printf("WARN: result for %s ignored, task already terminal", taskID)
		return nil
	}
	metrics.TasksFinished.WithLabelValues(string(status)).Inc()

	content, err := json.Marshal(domain.TaskResponsePayload{
		TaskID: taskID,
		Status: status,
		Result: result,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal task response: %w", err)
	}
	if _, err := s.SendMessage(ctx, agentID, task.RequesterID, domain.MessageTypeTaskResponse, content, task.Priority); err != nil {
		return err
	}
	return nil
}

// GetTask returns a task by id.
func (s *Service) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}
	return task, nil
}
