package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TaskType classifies the main objective an agent reports having performed.
type TaskType string

// Task type constants.
const (
	TaskTypeRetrieve TaskType = "RETRIEVE"
	TaskTypeNavigate TaskType = "NAVIGATE"
	TaskTypeMutate   TaskType = "MUTATE"
)

// String returns the string representation of the task type.
func (t TaskType) String() string {
	return string(t)
}

// IsValid returns true if the task type is a recognized value.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeRetrieve, TaskTypeNavigate, TaskTypeMutate:
		return true
	default:
		return false
	}
}

// Status is the terminal status an agent reports for a task.
type Status string

// Status constants. The *_ERROR statuses report environment conditions that
// legitimately prevented the task, as opposed to the agent failing at it.
const (
	StatusSuccess          Status = "SUCCESS"
	StatusFailure          Status = "FAILURE"
	StatusNotFound         Status = "NOT_FOUND_ERROR"
	StatusActionNotAllowed Status = "ACTION_NOT_ALLOWED_ERROR"
	StatusDataValidation   Status = "DATA_VALIDATION_ERROR"
	StatusPermissionDenied Status = "PERMISSION_DENIED_ERROR"
	StatusUnknownError     Status = "UNKNOWN_ERROR"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusNotFound, StatusActionNotAllowed,
		StatusDataValidation, StatusPermissionDenied, StatusUnknownError:
		return true
	default:
		return false
	}
}

// IsError returns true for the environment-error statuses.
func (s Status) IsError() bool {
	return strings.HasSuffix(string(s), "_ERROR")
}

// AgentResponse is the structured final answer an agent returns for a task.
type AgentResponse struct {
	TaskType      TaskType `json:"task_type"`
	Status        Status   `json:"status"`
	RetrievedData any      `json:"retrieved_data,omitempty"`
	ErrorDetails  string   `json:"error_details,omitempty"`
}

// ParseAgentResponse decodes an agent's raw final response. Markdown code
// fences around the JSON object are tolerated, the legacy performed_operation
// field maps to task_type, and enum values parse case-insensitively.
func ParseAgentResponse(raw string) (*AgentResponse, error) {
	text := stripCodeFence(raw)

	var fields struct {
		TaskType           string `json:"task_type"`
		PerformedOperation string `json:"performed_operation"`
		Status             string `json:"status"`
		RetrievedData      any    `json:"retrieved_data"`
		ErrorDetails       string `json:"error_details"`
	}
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("agent response is not a JSON object: %w", err)
	}

	taskType := fields.TaskType
	if taskType == "" {
		taskType = fields.PerformedOperation
	}

	resp := &AgentResponse{
		TaskType:      TaskType(strings.ToUpper(strings.TrimSpace(taskType))),
		Status:        Status(strings.ToUpper(strings.TrimSpace(fields.Status))),
		RetrievedData: fields.RetrievedData,
		ErrorDetails:  fields.ErrorDetails,
	}
	if resp.TaskType != "" && !resp.TaskType.IsValid() {
		return nil, fmt.Errorf("unknown task_type %q", taskType)
	}
	if resp.Status == "" {
		return nil, fmt.Errorf("agent response has no status")
	}
	if !resp.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q", fields.Status)
	}
	return resp, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace.
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first := strings.TrimSpace(text[:i])
		// A bare language tag like "json" sits alone on the fence line.
		if first == "" || !strings.ContainsAny(first, "{[") {
			text = text[i+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
