package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogEntry represents a single task evaluation record in JSONL format.
// The record wraps the deterministic TaskResult with run metadata: a unique
// entry ID and the wall-clock time of the evaluation.
type LogEntry struct {
	// ID uniquely identifies this log entry.
	ID string `json:"id"`

	// Timestamp is when the evaluation was performed.
	Timestamp time.Time `json:"timestamp"`

	// Result is the full task result, including per-evaluator outcomes.
	Result *TaskResult `json:"result"`

	// Duration is the total evaluation time in milliseconds.
	Duration int64 `json:"duration_ms"`
}

// Logger persists task results as they are produced.
type Logger interface {
	// Log records one task result and the time evaluation took.
	Log(result *TaskResult, duration time.Duration) error

	// Close flushes and releases the logger's resources.
	Close() error
}

// JSONLLogger implements Logger by appending evaluation results to a JSONL
// file, one JSON object per line. It is safe for concurrent use.
type JSONLLogger struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLLogger creates a JSONL logger writing to path. The file is opened
// in append mode and created if it does not exist. The returned logger must
// be closed when done.
//
// Example:
//
//	logger, err := eval.NewJSONLLogger("results.jsonl")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
func NewJSONLLogger(path string) (*JSONLLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return &JSONLLogger{
		path: path,
		file: file,
	}, nil
}

// Log writes a task result as a single JSON line. The file is synced after
// each write so records survive a crash.
//
// This method is thread-safe and can be called concurrently.
func (l *JSONLLogger) Log(result *TaskResult, duration time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Result:    result,
		Duration:  duration.Milliseconds(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}

	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to flush log file: %w", err)
	}

	return nil
}

// Close flushes any buffered data and closes the underlying file.
func (l *JSONLLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to flush log file before close: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	return nil
}
