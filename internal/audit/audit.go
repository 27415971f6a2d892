// Package audit records the activation history of integrations.
// Events are stored as JSON Lines (JSONL) files, one per integration.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/vdev-tools/vdev/internal/logging"
)

// DirName is the directory under the state dir holding the event logs.
const DirName = "history"

// EventType classifies a history event.
type EventType string

const (
	EventActivate   EventType = "activate"
	EventDeactivate EventType = "deactivate"
)

// Event represents a single history entry.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Integration string    `json:"integration"`
	Environment string    `json:"environment,omitempty"`
}

// Logger writes and reads history events.
// Events are stored in {stateDir}/history/{integration}.jsonl.
type Logger struct {
	dir string
	now func() time.Time
}

// NewLogger creates a new history logger rooted at stateDir.
func NewLogger(stateDir string) *Logger {
	return &Logger{dir: filepath.Join(stateDir, DirName), now: time.Now}
}

func (l *Logger) eventPath(integration string) (string, error) {
	if integration == "" {
		return "", fmt.Errorf("integration name is empty")
	}
	return securejoin.SecureJoin(l.dir, integration+".jsonl")
}

// Log appends an event to the integration's history.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}

	path, err := l.eventPath(event.Integration)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, integration, environment string) error {
	return l.Log(Event{
		Type:        eventType,
		Integration: integration,
		Environment: environment,
	})
}

// Events reads all events of an integration in chronological order.
func (l *Logger) Events(integration string) ([]Event, error) {
	path, err := l.eventPath(integration)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			logging.Debug("skipping malformed history line", "integration", integration, "error", err)
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	return events, nil
}

// Remove deletes the history of an integration.
func (l *Logger) Remove(integration string) error {
	path, err := l.eventPath(integration)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
