// Package audit persists an append-only trail of order outcomes for each
// batch run.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is one audit record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	BatchID   string    `json:"batch_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	Action    string    `json:"action"`
	Code      string    `json:"code,omitempty"`
	Metadata  any       `json:"metadata,omitempty"`
}

// Trail appends entries to a JSON-lines stream.
type Trail struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// Open creates (or truncates) the audit file at path, creating parent
// directories as needed.
func Open(path string) (*Trail, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: create dir %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	return &Trail{w: file, closer: file}, nil
}

// NewTrail writes entries to w. Useful for tests.
func NewTrail(w io.Writer) *Trail {
	return &Trail{w: w}
}

// Append writes one entry as a JSON line.
func (t *Trail) Append(e Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("audit: encode entry: %w", err)
	}
	if _, err := t.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file when there is one.
func (t *Trail) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// Service records audit entries when auditing is enabled.
type Service struct {
	Trail   *Trail
	Enabled bool
}

// Record persists an audit entry.
func (s Service) Record(ctx context.Context, e Entry) error {
	if !s.Enabled {
		return nil
	}
	if s.Trail == nil {
		return errors.New("audit: trail not configured")
	}
	if strings.TrimSpace(e.Action) == "" {
		return errors.New("audit: action is required")
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return s.Trail.Append(e)
}
