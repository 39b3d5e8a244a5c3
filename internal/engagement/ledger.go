// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Ledger remembers which records this viewer has already voted for. It is
// the per-browser store of the web client; nothing ties it to a person, so
// clearing it (or switching devices) allows voting again.
type Ledger interface {
	HasVoted(key string) bool
	MarkVoted(key string) error
}

// Key is the ledger key for a vote on one record.
func Key(resource, id string) string {
	return resource + "-likes-" + id
}

// MemoryLedger keeps votes for the life of the process.
type MemoryLedger struct {
	mu    sync.RWMutex
	votes map[string]bool
}

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{votes: make(map[string]bool)}
}

func (l *MemoryLedger) HasVoted(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.votes[key]
}

func (l *MemoryLedger) MarkVoted(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.votes[key] = true
	return nil
}

// FileLedger persists votes as a JSON object in a file, the way the browser
// client keeps them in localStorage.
type FileLedger struct {
	path string

	mu    sync.Mutex
	votes map[string]bool
}

// DefaultLedgerPath is votes.json under the user's config directory.
func DefaultLedgerPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("ledger path: %w", err)
	}
	return filepath.Join(dir, "folio", "votes.json"), nil
}

// OpenFileLedger loads the ledger at path. A missing file is an empty
// ledger; a corrupt one is logged and treated as empty.
func OpenFileLedger(path string) (*FileLedger, error) {
	l := &FileLedger{path: path, votes: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if err := json.Unmarshal(data, &l.votes); err != nil {
		slog.Warn("vote ledger corrupt, starting empty", "path", path, "error", err)
		l.votes = make(map[string]bool)
	}
	return l, nil
}

func (l *FileLedger) HasVoted(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.votes[key]
}

// MarkVoted records the vote and rewrites the file atomically.
func (l *FileLedger) MarkVoted(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.votes[key] {
		return nil
	}
	l.votes[key] = true
	if err := l.flush(); err != nil {
		delete(l.votes, key)
		return err
	}
	return nil
}

// flush writes votes to a temp file and renames it over the ledger.
func (l *FileLedger) flush() error {
	data, err := json.MarshalIndent(l.votes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".votes-*.json")
	if err != nil {
		return fmt.Errorf("create ledger temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
