// Package history caches the backend's conversation registry locally so
// listing and resuming chats works without waiting on the network.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aegislabs/aegis/internal/models"
)

// Entry is one cached conversation: the registry summary plus whatever
// turns were last fetched for it.
type Entry struct {
	Summary  models.ConversationSummary `json:"summary"`
	Messages []models.StoredMessage     `json:"messages,omitempty"`
	CachedAt time.Time                  `json:"cached_at"`
}

// Store manages the on-disk conversation cache.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a cache store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	historyDir := filepath.Join(baseDir, "history")
	if err := os.MkdirAll(historyDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Store{
		baseDir: historyDir,
	}, nil
}

// Put caches or refreshes one conversation.
func (s *Store) Put(summary models.ConversationSummary, messages []models.StoredMessage) error {
	if summary.ID == "" {
		return fmt.Errorf("conversation id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Summary:  summary,
		Messages: messages,
		CachedAt: time.Now(),
	}

	return s.saveEntry(&entry)
}

// Get retrieves a cached conversation by ID.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadEntry(id)
}

// List returns all cached conversations, most recently updated first.
func (s *Store) List() ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var entries []*Entry
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		id := file.Name()[:len(file.Name())-5]
		entry, err := s.loadEntry(id)
		if err != nil {
			continue // Skip corrupted files
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Summary.UpdatedAt.After(entries[j].Summary.UpdatedAt)
	})

	return entries, nil
}

// SetTitle updates the cached title after a rename.
func (s *Store) SetTitle(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.loadEntry(id)
	if err != nil {
		return err
	}

	entry.Summary.Title = title
	entry.Summary.UpdatedAt = time.Now()

	return s.saveEntry(entry)
}

// Delete removes one cached conversation.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.entryPath(id)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("conversation not found: %s", id)
		}
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	return nil
}

// Clear empties the cache.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to read history directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		path := filepath.Join(s.baseDir, file.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", file.Name(), err)
		}
	}

	return nil
}

// Internal methods

func (s *Store) entryPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *Store) loadEntry(id string) (*Entry, error) {
	path := s.entryPath(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("conversation not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}

	return &entry, nil
}

func (s *Store) saveEntry(entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	path := s.entryPath(entry.Summary.ID)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}

	return nil
}

// DefaultStore creates a store under the aegis config directory.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".aegis"))
}
