package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenCache holds the ID token of the provider's current user.
//
// Load returns "" and a nil error when nothing is cached.
type TokenCache interface {
	Load() (string, error)
	Store(token string) error
	Clear() error
}

// MemoryCache keeps the token in process memory.
type MemoryCache struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Load() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, nil
}

func (c *MemoryCache) Store(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear() error {
	return c.Store("")
}

// FileCache persists the token in a file readable only by the owner, so separate
// processes (for example successive CLI invocations) share the signed-in user.
type FileCache struct {
	mu   sync.Mutex
	path string
}

// NewFileCache returns a FileCache backed by path. The file is created on first
// Store.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the backing file path.
func (c *FileCache) Path() string {
	return c.path
}

func (c *FileCache) Load() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token cache: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (c *FileCache) Store(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token cache dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".authflow-token-*")
	if err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear token cache: %w", err)
	}
	return nil
}
