// Package schema fetches the textual graph schema from Neo4j and caches it
// on disk for the agent's selection prompts.
package schema

import (
	"fmt"
	"os"
)

// FileCache loads and stores the schema text at a fixed path. It implements
// the agent's SchemaProvider contract; it never refreshes on its own.
type FileCache struct {
	path string
}

// NewFileCache creates a cache backed by the given file path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// LoadCachedSchema returns the cached schema text, or an empty string when
// the cache file is missing or unreadable.
func (c *FileCache) LoadCachedSchema() string {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return ""
	}
	return string(data)
}

// Store writes the schema text to the cache file.
func (c *FileCache) Store(text string) error {
	if err := os.WriteFile(c.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write schema cache: %w", err)
	}
	return nil
}

// Path returns the cache file location.
func (c *FileCache) Path() string {
	return c.path
}
