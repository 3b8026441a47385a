package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

const (
	// DocumentFileName is the filename of the profile document
	DocumentFileName = "config.yml"
	// ConfigDirEnv overrides the configuration directory
	ConfigDirEnv = "RESEND_CONFIG_DIR"

	dirPerm  = 0700
	filePerm = 0600
)

// ParseError reports a profile document that exists but cannot be decoded
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrProfileNotFound is returned when deleting a profile that does not exist
var ErrProfileNotFound = errors.New("profile not found")

// DocumentPath returns the location of the profile document. It does not
// touch the filesystem.
func DocumentPath() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(dir, DocumentFileName), nil
	}

	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "resend", DocumentFileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("failed to determine config directory: no user config or home directory")
	}
	return filepath.Join(home, ".resend", DocumentFileName), nil
}

// FileStore persists profiles in a YAML document on disk
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the document at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// NewDefaultFileStore creates a store at the platform default location
func NewDefaultFileStore() (*FileStore, error) {
	path, err := DocumentPath()
	if err != nil {
		return nil, err
	}
	return NewFileStore(path), nil
}

// Path returns the document location
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the document. A missing file yields an empty document.
func (fs *FileStore) Load() (*Document, error) {
	data, err := os.ReadFile(fs.path) // #nosec G304 - path comes from DocumentPath or the caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc := NewDocument()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, &ParseError{Path: fs.path, Err: err}
	}
	return doc, nil
}

// Save writes the document atomically with owner-only permissions
func (fs *FileStore) Save(doc *Document) error {
	if doc == nil {
		doc = NewDocument()
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+DocumentFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write config to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tempPath, filePerm); err != nil {
			_ = os.Remove(tempPath)
			return fmt.Errorf("failed to set config file permissions: %w", err)
		}
	}

	if err := os.Rename(tempPath, fs.path); err != nil {
		_ = os.Remove(tempPath) // Clean up temp file, ignore error
		return fmt.Errorf("failed to atomically update config file: %w", err)
	}

	return nil
}

// SetProfile creates or replaces the named profile. An unreadable existing
// document is reported rather than overwritten.
func (fs *FileStore) SetProfile(name, apiKey string) error {
	doc, err := fs.Load()
	if err != nil {
		return err
	}
	doc.Profiles.Set(name, Profile{APIKey: apiKey})
	return fs.Save(doc)
}

// DeleteProfile removes the named profile
func (fs *FileStore) DeleteProfile(name string) error {
	doc, err := fs.Load()
	if err != nil {
		return err
	}
	if !doc.Profiles.Delete(name) {
		return fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
	}
	return fs.Save(doc)
}

// ListProfileNames returns profile names in the order they are stored
func (fs *FileStore) ListProfileNames() ([]string, error) {
	doc, err := fs.Load()
	if err != nil {
		return nil, err
	}
	return doc.Profiles.Names(), nil
}
