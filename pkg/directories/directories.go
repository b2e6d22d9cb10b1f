package directories

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Package directories loads named user-directory endpoints from YAML/JSON files.

const defaultTimeoutSeconds = 15

// Directory is a named user-directory endpoint.
type Directory struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	BaseURL        string `json:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the per-request timeout configured for the directory.
func (d Directory) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

type configFile struct {
	Directories []Directory `json:"directories" yaml:"directories"`
}

// Registry holds the directories declared in a config file.
type Registry struct {
	mu          sync.RWMutex
	directories []Directory
	idx         map[string]Directory
}

// Load reads a registry from a YAML (.yaml/.yml) or JSON (.json) file.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("directories file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directories file: %w", err)
	}

	file, err := parseFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(file.Directories) == 0 {
		return nil, errors.New("directories file contains no directories entries")
	}

	idx := make(map[string]Directory, len(file.Directories))
	for i := range file.Directories {
		d := sanitizeDirectory(file.Directories[i])
		if err := validateDirectory(d); err != nil {
			return nil, fmt.Errorf("directory[%d]: %w", i, err)
		}
		if _, exists := idx[d.ID]; exists {
			return nil, fmt.Errorf("duplicate directory id %q", d.ID)
		}
		file.Directories[i] = d
		idx[d.ID] = d
	}

	return &Registry{directories: file.Directories, idx: idx}, nil
}

// All returns a copy of the loaded directories in file order.
func (r *Registry) All() []Directory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Directory, len(r.directories))
	copy(out, r.directories)
	return out
}

// ByID returns the directory with the given id.
func (r *Registry) ByID(id string) (Directory, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Directory{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.idx[id]
	return d, ok
}

type unmarshalFn func([]byte, any) error

func parseFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var file configFile
		if err := d.fn(data, &file); err != nil {
			lastErr = fmt.Errorf("decode %s directories: %w", d.name, err)
			continue
		}
		return file, nil
	}
	if lastErr != nil {
		return configFile{}, lastErr
	}
	return configFile{}, fmt.Errorf("directories file format %q not recognized (expected YAML or JSON)", ext)
}

func sanitizeDirectory(d Directory) Directory {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.BaseURL = strings.TrimRight(strings.TrimSpace(d.BaseURL), "/")
	if d.TimeoutSeconds <= 0 {
		d.TimeoutSeconds = defaultTimeoutSeconds
	}
	return d
}

func validateDirectory(d Directory) error {
	if d.ID == "" {
		return errors.New("id is required")
	}
	if d.BaseURL == "" {
		return fmt.Errorf("base_url is required for directory %q", d.ID)
	}
	u, err := url.Parse(d.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url for directory %q: %w", d.ID, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url for directory %q must be an absolute http(s) URL", d.ID)
	}
	return nil
}
