package keeper

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"searchops/keeper/pkg/document"
)

// DirStore is the Local implementation over a directory of one YAML file per
// entity. Entity names map to "<name>.yaml"; ".yml" files are accepted on
// read. The entity name is the portion of the filename before the first dot.
type DirStore struct {
	dir string
}

// NewDirStore returns a DirStore rooted at dir, creating the directory if it
// does not exist.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %q: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the directory this store reads and writes.
func (s *DirStore) Dir() string {
	return s.dir
}

// Load reads and decodes the document stored under name. Returns ErrNotFound
// when no file for the entity exists, ErrMalformedDocument when the file does
// not contain a mapping.
func (s *DirStore) Load(name string) (document.Document, error) {
	var data []byte
	found := false
	for _, ext := range []string{".yaml", ".yml"} {
		var err error
		data, err = os.ReadFile(filepath.Join(s.dir, name+ext))
		if err == nil {
			found = true
			break
		}
		// A read failure on an existing file must not fall through to the
		// next extension as NotFound.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read local file for %q: %w", name, err)
		}
	}
	if !found {
		return nil, fmt.Errorf("no local file for %q: %w", name, ErrNotFound)
	}

	var doc document.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse local file for %q: %w", name, err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("local file for %q is empty or not a mapping: %w", name, ErrMalformedDocument)
	}
	return doc, nil
}

// Save serializes doc as YAML to "<name>.yaml" and returns the path written.
func (s *DirStore) Save(name string, doc document.Document) (string, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize %q: %w", name, err)
	}
	file := filepath.Join(s.dir, name+".yaml")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", file, err)
	}
	return file, nil
}

// List returns the names of stored entities, sorted, optionally filtered by a
// glob pattern.
func (s *DirStore) List(pattern string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file := entry.Name()
		if !strings.HasSuffix(file, ".yaml") && !strings.HasSuffix(file, ".yml") {
			continue
		}
		name, _, _ := strings.Cut(file, ".")
		if name == "" {
			continue
		}
		if pattern != "" {
			ok, err := path.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
