// Package store persists aggregation output as a fixed set of flat JSON
// documents in a docs directory, and tracks content-hash metadata so
// consumers can tell when a collection actually changed.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Document names written by an aggregation run.
const (
	EventsDoc      = "events.json"
	RestaurantsDoc = "restaurants.json"
	ConfigDoc      = "config.json"
	MetaDoc        = "meta.json"
)

// Docs reads and writes JSON documents under a single directory.
type Docs struct {
	dir string
}

// NewDocs creates the directory if needed and returns a handle to it.
func NewDocs(dir string) (*Docs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}
	return &Docs{dir: dir}, nil
}

// Dir returns the docs directory path.
func (d *Docs) Dir() string {
	return d.dir
}

// Path returns the full path of a named document.
func (d *Docs) Path(name string) string {
	return filepath.Join(d.dir, name)
}

// Write marshals payload as indented JSON and replaces the named document.
func (d *Docs) Write(name string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(d.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Read unmarshals a named document into out. A missing document is not an
// error; out is left untouched and ok is false.
func (d *Docs) Read(name string, out any) (bool, error) {
	data, err := os.ReadFile(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return true, nil
}

// Collection is the on-disk shape of the events and restaurants documents.
type Collection[T any] struct {
	Items []T       `json:"items"`
	Meta  ItemsMeta `json:"meta"`
}
