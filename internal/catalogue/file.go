package catalogue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Export serializes the catalogue to YAML.
func (c *Catalogue) Export() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("marshaling catalogue: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling catalogue: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads a catalogue from YAML. Unknown keys are rejected so typos in
// a hand-edited file surface instead of being dropped on the next save.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}
	return &c, nil
}

// Load reads a catalogue file from disk.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}
	return Parse(data)
}

// Save rewrites the whole catalogue file. The data goes to a temporary file
// in the same directory first and is then renamed over path, so a reader
// sees either the previous or the new contents.
func Save(path string, c *Catalogue) error {
	data, err := c.Export()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalogue-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp catalogue: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing catalogue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing catalogue: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("writing catalogue: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing catalogue: %w", err)
	}
	return nil
}

// Ensure loads the catalogue at path, first writing Template there if the
// file does not exist. created reports whether the file was new.
func Ensure(path string) (c *Catalogue, created bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, Template()); err != nil {
			return nil, false, err
		}
		created = true
	} else if err != nil {
		return nil, false, fmt.Errorf("checking catalogue: %w", err)
	}

	c, err = Load(path)
	if err != nil {
		return nil, false, err
	}
	return c, created, nil
}

// FileStore persists a catalogue to a fixed path.
type FileStore struct {
	Path string
}

// Save writes c to the store's path.
func (s FileStore) Save(c *Catalogue) error {
	return Save(s.Path, c)
}
