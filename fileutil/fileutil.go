// Package fileutil resolves file paths against a project root and wraps the
// recurring save/load chores of the other utilities.
package fileutil

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// ErrRootNotFound indicates no project root was found walking up from the
// starting directory.
var ErrRootNotFound = errors.New("project root not found")

// FindRoot walks up from dir looking for a go.mod and returns the directory
// holding it. Empty dir starts at the working directory.
func FindRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}

		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}

		dir = parent
	}
}

// Resolver resolves relative paths against a fixed root directory.
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at dir, empty dir discovers the
// project root with FindRoot.
func NewResolver(dir string) (*Resolver, error) {
	if dir == "" {
		root, err := FindRoot("")
		if err != nil {
			return nil, err
		}

		return &Resolver{root: root}, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return &Resolver{root: abs}, nil
}

// Root returns the root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Abs resolves name to an absolute path: absolute paths pass through, a
// leading ~ expands to the user home, everything else is joined to the root.
func (r *Resolver) Abs(name string) string {
	if strings.HasPrefix(name, "~") {
		if expanded, err := homedir.Expand(name); err == nil {
			return expanded
		}
	}

	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}

	return filepath.Join(r.root, name)
}

// Rel returns path relative to the root.
func (r *Resolver) Rel(path string) (string, error) {
	return filepath.Rel(r.root, r.Abs(path))
}

// Exists reports whether name resolves to an existing regular file.
func (r *Resolver) Exists(name string) bool {
	info, err := os.Stat(r.Abs(name))

	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether name resolves to an existing directory.
func (r *Resolver) DirExists(name string) bool {
	info, err := os.Stat(r.Abs(name))

	return err == nil && info.IsDir()
}

// EnsureDir creates the directory if it is missing and returns its absolute path.
func (r *Resolver) EnsureDir(name string) (string, error) {
	path := r.Abs(name)

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}

	return path, nil
}

// RemoveDir deletes the directory and its contents, missing directory is not
// an error.
func (r *Resolver) RemoveDir(name string) error {
	return os.RemoveAll(r.Abs(name))
}

// Rename moves a file, both names are resolved against the root.
func (r *Resolver) Rename(oldName, newName string) error {
	return os.Rename(r.Abs(oldName), r.Abs(newName))
}

// Remove deletes a file, missing file is not an error.
func (r *Resolver) Remove(name string) error {
	err := os.Remove(r.Abs(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// ListDir returns paths of files in dir, optionally filtered by extensions
// (without the dot) and optionally descending into subdirectories.
func (r *Resolver) ListDir(dir string, endings []string, recursive bool) ([]string, error) {
	root := r.Abs(dir)
	files := []string{}

	match := func(name string) bool {
		if len(endings) == 0 {
			return true
		}

		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		for _, e := range endings {
			if ext == e {
				return true
			}
		}

		return false
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if !recursive && path != root {
				return fs.SkipDir
			}

			return nil
		}

		if match(d.Name()) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Save writes data to the resolved path, overwriting existing content.
func (r *Resolver) Save(name string, data []byte) error {
	return os.WriteFile(r.Abs(name), data, 0o644)
}

// Load reads the resolved path.
func (r *Resolver) Load(name string) ([]byte, error) {
	return os.ReadFile(r.Abs(name))
}

// SaveJSON marshals v and writes it to the resolved path.
func (r *Resolver) SaveJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return r.Save(name, data)
}

// LoadJSON reads the resolved path and unmarshals it into v.
func (r *Resolver) LoadJSON(name string, v interface{}) error {
	data, err := r.Load(name)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}
