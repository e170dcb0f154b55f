// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toeirei/entities-service/internal/dotenv"
	"github.com/toeirei/entities-service/internal/logging"
)

// Mode selects which store file an operation works on.
type Mode int

const (
	// CLIMode uses the file beside the CLI executable.
	CLIMode Mode = iota
	// ServiceMode uses the file shared with the service installation.
	ServiceMode
)

func (m Mode) String() string {
	if m == ServiceMode {
		return "Service"
	}
	return "CLI"
}

// Mask replaces sensitive values in Show output.
const Mask = "***"

// DotenvName is the file name of both store files.
const DotenvName = ".env"

// ErrNotFound is returned by Show when the store file does not exist.
var ErrNotFound = errors.New("store file not found")

// Paths holds the two store file locations.
type Paths struct {
	CLI     string
	Service string
}

// DefaultPaths places the CLI store beside the running executable and the
// service store one directory up, at the root of the install tree.
func DefaultPaths() (Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return Paths{}, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	return Paths{
		CLI:     filepath.Join(dir, DotenvName),
		Service: filepath.Join(filepath.Dir(dir), DotenvName),
	}, nil
}

// ResolveFile returns the store file for mode.
func ResolveFile(mode Mode, paths Paths) string {
	if mode == ServiceMode {
		return paths.Service
	}
	return paths.CLI
}

// Entry is a recognized key and its (possibly masked) value.
type Entry struct {
	Key   ConfigKey
	Value string
}

// Store reads and writes configuration options in the files named by Paths.
type Store struct {
	paths Paths
}

// New returns a Store over paths.
func New(paths Paths) *Store {
	return &Store{paths: paths}
}

// Path returns the file used for mode.
func (s *Store) Path(mode Mode) string {
	return ResolveFile(mode, s.paths)
}

func (s *Store) load(path string) (*dotenv.Document, error) {
	doc, err := dotenv.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, n := range doc.Skipped() {
		logging.Warnf("%s:%d: ignoring line that is not a KEY=VALUE assignment", path, n)
	}
	return doc, nil
}

func (s *Store) save(path string, doc *dotenv.Document) error {
	if err := dotenv.WriteFile(path, doc, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// touch creates an empty file at path unless one exists already.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return f.Close()
}

// Set stores value for key, creating the file if needed. Other lines keep
// their content and order.
func (s *Store) Set(key ConfigKey, value string, mode Mode) error {
	path := s.Path(mode)
	ok, err := exists(path)
	if err != nil {
		return err
	}
	if !ok {
		logging.Debugf("creating %s", path)
		if err := touch(path); err != nil {
			return err
		}
	}
	doc, err := s.load(path)
	if err != nil {
		return err
	}
	if err := doc.Set(key.EnvName(), value); err != nil {
		return fmt.Errorf("set %s: %w", key.EnvName(), err)
	}
	logging.Debugf("set %s in %s", key.EnvName(), path)
	return s.save(path, doc)
}

// Get returns the stored value for key. A missing file reads as unset.
func (s *Store) Get(key ConfigKey, mode Mode) (string, bool, error) {
	path := s.Path(mode)
	ok, err := exists(path)
	if err != nil || !ok {
		return "", false, err
	}
	doc, err := s.load(path)
	if err != nil {
		return "", false, err
	}
	value, found := doc.Lookup(key.EnvName())
	return value, found, nil
}

// Unset removes key from the store. It is a no-op when the file or the key
// is absent and never creates the file.
func (s *Store) Unset(key ConfigKey, mode Mode) error {
	path := s.Path(mode)
	ok, err := exists(path)
	if err != nil {
		return err
	}
	if !ok {
		logging.Debugf("unset %s: %s does not exist", key.EnvName(), path)
		return nil
	}
	doc, err := s.load(path)
	if err != nil {
		return err
	}
	if !doc.Unset(key.EnvName()) {
		return nil
	}
	logging.Debugf("unset %s in %s", key.EnvName(), path)
	return s.save(path, doc)
}

// Show lists the recognized keys in file order. Unknown names are dropped.
// Sensitive values are replaced by Mask unless revealSensitive is set; the
// stored values are never changed.
func (s *Store) Show(mode Mode, revealSensitive bool) ([]Entry, error) {
	path := s.Path(mode)
	ok, err := exists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	doc, err := s.load(path)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range doc.Entries() {
		key, ok := keyFromEnvName(e.Name)
		if !ok {
			continue
		}
		value := e.Value
		if key.Sensitive() && !revealSensitive {
			value = Mask
		}
		out = append(out, Entry{Key: key, Value: value})
	}
	return out, nil
}

// UnsetAll deletes the store file. removed is false when there was nothing
// to delete.
func (s *Store) UnsetAll(mode Mode) (removed bool, err error) {
	path := s.Path(mode)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	logging.Debugf("removed %s", path)
	return true, nil
}
