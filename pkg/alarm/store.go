package alarm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Store persists the full alarm set as a single JSON document, rewritten
// wholesale on every change. The daemon is the sole writer for the lifetime
// of the file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store over the given filesystem and file path.
// Pass afero.NewOsFs() for real use, afero.NewMemMapFs() in tests.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the canonical DB path.
func (s *Store) Path() string { return s.path }

// Load reads the alarm set. An absent file is a fresh install and yields an
// empty set; a present-but-unreadable or corrupt file is a hard error so bad
// state is surfaced to the operator instead of silently discarded.
func (s *Store) Load() ([]*Alarm, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StoreError{Op: "load", Err: err}
	}
	var alarms []*Alarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	return alarms, nil
}

// Save atomically replaces the alarm set on disk: the new state is written to
// a temporary file in the same directory, synced, then renamed over the
// canonical path so a crash never leaves a partially written file behind.
func (s *Store) Save(alarms []*Alarm) error {
	sorted := make([]*Alarm, len(alarms))
	copy(sorted, alarms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &StoreError{Op: "save", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := s.writeTemp(tmp, data); err != nil {
		_ = s.fs.Remove(tmp)
		return &StoreError{Op: "save", Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}

func (s *Store) writeTemp(tmp string, data []byte) error {
	f, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
