package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

const (
	// BackupSuffix is appended to a resource path to name its single backup.
	BackupSuffix = ".bak"

	defaultFilePerms = 0o644
)

// LoadReport summarises a load pass over the configured files.
type LoadReport struct {
	Loaded    []string
	Missing   []string
	Failed    []string
	Conflicts []string
	Rejected  int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logf.
func WithLogger(logf func(string, ...any)) Option {
	return func(s *Store) {
		s.logf = logf
	}
}

// Store owns the in-memory entry collection for a fixed, ordered set of
// resource files. Paths naming the same file are kept once. Paths that share
// a source identifier are loaded but never written, and neither are paths
// that failed to parse on the last Load.
type Store struct {
	paths     []string
	entries   []*Entry
	dirty     map[string]bool
	failed    map[string]bool
	conflicts map[string][]string
	logf      func(string, ...any)
}

// NewStore creates an empty store for paths. Call Load to populate it.
func NewStore(paths []string, opts ...Option) *Store {
	unique := uniquePaths(paths)
	s := &Store{
		paths:     unique,
		dirty:     map[string]bool{},
		failed:    map[string]bool{},
		conflicts: conflictingPaths(unique),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paths returns the configured resource file paths in load order.
func (s *Store) Paths() []string {
	return s.paths
}

// Files returns the source identifiers of the configured paths, in order.
func (s *Store) Files() []string {
	return lo.Uniq(lo.Map(s.paths, func(p string, _ int) string { return SourceID(p) }))
}

// Entries returns the live collection. Callers must not append to or reorder it.
func (s *Store) Entries() []*Entry {
	return s.entries
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// CountByFile returns the number of entries per source identifier.
func (s *Store) CountByFile() map[string]int {
	groups := lo.GroupBy(s.entries, func(e *Entry) string { return e.SourceFile() })
	return lo.MapValues(groups, func(group []*Entry, _ string) int { return len(group) })
}

// Conflicts returns the paths whose source identifier is shared with another
// configured path.
func (s *Store) Conflicts() []string {
	return lo.Filter(s.paths, func(p string, _ int) bool { return len(s.conflicts[p]) > 0 })
}

// Dirty reports whether entries changed since the last load or were not
// written by the last save.
func (s *Store) Dirty() bool {
	return len(s.dirty) > 0
}

// SetText updates the text of e.
func (s *Store) SetText(e *Entry, text string) {
	if e == nil || e.Text == text {
		return
	}
	e.Text = text
	s.dirty[e.SourceFile()] = true
}

// SetName renames e. Uniqueness within the file is not enforced, emptiness is.
func (s *Store) SetName(e *Entry, name string) error {
	if e == nil || e.Name == name {
		return nil
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	e.Name = name
	s.dirty[e.SourceFile()] = true
	return nil
}

// Load replaces the collection with the contents of the configured files.
// Missing files are skipped. Files that fail to parse contribute no entries
// and are reported in the returned error, which never aborts the load.
// Paths sharing a source identifier are loaded and reported as conflicts.
func (s *Store) Load() (LoadReport, error) {
	entries, report, err := loadFiles(s.paths, s.logf)
	s.entries = entries
	s.dirty = map[string]bool{}
	s.failed = lo.SliceToMap(report.Failed, func(p string) (string, bool) { return p, true })

	merr := &multierror.Error{}
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	for _, path := range s.Conflicts() {
		report.Conflicts = append(report.Conflicts, path)
		merr = multierror.Append(merr, conflictError(path, s.conflicts[path]))
	}
	return report, merr.ErrorOrNil()
}

// Save writes every configured file from the current collection, backing up
// existing files first. Failures are isolated per file and returned together.
// Files that failed to parse on load and conflicting paths are left alone
// and reported.
func (s *Store) Save() error {
	return s.save(s.paths)
}

// SaveFile writes only the configured paths whose source identifier is id.
func (s *Store) SaveFile(id string) error {
	paths := lo.Filter(s.paths, func(p string, _ int) bool { return SourceID(p) == id })
	if len(paths) == 0 {
		return fmt.Errorf("%s is not a configured file", id)
	}
	return s.save(paths)
}

func (s *Store) save(paths []string) error {
	saved, err := saveFiles(s.entries, paths, s.blocked, s.logf)
	for _, path := range saved {
		delete(s.dirty, SourceID(path))
	}
	return err
}

func (s *Store) blocked(path string) *FileError {
	if others := s.conflicts[path]; len(others) > 0 {
		return conflictError(path, others)
	}
	if s.failed[path] {
		return &FileError{Path: path, Kind: ParseFailure, Err: ErrNotLoaded}
	}
	return nil
}

// Load reads paths in order and returns their entries as one collection.
func Load(paths []string) ([]*Entry, error) {
	entries, _, err := loadFiles(uniquePaths(paths), nil)
	return entries, err
}

// Save writes entries back to paths, one document per path. Paths sharing a
// source identifier are refused.
func Save(entries []*Entry, paths []string) error {
	unique := uniquePaths(paths)
	conflicts := conflictingPaths(unique)
	_, err := saveFiles(entries, unique, func(path string) *FileError {
		if others := conflicts[path]; len(others) > 0 {
			return conflictError(path, others)
		}
		return nil
	}, nil)
	return err
}

// uniquePaths drops later occurrences of a path that names the same file as
// an earlier one once cleaned and made absolute.
func uniquePaths(paths []string) []string {
	return lo.UniqBy(paths, func(p string) string {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return filepath.Clean(p)
	})
}

// conflictingPaths maps every path whose source identifier is shared to the
// other paths it collides with.
func conflictingPaths(paths []string) map[string][]string {
	groups := lo.GroupBy(paths, SourceID)
	out := map[string][]string{}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for _, p := range group {
			out[p] = lo.Without(group, p)
		}
	}
	return out
}

func conflictError(path string, others []string) *FileError {
	return &FileError{
		Path: path,
		Kind: ConflictFailure,
		Err:  fmt.Errorf("%w: %s also maps to %s", ErrSourceConflict, strings.Join(others, ", "), SourceID(path)),
	}
}

func loadFiles(paths []string, logf func(string, ...any)) ([]*Entry, LoadReport, error) {
	var (
		entries []*Entry
		report  LoadReport
		merr    *multierror.Error
	)

	for _, path := range paths {
		fileEntries, rejected, err := loadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			report.Missing = append(report.Missing, path)
			logDebug(logf, "resource: %s does not exist, skipping", path)
			continue
		case err != nil:
			report.Failed = append(report.Failed, path)
			merr = multierror.Append(merr, &FileError{Path: path, Kind: ParseFailure, Err: err})
			logDebug(logf, "resource: failed to load %s: %v", path, err)
			continue
		}
		if rejected > 0 {
			logDebug(logf, "resource: %s: rejected %d string(s) without a name", path, rejected)
		}
		report.Rejected += rejected
		report.Loaded = append(report.Loaded, path)
		entries = append(entries, fileEntries...)
	}

	return entries, report, merr.ErrorOrNil()
}

func loadFile(path string) ([]*Entry, int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from user configuration
	if err != nil {
		return nil, 0, err
	}
	entries, rejected, err := decodeResources(bytes.NewReader(data), SourceID(path))
	if err != nil {
		return nil, 0, fmt.Errorf("parse: %w", err)
	}
	return entries, rejected, nil
}

func saveFiles(entries []*Entry, paths []string, blocked func(string) *FileError, logf func(string, ...any)) ([]string, error) {
	var (
		saved []string
		merr  *multierror.Error
	)
	for _, path := range paths {
		if ferr := blocked(path); ferr != nil {
			logDebug(logf, "resource: skipping %v", ferr)
			merr = multierror.Append(merr, ferr)
			continue
		}
		id := SourceID(path)
		fileEntries := lo.Filter(entries, func(e *Entry, _ int) bool { return e.SourceFile() == id })
		if err := saveFile(path, fileEntries); err != nil {
			logDebug(logf, "resource: %v", err)
			merr = multierror.Append(merr, err)
			continue
		}
		saved = append(saved, path)
		logDebug(logf, "resource: wrote %d entries to %s", len(fileEntries), path)
	}
	return saved, merr.ErrorOrNil()
}

// saveFile serialises entries, backs up the existing file and overwrites it.
// A failed backup leaves the original file untouched.
func saveFile(path string, entries []*Entry) error {
	var buf bytes.Buffer
	if err := encodeResources(&buf, entries); err != nil {
		return &FileError{Path: path, Kind: SerializationFailure, Err: err}
	}

	perm := fs.FileMode(defaultFilePerms)
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
		if err := backupFile(path, perm); err != nil {
			return &FileError{Path: path, Kind: BackupFailure, Err: err}
		}
	case errors.Is(err, fs.ErrNotExist):
		if len(entries) == 0 {
			return nil
		}
	default:
		return &FileError{Path: path, Kind: WriteFailure, Err: err}
	}

	if err := os.WriteFile(path, buf.Bytes(), perm); err != nil {
		return &FileError{Path: path, Kind: WriteFailure, Err: err}
	}
	return nil
}

// backupFile copies path to path+BackupSuffix, replacing any previous backup.
func backupFile(path string, perm fs.FileMode) error {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from user configuration
	if err != nil {
		return err
	}
	return os.WriteFile(path+BackupSuffix, data, perm)
}

func logDebug(logf func(string, ...any), format string, args ...any) {
	if logf == nil {
		return
	}
	logf(format, args...)
}
