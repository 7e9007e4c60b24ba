package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"glasscat/internal/fileutil"
	"glasscat/internal/logging"
	"glasscat/internal/textutil"
)

const jsonExtension = ".json"

// JSONStore keeps one JSON file per source. With an empty directory the file
// sits next to its source as <source>.json; otherwise it lives in dir under a
// name derived from the source path.
type JSONStore struct {
	dir    string
	known  []string
	logger *slog.Logger
}

// NewJSONStore creates a JSON-file store. known lists the sources List
// reports on when the store has no directory of its own.
func NewJSONStore(dir string, known []string, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &JSONStore{
		dir:    strings.TrimSpace(dir),
		known:  append([]string(nil), known...),
		logger: logging.NewComponentLogger(logger, "snapshot"),
	}
}

// Path returns the snapshot file used for source.
func (s *JSONStore) Path(source string) string {
	if s.dir == "" {
		return source + jsonExtension
	}
	sum := sha256.Sum256([]byte(source))
	base := textutil.SanitizeToken(strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)))
	return filepath.Join(s.dir, base+"-"+hex.EncodeToString(sum[:4])+jsonExtension)
}

// LockPath implements Store.
func (s *JSONStore) LockPath(source string) string {
	return s.Path(source) + ".lock"
}

// Load implements Store.
func (s *JSONStore) Load(_ context.Context, source string) (*Snapshot, error) {
	snap, err := s.readFile(s.Path(source))
	if err != nil {
		return nil, err
	}
	if snap.Source != source {
		return nil, fmt.Errorf("%w: %s holds %s", ErrCacheMiss, s.Path(source), snap.Source)
	}
	return snap, nil
}

func (s *JSONStore) readFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheMiss, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrCacheMiss, path, err)
	}
	if snap.Version != formatVersion {
		return nil, fmt.Errorf("%w: %s has format version %d", ErrCacheMiss, path, snap.Version)
	}
	return &snap, nil
}

// Save implements Store. The file is replaced atomically.
func (s *JSONStore) Save(_ context.Context, snap *Snapshot) error {
	if snap == nil || snap.Source == "" {
		return errors.New("snapshot source cannot be empty")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := s.Path(snap.Source)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := fileutil.WriteFileVerified(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Debug("snapshot written",
		logging.String(logging.FieldSource, snap.Source),
		logging.String("path", path),
		logging.Int("material_count", len(snap.Materials)))
	return nil
}

// Remove implements Store.
func (s *JSONStore) Remove(_ context.Context, source string) error {
	path := s.Path(source)
	if _, err := fileutil.RemoveIfExists(path); err != nil {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	_, _ = fileutil.RemoveIfExists(s.LockPath(source))
	return nil
}

// List implements Store. Unreadable files are skipped with a warning.
func (s *JSONStore) List(_ context.Context) ([]Entry, error) {
	var paths []string
	if s.dir == "" {
		for _, source := range s.known {
			paths = append(paths, s.Path(source))
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(s.dir, "*"+jsonExtension))
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		paths = matches
	}

	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		snap, err := s.readFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("snapshot unreadable",
					logging.String(logging.FieldEventType, "snapshot_unreadable"),
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "run glasscat cache clear to remove it"))
			}
			continue
		}
		entries = append(entries, snap.entry())
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })
	return entries, nil
}

// Close implements Store.
func (s *JSONStore) Close() error { return nil }
