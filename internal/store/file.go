package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/ranking"
	"github.com/agentstation/humansort/pkg/save"
)

// FileStore keeps the state in a single JSON or YAML file.
type FileStore struct {
	path         string
	format       save.Format
	pollInterval time.Duration
	staleAfter   time.Duration
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFormat overrides the format picked from the file extension.
func WithFormat(f save.Format) FileOption {
	return func(s *FileStore) {
		s.format = f
	}
}

// WithPollInterval sets how often a held lock file is re-checked.
func WithPollInterval(d time.Duration) FileOption {
	return func(s *FileStore) {
		s.pollInterval = d
	}
}

// WithStaleAfter sets the age after which an abandoned lock file is removed.
func WithStaleAfter(d time.Duration) FileOption {
	return func(s *FileStore) {
		s.staleAfter = d
	}
}

// NewFileStore returns a store for the file at path. Paths ending in .yaml
// or .yml are written as YAML, everything else as JSON.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:         path,
		format:       save.FormatFromPath(path),
		pollInterval: constants.LockPollInterval,
		staleAfter:   constants.LockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Store.
func (s *FileStore) Name() string { return "file" }

// Location implements Store.
func (s *FileStore) Location() string { return s.path }

// Close implements Store.
func (s *FileStore) Close() error { return nil }

// Load implements Store.
func (s *FileStore) Load(_ context.Context) (*ranking.State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}

	var state ranking.State
	if err := s.format.Unmarshal(data, &state); err != nil {
		return nil, errors.WrapParse(s.format.String(), s.path, err)
	}
	return &state, nil
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(_ context.Context, state *ranking.State) error {
	data, err := s.format.Marshal(state)
	if err != nil {
		return errors.WrapResource("encode", "state", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}

// LockPath returns the path of the lock file guarding the state file.
func (s *FileStore) LockPath() string {
	return s.path + constants.LockFileSuffix
}

// Lock implements Locker with an exclusively created lock file holding a
// random token. Unlocking removes the file only while it still holds that
// token, so a holder whose lock was broken as stale cannot release the
// next holder's lock. Lock files older than the stale age are assumed
// abandoned and broken.
func (s *FileStore) Lock(ctx context.Context) (func(), error) {
	lockPath := s.LockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("lock", lockPath, err)
	}

	token := uuid.NewString()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FilePermissions)
		if err == nil {
			_, werr := f.WriteString(token)
			cerr := f.Close()
			if werr == nil {
				werr = cerr
			}
			if werr != nil {
				_ = os.Remove(lockPath)
				return nil, errors.WrapIO("lock", lockPath, werr)
			}
			return func() { releaseLock(lockPath, token) }, nil
		}
		if !os.IsExist(err) {
			return nil, errors.WrapIO("lock", lockPath, err)
		}

		if s.breakStale(lockPath) {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, errors.NewTimeoutError("lock", "", fmt.Sprintf("%s is locked by another process: %v", s.path, ctx.Err()))
		case <-ticker.C:
		}
	}
}

// releaseLock removes the lock file if it still holds token.
func releaseLock(lockPath, token string) {
	data, err := os.ReadFile(lockPath)
	if err != nil || string(data) != token {
		return
	}
	_ = os.Remove(lockPath)
}

// breakStale moves an expired lock file aside and reports whether the lock
// path may be retried at once. The moved file is checked again because a
// fresh lock can replace the stale one between the Stat and the Rename; a
// fresh lock is linked back into place.
func (s *FileStore) breakStale(lockPath string) bool {
	if s.staleAfter <= 0 {
		return false
	}
	info, err := os.Stat(lockPath)
	if err != nil {
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < s.staleAfter {
		return false
	}

	aside := lockPath + ".stale-" + uuid.NewString()
	if err := os.Rename(lockPath, aside); err != nil {
		return os.IsNotExist(err)
	}
	defer os.Remove(aside) //nolint:errcheck

	moved, err := os.Stat(aside)
	if err == nil && time.Since(moved.ModTime()) < s.staleAfter {
		_ = os.Link(aside, lockPath)
		return false
	}
	return true
}

var (
	_ Store  = (*FileStore)(nil)
	_ Locker = (*FileStore)(nil)
)
