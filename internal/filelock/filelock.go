// Package filelock guards the output artifact against concurrent runs.
package filelock

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the lock.
var ErrLocked = errors.New("lock is held by another process")

// FileLock wraps a flock file lock for coordinating access to the output artifact.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file location.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock acquires the lock without blocking. It returns ErrLocked when
// another process already holds it, or when the locked file was unlinked
// by a releasing holder before this process could lock it.
func (fl *FileLock) TryLock() error {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", fl.path, ErrLocked)
	}
	if err := fl.verifyHeld(); err != nil {
		if unlockErr := fl.flock.Unlock(); unlockErr != nil {
			return errors.Join(err, unlockErr)
		}
		return err
	}
	return nil
}

// verifyHeld checks that the locked handle is still the file at path.
func (fl *FileLock) verifyHeld() error {
	heldInfo, err := fl.flock.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat lock on %s: %w", fl.path, err)
	}
	currentInfo, err := os.Stat(fl.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", fl.path, ErrLocked)
		}
		return fmt.Errorf("failed to stat lock file %s: %w", fl.path, err)
	}
	if !os.SameFile(heldInfo, currentInfo) {
		return fmt.Errorf("%s: %w", fl.path, ErrLocked)
	}
	return nil
}

// Release removes the lock file and then unlocks it. The file is unlinked
// while still held so a new run never locks a path that is being removed.
// Platforms that refuse to unlink an open file get a second attempt after
// the unlock.
func (fl *FileLock) Release() error {
	removeErr := os.Remove(fl.path)
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	if removeErr == nil || os.IsNotExist(removeErr) {
		return nil
	}
	if err := os.Remove(fl.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file %s: %w", fl.path, err)
	}
	return nil
}
