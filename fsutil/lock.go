// Package fsutil holds the file system helpers shared by commands that
// rewrite config.xml: an inter-process lock and atomic replacement.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultLockTimeout is the maximum time to wait for a lock.
	DefaultLockTimeout = 30 * time.Second

	// LockRetryDelay is the delay between acquisition attempts.
	LockRetryDelay = 50 * time.Millisecond
)

// ErrLockTimeout is returned when DefaultLockTimeout elapses before the lock
// is free.
var ErrLockTimeout = errors.New("timeout acquiring file lock")

var errLockHeld = errors.New("lock held by another process")

// FileLock is an exclusive lock held on a lock file.
type FileLock struct {
	path string
	file *os.File
}

// LockPath returns the lock file used for target. Lock files live in the
// temp directory, keyed by the absolute target path, so nothing is left
// next to the project.
func LockPath(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}
	sum := sha256.Sum256([]byte(abs))
	name := filepath.Base(abs) + "-" + hex.EncodeToString(sum[:8]) + ".lock"
	return filepath.Join(os.TempDir(), "gocordova-locks", name), nil
}

// Acquire blocks until it holds the lock for target, ctx is done or
// DefaultLockTimeout elapses. The returned unlock must be called.
func Acquire(ctx context.Context, target string) (unlock func(), err error) {
	lockPath, err := LockPath(target)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	start := time.Now()
	for {
		lock, err := tryAcquireLock(lockPath)
		if err == nil {
			return func() { releaseLock(lock) }, nil
		}
		if !errors.Is(err, errLockHeld) {
			return nil, err
		}

		if time.Since(start) > DefaultLockTimeout {
			return nil, fmt.Errorf("%s: %w", target, ErrLockTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock acquisition cancelled: %w", ctx.Err())
		case <-time.After(LockRetryDelay):
		}
	}
}

// WithLock runs fn while holding the lock for target.
func WithLock(ctx context.Context, target string, fn func() error) error {
	unlock, err := Acquire(ctx, target)
	if err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer unlock()

	return fn()
}
