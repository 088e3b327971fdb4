//go:build windows

package fsutil

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

var (
	kernel32       = syscall.NewLazyDLL("kernel32.dll")
	procLockFileEx = kernel32.NewProc("LockFileEx")
)

const (
	lockfileExclusiveLock   = 0x00000002
	lockfileFailImmediately = 0x00000001
	errorLockViolation      = 33
)

func tryAcquireLock(lockPath string) (*FileLock, error) {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	var overlapped syscall.Overlapped
	r1, _, err := procLockFileEx.Call(
		uintptr(syscall.Handle(f.Fd())),
		uintptr(lockfileExclusiveLock|lockfileFailImmediately),
		0,
		uintptr(0xFFFFFFFF),
		uintptr(0xFFFFFFFF),
		uintptr(unsafe.Pointer(&overlapped)),
	)
	if r1 == 0 {
		_ = f.Close()
		var errno syscall.Errno
		if errors.As(err, &errno) && errno == errorLockViolation {
			return nil, errLockHeld
		}
		return nil, fmt.Errorf("LockFileEx: %w", err)
	}

	return &FileLock{path: lockPath, file: f}, nil
}

// releaseLock closes and removes the lock file; Windows releases the lock
// on close.
func releaseLock(lock *FileLock) {
	_ = lock.file.Close()
	_ = os.Remove(lock.path)
}
