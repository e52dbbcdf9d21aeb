package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

const (
	LockAcquireTimeout = 5 * time.Minute
	LockFileName       = "migrate.lock"
	InstancesDir       = "instances"
)

// mguard keeps a running instance and the installer's schema migration apart.
//
// Every instance holds a shared flock on RuntimeDir/migrate.lock and leaves
// its PID in RuntimeDir/instances. The install script signals those PIDs,
// takes the lock exclusively, runs `<name> --migrate` and releases it. An
// instance started mid-migration blocks here until that is done.
func (a *App) mguard() error {
	instances := filepath.Join(a.RuntimeDir, InstancesDir)
	if err := os.MkdirAll(instances, 0o755); err != nil {
		return err
	}

	lockPath := filepath.Join(a.RuntimeDir, LockFileName)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}

	if err := flockTimeout(f, unix.LOCK_SH, LockAcquireTimeout); err != nil {
		_ = f.Close()
		return err
	}

	pidPath := filepath.Join(instances, strconv.Itoa(os.Getpid()))
	pidFile, err := os.OpenFile(pidPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		_ = f.Close()
		return err
	}
	_ = pidFile.Close() // existence is enough

	a.AddCleanup(func() error {
		_ = os.Remove(pidPath)
		return f.Close() // releases the shared lock
	})
	return nil
}

// flockTimeout takes a flock of the given kind, giving up after timeout.
func flockTimeout(f *os.File, how int, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- unix.Flock(int(f.Fd()), how)
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timeout acquiring lock after %v", timeout)
	}
}
