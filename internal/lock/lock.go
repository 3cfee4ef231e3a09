package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when a live daybook process holds the lock.
var ErrLocked = errors.New("another daybook process is using the store")

// ErrIncomplete means the lockfile exists but its owner has not finished
// writing the pid yet.
var ErrIncomplete = errors.New("lockfile has no pid yet")

// Lock is an advisory lockfile holding the owner's pid. While held, its
// modification time is refreshed so that it never looks stale.
type Lock struct {
	path string
	stop chan struct{}
	once sync.Once
}

func Path(dir string) string {
	return filepath.Join(dir, constants.LockFileName)
}

// Acquire takes the lock in dir. A lockfile left by a process that is no
// longer running daybook, or one untouched for LockStaleAfter, is reclaimed.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(getpidFunc()) + "\n")
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return newLock(path), nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, alive, err := Holder(dir)
		if errors.Is(err, ErrIncomplete) {
			if age, ok := lockAge(path); !ok || age < constants.LockWriteGrace {
				return nil, fmt.Errorf("%w (lockfile is being written)", ErrLocked)
			}
		} else if err == nil && alive {
			if pid == getpidFunc() {
				return newLock(path), nil
			}
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}

		logger.Warn("Reclaiming stale lockfile", "path", path, "pid", pid, "error", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	return nil, fmt.Errorf("%w: lockfile keeps reappearing", ErrLocked)
}

// Holder reads the lockfile in dir and reports its pid and whether that pid
// is a running daybook process. A lockfile older than LockStaleAfter is
// reported as not alive. An empty or half-written lockfile yields
// ErrIncomplete.
func Holder(dir string) (int, bool, error) {
	path := Path(dir)
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false, err
	}
	text := string(content)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || (!strings.HasSuffix(text, "\n") && isDigits(trimmed)) {
		return 0, false, ErrIncomplete
	}
	pid, err := strconv.Atoi(trimmed)
	if err != nil || pid <= 0 {
		return 0, false, errors.New("invalid process ID in lockfile")
	}

	if age, ok := lockAge(path); ok && age > constants.LockStaleAfter {
		logger.Debug("Lockfile not refreshed", "pid", pid, "age", age)
		return pid, false, nil
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false, nil
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		logger.Debug("Lockfile pid belongs to another program", "pid", pid, "executable", process.Executable())
		return pid, false, nil
	}
	return pid, true, nil
}

func lockAge(path string) (time.Duration, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func newLock(path string) *Lock {
	l := &Lock{path: path, stop: make(chan struct{})}
	go l.refresh(constants.LockStaleAfter / 4)
	return l
}

func (l *Lock) refresh(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			now := time.Now()
			if err := os.Chtimes(l.path, now, now); err != nil {
				logger.Debug("Failed to refresh lockfile", "path", l.path, "error", err)
			}
		}
	}
}

// Release removes the lockfile. Releasing twice is harmless.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	l.once.Do(func() { close(l.stop) })
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
