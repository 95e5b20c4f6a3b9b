package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"

	"github.com/gofrs/flock"
)

const lockFileName = "profile.lock"

// FileLock keeps a second notedesk process from writing the same profile.
type FileLock struct {
	fileLock   *flock.Flock
	lockPath   string
	profile    string
	acquiredAt time.Time
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
}

type FileLockConfig struct {
	LockTimeout  time.Duration
	LockRetry    time.Duration
	LockMaxRetry int
}

func DefaultFileLockConfig() *FileLockConfig {
	lockTimeout, _ := config.DurationOrDefault(config.DefaultStoreLockTimeout, config.DefaultStoreLockTimeout)
	lockRetry, _ := config.DurationOrDefault(config.DefaultStoreLockRetry, config.DefaultStoreLockRetry)

	return &FileLockConfig{
		LockTimeout:  lockTimeout,
		LockRetry:    lockRetry,
		LockMaxRetry: config.DefaultStoreLockMaxRetry,
	}
}

// FileLockConfigFrom converts the store section of the loaded config,
// falling back to defaults for anything unset or unparsable.
func FileLockConfigFrom(cfg config.StoreConfig) *FileLockConfig {
	out := DefaultFileLockConfig()
	if d, err := config.DurationOrDefault(cfg.LockTimeout, config.DefaultStoreLockTimeout); err == nil && d > 0 {
		out.LockTimeout = d
	}
	if d, err := config.DurationOrDefault(cfg.LockRetry, config.DefaultStoreLockRetry); err == nil && d > 0 {
		out.LockRetry = d
	}
	if cfg.LockMaxRetry > 0 {
		out.LockMaxRetry = cfg.LockMaxRetry
	}
	return out
}

func NewFileLock(profile, basePath string, cfg *FileLockConfig) (*FileLock, error) {
	if cfg == nil {
		cfg = DefaultFileLockConfig()
	}

	lockPath := filepath.Join(basePath, lockFileName)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LockTimeout)

	fl := &FileLock{
		fileLock: flock.New(lockPath),
		lockPath: lockPath,
		profile:  profile,
		ctx:      ctx,
		cancel:   cancel,
	}

	if err := fl.acquireWithRetry(cfg); err != nil {
		cancel()
		return nil, err
	}

	fl.acquiredAt = time.Now()
	slog.Debug("Profile lock acquired",
		"profile", profile,
		"path", lockPath,
		"acquired_at", fl.acquiredAt.Format(time.RFC3339Nano),
	)

	return fl, nil
}

func (fl *FileLock) acquireWithRetry(cfg *FileLockConfig) error {
	for i := 0; i < cfg.LockMaxRetry; i++ {
		select {
		case <-fl.ctx.Done():
			return fmt.Errorf("lock acquisition cancelled: %w", fl.ctx.Err())
		default:
			locked, err := fl.fileLock.TryLock()
			if err != nil {
				return fmt.Errorf("failed to attempt lock: %w", err)
			}
			if locked {
				return nil
			}

			if i < cfg.LockMaxRetry-1 {
				time.Sleep(cfg.LockRetry)
			}
		}
	}

	return errors.Wrap(errors.ErrLocked, fmt.Sprintf("profile %s is locked by another instance (timeout after %v)",
		fl.profile, cfg.LockTimeout))
}

func (fl *FileLock) Unlock() {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.fileLock == nil {
		slog.Warn("FileLock already unlocked", "profile", fl.profile)
		return
	}

	if err := fl.fileLock.Unlock(); err != nil {
		slog.Error("Failed to release profile lock",
			"profile", fl.profile,
			"path", fl.lockPath,
			"error", err,
		)
	} else {
		slog.Debug("Profile lock released",
			"profile", fl.profile,
			"held_duration_ms", time.Since(fl.acquiredAt).Milliseconds(),
		)
	}

	if fl.cancel != nil {
		fl.cancel()
	}

	fl.fileLock = nil
}

func (fl *FileLock) IsLocked() bool {
	fl.mu.RLock()
	defer fl.mu.RUnlock()
	return fl.fileLock != nil
}

func (fl *FileLock) HeldDuration() time.Duration {
	fl.mu.RLock()
	defer fl.mu.RUnlock()
	if fl.acquiredAt.IsZero() {
		return 0
	}
	return time.Since(fl.acquiredAt)
}

// CleanupStaleLocks removes a profile lock file older than maxAge when
// force is set; otherwise it only reports it.
func CleanupStaleLocks(basePath string, maxAge time.Duration, force bool) (bool, error) {
	lockPath := filepath.Join(basePath, lockFileName)
	info, err := os.Stat(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	age := time.Since(info.ModTime())
	if age <= maxAge {
		return false, nil
	}

	slog.Warn("Found stale lock file", "path", lockPath, "age", age, "max_age", maxAge)
	if !force {
		return false, nil
	}

	if err := os.Remove(lockPath); err != nil {
		slog.Error("Failed to remove stale lock file", "path", lockPath, "error", err)
		return false, err
	}
	slog.Info("Stale lock file removed", "path", lockPath)
	return true, nil
}
