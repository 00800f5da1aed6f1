package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"nexus/internal/config"
	"nexus/internal/notify"
	"nexus/internal/sqlstore"
	"nexus/internal/store"
	"nexus/internal/watcher"
)

// Daemon coordinates the watch loop and enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	detector *watcher.Detector
	hub      *notify.Hub
	pusher   notify.Pusher
	mirror   *sqlstore.Store

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	RootDir      string
	LockFilePath string
	MirrorPath   string
	FolderCounts map[string]int
}

// New constructs a daemon with initialized dependencies. The SQLite mirror
// is opened only when enabled in the configuration.
func New(cfg *config.Config, fileStore *store.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || fileStore == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, and logger")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	var mirror *sqlstore.Store
	if cfg.Database.Enabled {
		opened, err := sqlstore.Open(cfg.Database.Path, cfg.Pipeline.Situations, sqlstore.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("open mirror database: %w", err)
		}
		mirror = opened
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "nexus-watch.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    fileStore,
		detector: watcher.New(fileStore.Root(), cfg.Watch.MonitorArchived),
		hub:      notify.NewHub(logger),
		pusher:   notify.NewPusher(cfg.Notifications.NtfyTopic, time.Duration(cfg.Notifications.RequestTimeout)*time.Second),
		mirror:   mirror,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Hub exposes the in-process subscriber registry.
func (d *Daemon) Hub() *notify.Hub {
	return d.hub
}

// Start acquires the watch lock, primes the change detector, and launches
// the polling loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("watch daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another nexus watcher is already running on this machine")
	}

	// Prime the fingerprints so the first tick only reports changes made
	// after startup.
	d.detector.Reset()
	d.detector.Check()

	if d.mirror != nil {
		if err := d.syncMirror(); err != nil {
			d.logger.Warn("initial mirror sync failed", slog.Any("error", err))
		}
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.running.Store(true)

	d.wg.Add(1)
	go d.loop()

	d.logger.Info("watch daemon started",
		slog.String("root", d.store.Root()),
		slog.String("lock", d.lockPath),
		slog.Int("poll_seconds", d.cfg.PollInterval()))
	return nil
}

// Stop halts the polling loop and releases the watch lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release watch lock", slog.Any("error", err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("watch daemon stopped")
}

// Close stops the daemon and releases the mirror database.
func (d *Daemon) Close() error {
	d.Stop()
	if d.mirror != nil {
		return d.mirror.Close()
	}
	return nil
}

// Status reports the daemon's runtime state and current folder counts.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		RootDir:      d.store.Root(),
		LockFilePath: d.lockPath,
		FolderCounts: d.detector.FolderCounts(),
	}
	if d.mirror != nil {
		status.MirrorPath = d.mirror.Path()
	}
	return status
}

func (d *Daemon) loop() {
	defer d.wg.Done()

	ticker := time.NewTicker(time.Duration(d.cfg.PollInterval()) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.poll()
		}
	}
}

func (d *Daemon) poll() {
	changes := d.detector.Check()
	if !changes.Any {
		return
	}

	for folder, changed := range changes.Folders {
		if !changed {
			continue
		}
		d.logger.Info("change detected", slog.String("folder", folder))
		d.hub.Publish(notify.KindGeneral, fmt.Sprintf("Mudança detectada na pasta %s", folder))
	}

	if d.cfg.Notifications.Changes {
		if err := d.pusher.NotifyChanges(d.ctx, changes.Folders); err != nil {
			d.logger.Warn("push notification failed", slog.Any("error", err))
		}
	}

	if d.mirror != nil {
		if err := d.syncMirror(); err != nil {
			d.logger.Error("mirror sync failed", slog.Any("error", err))
			if d.cfg.Notifications.Errors {
				if pushErr := d.pusher.NotifyError(d.ctx, err, "mirror sync"); pushErr != nil {
					d.logger.Warn("push notification failed", slog.Any("error", pushErr))
				}
			}
		}
	}
}

func (d *Daemon) syncMirror() error {
	items, err := d.store.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot folder tree: %w", err)
	}
	return d.mirror.Mirror(items)
}
