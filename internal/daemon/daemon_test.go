package daemon_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"nexus/internal/daemon"
	"nexus/internal/notify"
	"nexus/internal/sqlstore"
	"nexus/internal/testsupport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartStopLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fileStore := testsupport.MustOpenStore(t, cfg)

	d, err := daemon.New(cfg, fileStore, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer d.Close()

	if d.Status().Running {
		t.Fatal("daemon must not run before Start")
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !d.Status().Running {
		t.Fatal("daemon should report running")
	}
	if err := d.Start(context.Background()); err == nil {
		t.Fatal("second Start on a running daemon must fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("daemon should stop")
	}

	// A stopped daemon can be started again.
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	d.Stop()
}

func TestLockRejectsSecondWatcher(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fileStore := testsupport.MustOpenStore(t, cfg)
	logger := discardLogger()

	first, err := daemon.New(cfg, fileStore, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer first.Close()
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	second, err := daemon.New(cfg, fileStore, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer second.Close()
	if err := second.Start(context.Background()); err == nil {
		t.Fatal("second watcher on the same lock must be rejected")
	}

	first.Stop()
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("lock should be free after Stop: %v", err)
	}
	second.Stop()
}

func TestPollPublishesFolderChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fileStore := testsupport.MustOpenStore(t, cfg)

	d, err := daemon.New(cfg, fileStore, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer d.Close()

	events := make(chan notify.Event, 8)
	d.Hub().Subscribe(func(event notify.Event) {
		events <- event
	})

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	// Fingerprints were primed at Start, so only this write is news.
	testsupport.CreatePendency(t, fileStore, "Maria", "Vendas", "ACME Ltda")

	select {
	case event := <-events:
		if event.Kind != notify.KindGeneral {
			t.Fatalf("event kind = %q", event.Kind)
		}
		if !strings.Contains(event.Payload, "ATIVAS") {
			t.Fatalf("payload = %q", event.Payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event observed")
	}
}

func TestStartSyncsMirror(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Database.Enabled = true
	fileStore := testsupport.MustOpenStore(t, cfg)

	created := testsupport.CreatePendency(t, fileStore, "Maria", "Vendas", "ACME Ltda")

	d, err := daemon.New(cfg, fileStore, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if d.Status().MirrorPath != cfg.Database.Path {
		t.Fatalf("mirror path = %q", d.Status().MirrorPath)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	mirror, err := sqlstore.Open(cfg.Database.Path, cfg.Pipeline.Situations)
	if err != nil {
		t.Fatalf("open mirror: %v", err)
	}
	defer mirror.Close()

	record, err := mirror.Get(created.Number)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record == nil {
		t.Fatalf("record %s missing from mirror", created.Number)
	}
	if record.Client.LegalName != "ACME Ltda" {
		t.Fatalf("client = %q", record.Client.LegalName)
	}
}
