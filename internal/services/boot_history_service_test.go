package services

import (
	"context"
	"testing"
	"time"

	"github.com/Ecclesia-Lucis/LightPath/internal/database"
	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"github.com/Ecclesia-Lucis/LightPath/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupRepo(t *testing.T) *repositories.ServerStartRepository {
	t.Helper()

	db, err := database.InitDB(database.TestConfig(), nil)
	if err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	return repositories.NewServerStartRepository(db)
}

func newService(t *testing.T, repo *repositories.ServerStartRepository, retention time.Duration) *BootHistoryService {
	t.Helper()

	svc, err := NewBootHistoryService(repo, BootHistoryConfig{
		Environment: "test",
		Version:     "1.0.0",
		Port:        "3000",
		Retention:   retention,
	}, nil)
	if err != nil {
		t.Fatalf("NewBootHistoryService() error = %v", err)
	}
	return svc
}

// TestNewBootHistoryService_Validation tests constructor argument checks
func TestNewBootHistoryService_Validation(t *testing.T) {
	repo := setupRepo(t)

	if _, err := NewBootHistoryService(nil, BootHistoryConfig{Retention: time.Hour}, nil); err == nil {
		t.Error("NewBootHistoryService(nil repo) expected error, got nil")
	}
	if _, err := NewBootHistoryService(repo, BootHistoryConfig{}, nil); err == nil {
		t.Error("NewBootHistoryService(zero retention) expected error, got nil")
	}
}

// TestBootHistoryService_RecordStart tests that a boot record is persisted with config values
func TestBootHistoryService_RecordStart(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	svc := newService(t, repo, time.Hour)

	startedAt := time.Now()
	start, err := svc.RecordStart(ctx, startedAt)
	if err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}

	if _, err := uuid.Parse(start.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", start.ID, err)
	}

	latest, err := repo.FindLatest(ctx)
	if err != nil {
		t.Fatalf("FindLatest() error = %v", err)
	}
	if latest == nil || latest.ID != start.ID {
		t.Fatalf("FindLatest() = %+v, want %v", latest, start.ID)
	}
	if latest.Version != "1.0.0" || latest.Port != "3000" || latest.Environment != "test" {
		t.Errorf("record = %+v, want config values copied", latest)
	}
}

// TestBootHistoryService_RecordStartLogsHistory tests the previous-boot and total fields
func TestBootHistoryService_RecordStartLogsHistory(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	core, logs := observer.New(zapcore.InfoLevel)

	svc, err := NewBootHistoryService(repo, BootHistoryConfig{
		Environment: "test",
		Version:     "1.0.0",
		Port:        "3000",
		Retention:   time.Hour,
	}, zap.New(core))
	if err != nil {
		t.Fatalf("NewBootHistoryService() error = %v", err)
	}

	first, err := svc.RecordStart(ctx, time.Now().Add(-10*time.Minute))
	if err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}
	if n := logs.FilterMessage("Previous server start").Len(); n != 0 {
		t.Errorf("first boot logged %d previous starts, want 0", n)
	}

	if _, err := svc.RecordStart(ctx, time.Now()); err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}

	previous := logs.FilterMessage("Previous server start").All()
	if len(previous) != 1 {
		t.Fatalf("logged %d previous starts, want 1", len(previous))
	}
	if got := previous[0].ContextMap()["id"]; got != first.ID {
		t.Errorf("previous id = %v, want %v", got, first.ID)
	}
	if age, ok := previous[0].ContextMap()["age"].(time.Duration); !ok || age < 10*time.Minute {
		t.Errorf("previous age = %v, want at least 10m", previous[0].ContextMap()["age"])
	}

	recorded := logs.FilterMessage("Recorded server start").All()
	if len(recorded) != 2 {
		t.Fatalf("logged %d recorded starts, want 2", len(recorded))
	}
	if got := recorded[1].ContextMap()["total_starts"]; got != int64(2) {
		t.Errorf("total_starts = %v, want 2", got)
	}
}

// TestBootHistoryService_PruneNow tests retention-based pruning
func TestBootHistoryService_PruneNow(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	svc := newService(t, repo, 24*time.Hour)

	now := time.Now().UTC()
	for _, startedAt := range []time.Time{now.Add(-72 * time.Hour), now.Add(-25 * time.Hour), now.Add(-time.Minute)} {
		if err := repo.Create(ctx, &models.ServerStart{
			ID:          uuid.NewString(),
			StartedAt:   startedAt,
			Environment: "test",
			Version:     "1.0.0",
			Port:        "3000",
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	removed, err := svc.PruneNow(ctx)
	if err != nil {
		t.Fatalf("PruneNow() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("PruneNow() removed = %d, want 2", removed)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

// TestBootHistoryService_StartStop tests that the pruning loop starts and stops cleanly
func TestBootHistoryService_StartStop(t *testing.T) {
	repo := setupRepo(t)
	svc := newService(t, repo, time.Hour)
	svc.config.PruneInterval = 10 * time.Millisecond

	svc.Start()
	time.Sleep(30 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		svc.Stop()
		svc.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return")
	}
}
