//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	repo "github.com/ogurasousui/office-rota/internal/adapters/repository/postgres"
	"github.com/ogurasousui/office-rota/internal/core/rota"
	"github.com/ogurasousui/office-rota/internal/platform/config"
	pg "github.com/ogurasousui/office-rota/internal/platform/db/postgres"
)

const migrationsDir = "../assets/migrations"

func TestScheduleIntegration(t *testing.T) {
	cfgPath := configPathFromEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		t.Skipf("store.driver is %s; integration test needs postgres", cfg.Store.Driver)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	gen, err := rota.NewGenerator(cfg.Schedule.WorkingDaysPerWeek, nil)
	if err != nil {
		t.Fatalf("NewGenerator error: %v", err)
	}
	scheduleRepo := repo.NewScheduleRepository(pool)
	svc := rota.NewService(scheduleRepo, gen, stubClock{now: time.Now().UTC().Truncate(time.Microsecond)}, pg.NewTransactionManager(pool))

	if _, err := svc.GetSchedule(ctx); !errors.Is(err, rota.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound on fresh database, got %v", err)
	}

	first, err := svc.GenerateSchedule(ctx, rota.GenerateScheduleInput{Employees: []string{"A", "B", "C", "D", "E", "F"}, NumWeeks: 2})
	if err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	second, err := svc.GenerateSchedule(ctx, rota.GenerateScheduleInput{Employees: []string{"A", "B"}, NumWeeks: 3})
	if err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	found, err := svc.GetSchedule(ctx)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if found.ID == first.ID || found.ID != second.ID {
		t.Fatalf("expected current schedule %s, got %s", second.ID, found.ID)
	}
	if len(found.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(found.Weeks))
	}

	if _, err := svc.GenerateSchedule(ctx, rota.GenerateScheduleInput{NumWeeks: 1}); !errors.Is(err, rota.ErrEmptyEmployees) {
		t.Fatalf("expected ErrEmptyEmployees, got %v", err)
	}
	again, err := svc.GetSchedule(ctx)
	if err != nil {
		t.Fatalf("GetSchedule error: %v", err)
	}
	if again.ID != second.ID {
		t.Fatalf("invalid request replaced current schedule")
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
