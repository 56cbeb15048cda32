package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/ogurasousui/office-rota/internal/platform/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	dbCfg := config.DatabaseConfig{
		Host:            "localhost",
		Port:            15432,
		User:            "user",
		Password:        "pass",
		Name:            "rota",
		SSLMode:         "disable",
		ApplicationName: "rota-batch",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 20 {
		t.Errorf("expected MaxConns 20, got %d", poolCfg.MaxConns)
	}

	if poolCfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", poolCfg.MinConns)
	}

	if poolCfg.MaxConnLifetime != 30*time.Minute {
		t.Errorf("unexpected MaxConnLifetime: %v", poolCfg.MaxConnLifetime)
	}

	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("unexpected MaxConnIdleTime: %v", poolCfg.MaxConnIdleTime)
	}

	if poolCfg.ConnConfig.Database != "rota" {
		t.Errorf("expected database rota, got %s", poolCfg.ConnConfig.Database)
	}

	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != "rota-batch" {
		t.Errorf("expected application_name rota-batch, got %q", got)
	}
}

func TestBuildPoolConfig_DefaultApplicationName(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "rota", SSLMode: "disable",
	})
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}
	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != "office-rota" {
		t.Errorf("expected default application_name office-rota, got %q", got)
	}
}

func TestCheckSchema(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	for _, table := range []string{"schedules", "current_schedule"} {
		mock.ExpectQuery("to_regclass").WithArgs(table).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	}

	if err := CheckSchema(context.Background(), mock); err != nil {
		t.Fatalf("CheckSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckSchema_MissingTable(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectQuery("to_regclass").WithArgs("schedules").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("to_regclass").WithArgs("current_schedule").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	if err := CheckSchema(context.Background(), mock); !errors.Is(err, ErrSchemaNotMigrated) {
		t.Fatalf("expected ErrSchemaNotMigrated, got %v", err)
	}
}

func TestCheckSchema_QueryError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	queryErr := errors.New("permission denied")
	mock.ExpectQuery("to_regclass").WithArgs("schedules").WillReturnError(queryErr)

	if err := CheckSchema(context.Background(), mock); !errors.Is(err, queryErr) {
		t.Fatalf("expected query error, got %v", err)
	}
}
