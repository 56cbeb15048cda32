package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogurasousui/office-rota/internal/platform/config"
)

const defaultApplicationName = "office-rota"

const tableExistsSQL = `SELECT to_regclass($1) IS NOT NULL`

// requiredTables はスケジュールの保存に必要なテーブルです。assets/migrations で作成されます。
var requiredTables = []string{"schedules", "current_schedule"}

// ErrSchemaNotMigrated は必要なテーブルが存在しない場合に返却されます。
var ErrSchemaNotMigrated = errors.New("postgres: schedule tables are missing; run cmd/migrate up")

// BuildPoolConfig は database 設定から pgxpool.Config を構築します。
func BuildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	appName := cfg.ApplicationName
	if appName == "" {
		appName = defaultApplicationName
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = appName

	return poolCfg, nil
}

// NewPool は pgxpool.Pool を生成し、疎通とスキーマの適用状況を確認します。
// 失敗した場合はプールを閉じてからエラーを返します。
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if err := CheckSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// CheckSchema はスケジュール用のテーブルがすべて存在するか確認します。
func CheckSchema(ctx context.Context, q Queryer) error {
	for _, table := range requiredTables {
		var exists bool
		if err := q.QueryRow(ctx, tableExistsSQL, table).Scan(&exists); err != nil {
			return fmt.Errorf("postgres: check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("%w (%s)", ErrSchemaNotMigrated, table)
		}
	}
	return nil
}
