package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/office-rota/internal/core/rota"
	pgdb "github.com/ogurasousui/office-rota/internal/platform/db/postgres"
)

const (
	insertScheduleSQL = `
        INSERT INTO schedules (id, generated_at, working_days_per_week, weeks)
        VALUES ($1, $2, $3, $4)
    `
	upsertCurrentSQL = `
        INSERT INTO current_schedule (slot, schedule_id, updated_at)
        VALUES (1, $1, $2)
        ON CONFLICT (slot) DO UPDATE
           SET schedule_id = EXCLUDED.schedule_id,
               updated_at = EXCLUDED.updated_at
    `
	selectCurrentSQL = `
        SELECT s.id, s.generated_at, s.working_days_per_week, s.weeks
          FROM current_schedule c
          JOIN schedules s ON s.id = c.schedule_id
         WHERE c.slot = 1
    `
)

// weekRecord は weeks カラム (jsonb) の 1 要素です。
type weekRecord struct {
	Present []string `json:"present"`
	Remote  []string `json:"remote"`
}

// ScheduleRepository は PostgreSQL を利用したスケジュール永続化の実装です。
// schedules に履歴を追記し、current_schedule の 1 行で現在値を指します。
type ScheduleRepository struct {
	pool pgdb.Queryer
}

// NewScheduleRepository は ScheduleRepository を生成します。
func NewScheduleRepository(pool pgdb.Queryer) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Save はスケジュールを保存し、現在のスケジュールとして差し替えます。
// 2 つの文が同じトランザクションで実行されるよう、呼び出し側で WithinReadWrite を使ってください。
func (r *ScheduleRepository) Save(ctx context.Context, s *rota.Schedule) error {
	weeks, err := encodeWeeks(s.Weeks)
	if err != nil {
		return err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, insertScheduleSQL, s.ID, s.GeneratedAt, s.WorkingDaysPerWeek, weeks); err != nil {
		return fmt.Errorf("postgres: insert schedule: %w", err)
	}
	if _, err := exec.Exec(ctx, upsertCurrentSQL, s.ID, s.GeneratedAt); err != nil {
		return fmt.Errorf("postgres: update current schedule: %w", err)
	}
	return nil
}

// Current は現在のスケジュールを取得します。
func (r *ScheduleRepository) Current(ctx context.Context) (*rota.Schedule, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	return scanSchedule(exec.QueryRow(ctx, selectCurrentSQL))
}

func scanSchedule(row pgx.Row) (*rota.Schedule, error) {
	var (
		id          string
		generatedAt time.Time
		workingDays int
		rawWeeks    []byte
	)

	if err := row.Scan(&id, &generatedAt, &workingDays, &rawWeeks); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rota.ErrScheduleNotFound
		}
		return nil, err
	}

	weeks, err := decodeWeeks(rawWeeks)
	if err != nil {
		return nil, err
	}

	return &rota.Schedule{
		ID:                 id,
		GeneratedAt:        generatedAt,
		WorkingDaysPerWeek: workingDays,
		Weeks:              weeks,
	}, nil
}

func encodeWeeks(weeks []rota.Week) ([]byte, error) {
	records := make([]weekRecord, len(weeks))
	for i, w := range weeks {
		records[i] = weekRecord{Present: nonNil(w.Present), Remote: nonNil(w.Remote)}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("postgres: encode weeks: %w", err)
	}
	return b, nil
}

func decodeWeeks(raw []byte) ([]rota.Week, error) {
	var records []weekRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("postgres: decode weeks: %w", err)
	}
	weeks := make([]rota.Week, len(records))
	for i, rec := range records {
		weeks[i] = rota.Week{Present: nonNil(rec.Present), Remote: nonNil(rec.Remote)}
	}
	return weeks, nil
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
