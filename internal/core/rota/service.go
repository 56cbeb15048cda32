package rota

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase はスケジュールユースケースの公開インターフェースです。
type UseCase interface {
	GenerateSchedule(ctx context.Context, in GenerateScheduleInput) (*Schedule, error)
	GetSchedule(ctx context.Context) (*Schedule, error)
}

// GenerateScheduleInput はスケジュール生成時の入力です。
type GenerateScheduleInput struct {
	Employees []string
	NumWeeks  int
}

// Service はスケジュールに関するユースケースをまとめます。
type Service struct {
	repo      Repository
	generator *Generator
	clock     Clock
	tx        TransactionManager
	publisher EventPublisher
	logger    *slog.Logger
	newID     func() string
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithPublisher は生成イベントの通知先を設定します。
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator はスケジュール ID の採番関数を差し替えます。
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, generator *Generator, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{
		repo:      repo,
		generator: generator,
		clock:     clock,
		tx:        tx,
		publisher: noopPublisher{},
		logger:    slog.Default(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSchedule は新しいスケジュールを生成し、現在のスケジュールとして保存します。
// 入力が不正な場合は生成を行わず、保存済みのスケジュールも変更しません。
func (s *Service) GenerateSchedule(ctx context.Context, in GenerateScheduleInput) (*Schedule, error) {
	if len(in.Employees) == 0 {
		return nil, ErrEmptyEmployees
	}
	if in.NumWeeks < 0 || in.NumWeeks > MaxWeeks {
		return nil, ErrInvalidWeekCount
	}

	schedule := s.generator.Generate(in.Employees, in.NumWeeks)
	schedule.ID = s.newID()
	schedule.GeneratedAt = s.clock.Now()

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Save(txCtx, schedule)
	}); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"schedule_id", schedule.ID,
		"employees", len(in.Employees),
		"weeks", len(schedule.Weeks),
	)

	if err := s.publisher.PublishScheduleGenerated(ctx, schedule, len(in.Employees)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish schedule event", "schedule_id", schedule.ID, "error", err)
	}

	return schedule, nil
}

// GetSchedule は現在のスケジュールを返します。生成は行いません。
func (s *Service) GetSchedule(ctx context.Context) (*Schedule, error) {
	var current *Schedule
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.Current(txCtx)
		if err != nil {
			return err
		}
		current = found
		return nil
	}); err != nil {
		return nil, err
	}
	return current, nil
}
