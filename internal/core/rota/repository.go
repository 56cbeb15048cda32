package rota

import "context"

// Repository は現在のスケジュールを保持するストアのインターフェースです。
// Save は値全体を置き換え、Current は置き換え途中の値を返してはいけません。
type Repository interface {
	Save(ctx context.Context, schedule *Schedule) error
	Current(ctx context.Context) (*Schedule, error)
}

// EventPublisher はスケジュール生成イベントの通知先です。
type EventPublisher interface {
	PublishScheduleGenerated(ctx context.Context, schedule *Schedule, employeeCount int) error
}

type noopPublisher struct{}

func (noopPublisher) PublishScheduleGenerated(context.Context, *Schedule, int) error {
	return nil
}
