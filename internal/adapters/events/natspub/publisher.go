// Package natspub はスケジュール生成イベントを NATS に通知します。
package natspub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ogurasousui/office-rota/internal/core/rota"
)

// ScheduleGeneratedEvent は生成イベントのペイロードです。
type ScheduleGeneratedEvent struct {
	ScheduleID         string    `json:"schedule_id"`
	GeneratedAt        time.Time `json:"generated_at"`
	NumWeeks           int       `json:"num_weeks"`
	EmployeeCount      int       `json:"employee_count"`
	WorkingDaysPerWeek int       `json:"working_days_per_week"`
}

// Publisher は rota.EventPublisher の NATS 実装です。
type Publisher struct {
	conn    *nats.Conn
	subject string
}

var _ rota.EventPublisher = (*Publisher)(nil)

// NewPublisher は conn を使って subject に通知する Publisher を生成します。
func NewPublisher(conn *nats.Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// Connect は url の NATS サーバーに接続します。
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("office-rota"),
		nats.Timeout(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	return conn, nil
}

// PublishScheduleGenerated は生成イベントを JSON で送信します。
func (p *Publisher) PublishScheduleGenerated(ctx context.Context, s *rota.Schedule, employeeCount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(ScheduleGeneratedEvent{
		ScheduleID:         s.ID,
		GeneratedAt:        s.GeneratedAt,
		NumWeeks:           len(s.Weeks),
		EmployeeCount:      employeeCount,
		WorkingDaysPerWeek: s.WorkingDaysPerWeek,
	})
	if err != nil {
		return fmt.Errorf("nats: marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("nats: publish %s: %w", p.subject, err)
	}
	return nil
}
