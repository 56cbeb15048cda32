package memory

import (
	"context"
	"sync"

	"github.com/ogurasousui/office-rota/internal/core/rota"
)

// ScheduleRepository はプロセス内メモリに現在のスケジュールを 1 件だけ保持します。
// 再起動すると失われます。
type ScheduleRepository struct {
	mu      sync.RWMutex
	current *rota.Schedule
}

// NewScheduleRepository は空の ScheduleRepository を生成します。
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

// Save は現在のスケジュールを丸ごと置き換えます。
func (r *ScheduleRepository) Save(_ context.Context, schedule *rota.Schedule) error {
	c := schedule.Clone()

	r.mu.Lock()
	r.current = c
	r.mu.Unlock()

	return nil
}

// Current は現在のスケジュールのコピーを返します。
func (r *ScheduleRepository) Current(_ context.Context) (*rota.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return nil, rota.ErrScheduleNotFound
	}
	return r.current.Clone(), nil
}
