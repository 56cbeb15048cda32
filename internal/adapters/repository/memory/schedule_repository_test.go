package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogurasousui/office-rota/internal/core/rota"
)

func TestScheduleRepository_EmptyReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := NewScheduleRepository()

	_, err := repo.Current(context.Background())
	require.ErrorIs(t, err, rota.ErrScheduleNotFound)
}

func TestScheduleRepository_SaveReplacesWholeValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewScheduleRepository()

	require.NoError(t, repo.Save(ctx, &rota.Schedule{ID: "first", Weeks: []rota.Week{{Present: []string{"A"}}}}))
	require.NoError(t, repo.Save(ctx, &rota.Schedule{ID: "second", Weeks: []rota.Week{{Present: []string{"B"}}, {Present: []string{"C"}}}}))

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.ID)
	assert.Len(t, got.Weeks, 2)
}

func TestScheduleRepository_IsolatesCallerMutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewScheduleRepository()

	in := &rota.Schedule{ID: "s", Weeks: []rota.Week{{Present: []string{"A"}, Remote: []string{"B"}}}}
	require.NoError(t, repo.Save(ctx, in))
	in.Weeks[0].Present[0] = "mutated"

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	got.Weeks[0].Remote[0] = "mutated"

	again, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, again.Weeks[0].Present)
	assert.Equal(t, []string{"B"}, again.Weeks[0].Remote)
}

func TestScheduleRepository_ConcurrentReadersSeeWholeSchedules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewScheduleRepository()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				n := i%3 + 1
				weeks := make([]rota.Week, n)
				_ = repo.Save(ctx, &rota.Schedule{ID: fmt.Sprintf("w%d-%d", n, j), WorkingDaysPerWeek: n, Weeks: weeks})
			}
		}()
	}

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				got, err := repo.Current(ctx)
				if err != nil {
					continue
				}
				// 書き込み側は週数と WorkingDaysPerWeek を揃えて保存している。
				assert.Len(t, got.Weeks, got.WorkingDaysPerWeek)
			}
		}()
	}

	wg.Wait()
}
