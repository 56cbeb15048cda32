package rota

import (
	"math/rand/v2"
	"slices"
)

// Shuffler は一様ランダムな並べ替えを提供します。*rand.Rand はこれを満たします。
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// globalShuffler はプロセス共通の math/rand/v2 ソースを使います。並行呼び出しに安全です。
type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Generator は社員一覧から週ごとの出社割り当てを生成します。
type Generator struct {
	workingDays int
	shuffler    Shuffler
}

// NewGenerator は Generator を生成します。shuffler が nil の場合はグローバルな乱数源を使います。
func NewGenerator(workingDaysPerWeek int, shuffler Shuffler) (*Generator, error) {
	if workingDaysPerWeek < 1 {
		return nil, ErrInvalidWorkingDays
	}
	if shuffler == nil {
		shuffler = globalShuffler{}
	}
	return &Generator{workingDays: workingDaysPerWeek, shuffler: shuffler}, nil
}

// WorkingDaysPerWeek は 1 週間の出社枠を返します。
func (g *Generator) WorkingDaysPerWeek() int {
	return g.workingDays
}

// Generate は numWeeks 週分のスケジュールを生成します。
// 各週は独立にシャッフルされ、numWeeks が 0 以下なら空のスケジュールになります。
// 週数の上限はここでは課さず、事前確保する容量だけを MaxWeeks で抑えます。
func (g *Generator) Generate(employees []string, numWeeks int) *Schedule {
	tally := make(PresenceTally, len(employees))
	for _, e := range employees {
		tally[e] = 0
	}

	weeks := make([]Week, 0, min(max(numWeeks, 0), MaxWeeks))
	for range numWeeks {
		weeks = append(weeks, g.AssignWeek(employees, tally))
	}

	return &Schedule{
		WorkingDaysPerWeek: g.workingDays,
		Weeks:              weeks,
	}
}

// AssignWeek は 1 週間分の割り当てを生成します。
// シャッフル後の末尾 min(K, n) 人が出社、それ以外が入力順のまま在宅になります。
func (g *Generator) AssignWeek(employees []string, tally PresenceTally) Week {
	available := slices.Clone(employees)
	g.shuffler.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	slots := min(g.workingDays, len(employees))
	present := make([]string, 0, slots)
	for range slots {
		last := available[len(available)-1]
		available = available[:len(available)-1]
		present = append(present, last)
		if tally != nil {
			tally[last]++
		}
	}

	remote := make([]string, 0, len(employees)-slots)
	for _, e := range employees {
		if !slices.Contains(present, e) {
			remote = append(remote, e)
		}
	}

	return Week{Present: present, Remote: remote}
}
