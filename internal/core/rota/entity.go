package rota

import "time"

// DefaultWorkingDaysPerWeek は 1 週間あたりの出社枠の既定値です。
const DefaultWorkingDaysPerWeek = 5

// MaxWeeks は 1 回の生成リクエストで受け付ける週数の上限 (約 10 年分) です。
// Generator 自体は上限を持たず、Service が受付時に検証します。
const MaxWeeks = 520

// Week は 1 週間分の出社・在宅の割り当てです。
// Present と Remote は入力された社員一覧を重複なく分割します。
type Week struct {
	Present []string
	Remote  []string
}

// Schedule は複数週にわたる割り当てです。
type Schedule struct {
	ID                 string
	GeneratedAt        time.Time
	WorkingDaysPerWeek int
	Weeks              []Week
}

// PresenceTally は社員ごとの出社週数です。
// 生成中に加算されるだけで、選出には使われません。
type PresenceTally map[string]int

// Clone は Schedule のディープコピーを返します。
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	out := *s
	out.Weeks = make([]Week, len(s.Weeks))
	for i, w := range s.Weeks {
		out.Weeks[i] = Week{
			Present: append([]string{}, w.Present...),
			Remote:  append([]string{}, w.Remote...),
		}
	}
	return &out
}
