package rotarpc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformedRequest はリクエストの Struct が期待する形でない場合に返却されます。
var ErrMalformedRequest = errors.New("malformed request")

const maxExactInteger = 1 << 53

// WeekMessage は 1 週間分の割り当ての転送表現です。
type WeekMessage struct {
	Present []string
	Remote  []string
}

// ScheduleMessage は GetSchedule のレスポンスの転送表現です。
type ScheduleMessage struct {
	ID                 string
	GeneratedAt        time.Time
	WorkingDaysPerWeek int
	Weeks              []WeekMessage
}

// NewGenerateRequest は GenerateSchedule のリクエストを組み立てます。
func NewGenerateRequest(employees []string, numWeeks int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"employees": toAnyList(employees),
		"num_weeks": numWeeks,
	})
}

// ParseGenerateRequest は GenerateSchedule のリクエストから社員一覧と週数を取り出します。
// employees が無い場合は空の一覧として扱い、空かどうかの判定はユースケースに任せます。
func ParseGenerateRequest(req *structpb.Struct) ([]string, int, error) {
	if req == nil {
		return nil, 0, fmt.Errorf("%w: request is required", ErrMalformedRequest)
	}
	fields := req.GetFields()

	var employees []string
	if v, ok := fields["employees"]; ok {
		list := v.GetListValue()
		if list == nil {
			return nil, 0, fmt.Errorf("%w: employees must be a list", ErrMalformedRequest)
		}
		employees = make([]string, 0, len(list.GetValues()))
		for i, item := range list.GetValues() {
			s, ok := item.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, 0, fmt.Errorf("%w: employees[%d] must be a string", ErrMalformedRequest, i)
			}
			employees = append(employees, s.StringValue)
		}
	}

	v, ok := fields["num_weeks"]
	if !ok {
		return nil, 0, fmt.Errorf("%w: num_weeks is required", ErrMalformedRequest)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return nil, 0, fmt.Errorf("%w: num_weeks must be a number", ErrMalformedRequest)
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactInteger {
		return nil, 0, fmt.Errorf("%w: num_weeks must be an integer", ErrMalformedRequest)
	}

	return employees, int(f), nil
}

// ToStruct は ScheduleMessage を Struct に変換します。
func (m ScheduleMessage) ToStruct() (*structpb.Struct, error) {
	weeks := make([]any, len(m.Weeks))
	for i, w := range m.Weeks {
		weeks[i] = map[string]any{
			"present": toAnyList(w.Present),
			"remote":  toAnyList(w.Remote),
		}
	}
	return structpb.NewStruct(map[string]any{
		"id":                    m.ID,
		"generated_at":          m.GeneratedAt.UTC().Format(time.RFC3339Nano),
		"working_days_per_week": m.WorkingDaysPerWeek,
		"weeks":                 weeks,
	})
}

// ParseSchedule は GetSchedule のレスポンスを ScheduleMessage に変換します。
func ParseSchedule(s *structpb.Struct) (ScheduleMessage, error) {
	var m ScheduleMessage
	if s == nil {
		return m, fmt.Errorf("%w: schedule is required", ErrMalformedRequest)
	}
	fields := s.GetFields()

	m.ID = fields["id"].GetStringValue()
	m.WorkingDaysPerWeek = int(fields["working_days_per_week"].GetNumberValue())
	if raw := fields["generated_at"].GetStringValue(); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return m, fmt.Errorf("%w: generated_at: %v", ErrMalformedRequest, err)
		}
		m.GeneratedAt = t
	}

	for i, v := range fields["weeks"].GetListValue().GetValues() {
		week := v.GetStructValue()
		if week == nil {
			return m, fmt.Errorf("%w: weeks[%d] must be an object", ErrMalformedRequest, i)
		}
		present, err := fromList(week.GetFields()["present"])
		if err != nil {
			return m, fmt.Errorf("%w: weeks[%d].present: %v", ErrMalformedRequest, i, err)
		}
		remote, err := fromList(week.GetFields()["remote"])
		if err != nil {
			return m, fmt.Errorf("%w: weeks[%d].remote: %v", ErrMalformedRequest, i, err)
		}
		m.Weeks = append(m.Weeks, WeekMessage{Present: present, Remote: remote})
	}

	return m, nil
}

func toAnyList(xs []string) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func fromList(v *structpb.Value) ([]string, error) {
	values := v.GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for j, item := range values {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("[%d] must be a string", j)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}
