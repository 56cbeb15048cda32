package rota

import "errors"

var (
	// ErrEmptyEmployees は社員一覧が空の場合に返却されます。
	ErrEmptyEmployees = errors.New("employee list must not be empty")
	// ErrInvalidWeekCount は週数が 0 から MaxWeeks の範囲外の場合に返却されます。
	ErrInvalidWeekCount = errors.New("num_weeks must be between 0 and 520")
	// ErrInvalidWorkingDays は出社枠が 1 未満の場合に返却されます。
	ErrInvalidWorkingDays = errors.New("working days per week must be at least 1")
	// ErrScheduleNotFound はまだスケジュールが生成されていない場合に返却されます。
	ErrScheduleNotFound = errors.New("schedule not found; generate one first")
)
