package workday

import "time"

// WorkDayActivity aggregates gym attendance for one UTC day. Count is
// the sum of the hourly rows and is recomputed on demand.
type WorkDayActivity struct {
	ID              int64             `json:"id"`
	Date            time.Time         `json:"date"`
	Count           int               `json:"count"`
	ActivityPerHour []ActivityPerHour `json:"activityPerHour"`
}

// ActivityPerHour is the attendance count for one hour of a work day.
type ActivityPerHour struct {
	ID                int64 `json:"id"`
	Hour              int   `json:"hour"`
	Count             int   `json:"count"`
	WorkDayActivityID int64 `json:"workDayActivityId"`
}

// CreateActivityPerHourInput records attendance for one hour of the
// current day.
type CreateActivityPerHourInput struct {
	Hour  int `json:"hour" validate:"min=0,max=23"`
	Count int `json:"count" validate:"min=0"`
}

// DayStart returns the UTC day bucket for a moment in time.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
