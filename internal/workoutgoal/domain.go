package workoutgoal

import "time"

// WorkoutGoal is a member's monthly training target. Date is the first
// day of the month at midnight UTC, so one goal exists per member per
// month.
type WorkoutGoal struct {
	ID                    int64     `json:"id"`
	TrainingNumber        int       `json:"trainingNumber"`
	CurrentTrainingNumber int       `json:"currentTrainingNumber"`
	Date                  time.Time `json:"date"`
	MemberID              int64     `json:"memberId"`
}

// CreateWorkoutGoalInput sets the target for the current month.
type CreateWorkoutGoalInput struct {
	TrainingNumber int `json:"trainingNumber" validate:"required,max=100"`
}

// EditWorkoutGoalInput changes the target of an existing goal.
type EditWorkoutGoalInput struct {
	TrainingNumber int `json:"trainingNumber" validate:"required,max=100"`
}

// MonthStart returns the UTC month bucket for a moment in time.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
