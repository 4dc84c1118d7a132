package gymclass

// ClassType enumerates the kinds of group classes on the schedule.
type ClassType string

const (
	TypeBodyshape ClassType = "BODYSHAPE"
	TypeBoxing    ClassType = "BOXING"
	TypeSpinning  ClassType = "SPINNING"
	TypeSwimming  ClassType = "SWIMMING"
	TypeYoga      ClassType = "YOGA"
)

// Day enumerates schedule days. Values are stored as a Postgres enum so
// ORDER BY follows the week, not the alphabet.
type Day string

const (
	Sunday    Day = "SUNDAY"
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
	Saturday  Day = "SATURDAY"
)

// Valid reports whether the day belongs to the known enumeration.
func (d Day) Valid() bool {
	switch d {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	}
	return false
}

// GymClass is a scheduled group class with its member roster.
type GymClass struct {
	ID         int64     `json:"id"`
	Type       ClassType `json:"type"`
	Trainer    string    `json:"trainer"`
	Day        Day       `json:"day"`
	IsActive   bool      `json:"isActive"`
	StartHour  string    `json:"startHour"`
	Duration   int       `json:"duration"`
	RoomNumber int       `json:"roomNumber"`
	MaxMembers int       `json:"maxMembers"`
	MemberIDs  []int64   `json:"memberIds"`
}

// GymClassInput is the payload for creating or editing a class.
// StartHour is a wall-clock "HH:MM" string.
type GymClassInput struct {
	Type       ClassType `json:"type" validate:"required,oneof=BODYSHAPE BOXING SPINNING SWIMMING YOGA"`
	Trainer    string    `json:"trainer" validate:"required,max=50"`
	Day        Day       `json:"day" validate:"required,oneof=SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY"`
	IsActive   *bool     `json:"isActive"`
	StartHour  string    `json:"startHour" validate:"required"`
	Duration   int       `json:"duration" validate:"required,max=90"`
	RoomNumber int       `json:"roomNumber" validate:"required,max=30"`
	MaxMembers int       `json:"maxMembers" validate:"required,max=100"`
}
