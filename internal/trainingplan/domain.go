package trainingplan

// TrainingPlan is a member's workout program. Plan items group the
// exercises by targeted muscle.
type TrainingPlan struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	TrainerName string     `json:"trainerName"`
	MemberID    int64      `json:"memberId"`
	PlanItems   []PlanItem `json:"planItems"`
}

// PlanItem is one muscle group inside a training plan.
type PlanItem struct {
	ID             int64      `json:"id"`
	MuscleName     string     `json:"muscleName"`
	TrainingPlanID int64      `json:"trainingPlanId"`
	Exercises      []Exercise `json:"exercises"`
}

// Exercise is a single movement inside a plan item.
type Exercise struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	SetsNumber        int     `json:"setsNumber"`
	RepetitionsNumber int     `json:"repetitionsNumber"`
	MachineNumber     string  `json:"machineNumber"`
	Weight            float64 `json:"weight"`
	PlanItemID        int64   `json:"planItemId"`
}

// ExerciseInput describes one exercise in a nested plan create.
type ExerciseInput struct {
	Title             string  `json:"title" validate:"required,max=50"`
	SetsNumber        int     `json:"setsNumber" validate:"required"`
	RepetitionsNumber int     `json:"repetitionsNumber" validate:"required"`
	MachineNumber     string  `json:"machineNumber" validate:"omitempty,max=25"`
	Weight            float64 `json:"weight"`
}

// PlanItemInput describes one plan item in a nested plan create.
type PlanItemInput struct {
	MuscleName string          `json:"muscleName" validate:"required,max=50"`
	Exercises  []ExerciseInput `json:"exercises" validate:"required,dive"`
}

// CreateTrainingPlanInput is the payload for a full nested plan create.
type CreateTrainingPlanInput struct {
	Title       string          `json:"title" validate:"required,max=100"`
	TrainerName string          `json:"trainerName" validate:"omitempty,max=50"`
	MemberID    int64           `json:"memberId" validate:"required"`
	PlanItems   []PlanItemInput `json:"planItems" validate:"required,dive"`
}

// CreatePlanItemInput adds a plan item, with its exercises, to an
// existing plan.
type CreatePlanItemInput struct {
	MuscleName     string          `json:"muscleName" validate:"required,max=50"`
	Exercises      []ExerciseInput `json:"exercises" validate:"required,dive"`
	TrainingPlanID int64           `json:"trainingPlanId" validate:"required"`
}

// CreateExerciseInput adds an exercise to an existing plan item.
type CreateExerciseInput struct {
	Title             string  `json:"title" validate:"required,max=50"`
	SetsNumber        int     `json:"setsNumber" validate:"required"`
	RepetitionsNumber int     `json:"repetitionsNumber" validate:"required"`
	MachineNumber     string  `json:"machineNumber" validate:"omitempty,max=25"`
	Weight            float64 `json:"weight"`
	PlanItemID        int64   `json:"planItemId" validate:"required"`
}

// EditTrainingPlanInput rewrites the plan header.
type EditTrainingPlanInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	TrainerName string `json:"trainerName" validate:"omitempty,max=50"`
}

// EditPlanItemInput renames a plan item.
type EditPlanItemInput struct {
	MuscleName string `json:"muscleName" validate:"required,max=50"`
}

// EditExerciseInput rewrites an exercise.
type EditExerciseInput struct {
	Title             string  `json:"title" validate:"required,max=50"`
	SetsNumber        int     `json:"setsNumber" validate:"required"`
	RepetitionsNumber int     `json:"repetitionsNumber" validate:"required"`
	MachineNumber     string  `json:"machineNumber" validate:"omitempty,max=25"`
	Weight            float64 `json:"weight"`
}
