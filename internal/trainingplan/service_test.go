package trainingplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

type mockRepository struct {
	plans  map[int64]*TrainingPlan
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{plans: map[int64]*TrainingPlan{}, nextID: 1}
}

func (m *mockRepository) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepository) ListByPage(ctx context.Context, page, perPage int) ([]TrainingPlan, error) {
	all := m.ordered()
	start := (page - 1) * perPage
	if start >= len(all) {
		return []TrainingPlan{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *mockRepository) ordered() []TrainingPlan {
	out := make([]TrainingPlan, 0, len(m.plans))
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.plans[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.plans)), nil
}

func (m *mockRepository) CountByMember(ctx context.Context, memberID int64) (int64, error) {
	var n int64
	for _, p := range m.plans {
		if p.MemberID == memberID {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) ListByMember(ctx context.Context, memberID int64) ([]TrainingPlan, error) {
	out := []TrainingPlan{}
	for _, p := range m.ordered() {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByMemberPage(ctx context.Context, memberID int64, page, perPage int) ([]TrainingPlan, error) {
	all, _ := m.ListByMember(ctx, memberID)
	start := (page - 1) * perPage
	if start >= len(all) {
		return []TrainingPlan{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*TrainingPlan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) InsertPlan(ctx context.Context, input CreateTrainingPlanInput) (*TrainingPlan, error) {
	plan := &TrainingPlan{
		ID:          m.allocID(),
		Title:       input.Title,
		TrainerName: input.TrainerName,
		MemberID:    input.MemberID,
		PlanItems:   []PlanItem{},
	}
	for _, pi := range input.PlanItems {
		item := PlanItem{ID: m.allocID(), MuscleName: pi.MuscleName, TrainingPlanID: plan.ID, Exercises: []Exercise{}}
		for _, ex := range pi.Exercises {
			item.Exercises = append(item.Exercises, Exercise{
				ID:                m.allocID(),
				Title:             ex.Title,
				SetsNumber:        ex.SetsNumber,
				RepetitionsNumber: ex.RepetitionsNumber,
				MachineNumber:     ex.MachineNumber,
				Weight:            ex.Weight,
				PlanItemID:        item.ID,
			})
		}
		plan.PlanItems = append(plan.PlanItems, item)
	}
	m.plans[plan.ID] = plan
	return plan, nil
}

func (m *mockRepository) InsertPlanItem(ctx context.Context, input CreatePlanItemInput) (*PlanItem, error) {
	plan, ok := m.plans[input.TrainingPlanID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	item := PlanItem{ID: m.allocID(), MuscleName: input.MuscleName, TrainingPlanID: plan.ID, Exercises: []Exercise{}}
	for _, ex := range input.Exercises {
		item.Exercises = append(item.Exercises, Exercise{ID: m.allocID(), Title: ex.Title, PlanItemID: item.ID})
	}
	plan.PlanItems = append(plan.PlanItems, item)
	return &item, nil
}

func (m *mockRepository) InsertExercise(ctx context.Context, input CreateExerciseInput) (*Exercise, error) {
	for _, plan := range m.plans {
		for i := range plan.PlanItems {
			if plan.PlanItems[i].ID != input.PlanItemID {
				continue
			}
			ex := Exercise{ID: m.allocID(), Title: input.Title, PlanItemID: input.PlanItemID}
			plan.PlanItems[i].Exercises = append(plan.PlanItems[i].Exercises, ex)
			return &ex, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepository) UpdatePlan(ctx context.Context, id int64, input EditTrainingPlanInput) (*TrainingPlan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	plan.Title = input.Title
	plan.TrainerName = input.TrainerName
	return plan, nil
}

func (m *mockRepository) UpdatePlanItem(ctx context.Context, id int64, input EditPlanItemInput) (*PlanItem, error) {
	for _, plan := range m.plans {
		for i := range plan.PlanItems {
			if plan.PlanItems[i].ID == id {
				plan.PlanItems[i].MuscleName = input.MuscleName
				return &plan.PlanItems[i], nil
			}
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepository) UpdateExercise(ctx context.Context, id int64, input EditExerciseInput) (*Exercise, error) {
	for _, plan := range m.plans {
		for i := range plan.PlanItems {
			for j := range plan.PlanItems[i].Exercises {
				if plan.PlanItems[i].Exercises[j].ID == id {
					plan.PlanItems[i].Exercises[j].Title = input.Title
					plan.PlanItems[i].Exercises[j].Weight = input.Weight
					return &plan.PlanItems[i].Exercises[j], nil
				}
			}
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepository) DeletePlan(ctx context.Context, id int64) (*TrainingPlan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	delete(m.plans, id)
	return plan, nil
}

func (m *mockRepository) DeletePlanItem(ctx context.Context, id int64) (*PlanItem, error) {
	for _, plan := range m.plans {
		for i := range plan.PlanItems {
			if plan.PlanItems[i].ID == id {
				item := plan.PlanItems[i]
				plan.PlanItems = append(plan.PlanItems[:i], plan.PlanItems[i+1:]...)
				return &item, nil
			}
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepository) DeleteExercise(ctx context.Context, id int64) (*Exercise, error) {
	for _, plan := range m.plans {
		for i := range plan.PlanItems {
			exs := plan.PlanItems[i].Exercises
			for j := range exs {
				if exs[j].ID == id {
					ex := exs[j]
					plan.PlanItems[i].Exercises = append(exs[:j], exs[j+1:]...)
					return &ex, nil
				}
			}
		}
	}
	return nil, httpx.ErrNotFound
}

func validPlanInput() CreateTrainingPlanInput {
	return CreateTrainingPlanInput{
		Title:       "Push Pull Legs",
		TrainerName: "Luka Petrov",
		MemberID:    7,
		PlanItems: []PlanItemInput{
			{
				MuscleName: "Chest",
				Exercises: []ExerciseInput{
					{Title: "Bench press", SetsNumber: 4, RepetitionsNumber: 8, MachineNumber: "B2", Weight: 60},
				},
			},
		},
	}
}

func TestCreatePlanPersistsNestedItems(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	plan, err := svc.CreatePlan(context.Background(), validPlanInput())
	require.NoError(t, err)
	require.Len(t, plan.PlanItems, 1)
	require.Len(t, plan.PlanItems[0].Exercises, 1)
	assert.Equal(t, plan.ID, plan.PlanItems[0].TrainingPlanID)
	assert.Equal(t, plan.PlanItems[0].ID, plan.PlanItems[0].Exercises[0].PlanItemID)
}

func TestCreatePlanValidatesNestedInput(t *testing.T) {
	svc := NewService(newMockRepository())

	input := validPlanInput()
	input.PlanItems[0].Exercises[0].Title = ""
	_, err := svc.CreatePlan(context.Background(), input)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	input = validPlanInput()
	input.MemberID = 0
	_, err = svc.CreatePlan(context.Background(), input)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreatePlanItemRequiresPlan(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.CreatePlanItem(context.Background(), CreatePlanItemInput{
		MuscleName:     "Back",
		Exercises:      []ExerciseInput{{Title: "Row", SetsNumber: 3, RepetitionsNumber: 10}},
		TrainingPlanID: 99,
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestPlansByMember(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	for _, memberID := range []int64{7, 7, 8} {
		input := validPlanInput()
		input.MemberID = memberID
		_, err := svc.CreatePlan(context.Background(), input)
		require.NoError(t, err)
	}

	plans, err := svc.PlansByMember(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	n, err := svc.MemberPlansCount(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestEditPlanRewritesHeader(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	plan, err := svc.CreatePlan(context.Background(), validPlanInput())
	require.NoError(t, err)

	edited, err := svc.EditPlan(context.Background(), plan.ID, EditTrainingPlanInput{Title: "Upper Lower"})
	require.NoError(t, err)
	assert.Equal(t, "Upper Lower", edited.Title)
	assert.Len(t, edited.PlanItems, 1, "items survive a header edit")

	_, err = svc.EditPlan(context.Background(), plan.ID, EditTrainingPlanInput{})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeletePlanRemovesIt(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	plan, err := svc.CreatePlan(context.Background(), validPlanInput())
	require.NoError(t, err)

	removed, err := svc.DeletePlan(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, removed.ID)

	_, err = svc.PlanByID(context.Background(), plan.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
