package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	members map[int64]Principal
	users   map[int64]Principal

	planCounts     map[[2]int64]int64
	classCounts    map[[2]int64]int64
	itemCounts     map[[2]int64]int64
	exerciseCounts map[[2]int64]int64
	goalCounts     map[[2]int64]int64

	countErr   error
	queryCount int
}

func newStubStore() *stubStore {
	return &stubStore{
		members:        map[int64]Principal{},
		users:          map[int64]Principal{},
		planCounts:     map[[2]int64]int64{},
		classCounts:    map[[2]int64]int64{},
		itemCounts:     map[[2]int64]int64{},
		exerciseCounts: map[[2]int64]int64{},
		goalCounts:     map[[2]int64]int64{},
	}
}

func (s *stubStore) FindMemberPrincipal(ctx context.Context, id int64) (Principal, error) {
	p, ok := s.members[id]
	if !ok {
		return Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

func (s *stubStore) FindUserPrincipal(ctx context.Context, id int64) (Principal, error) {
	p, ok := s.users[id]
	if !ok {
		return Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

func (s *stubStore) count(table map[[2]int64]int64, resourceID, memberID int64) (int64, error) {
	s.queryCount++
	if s.countErr != nil {
		return 0, s.countErr
	}
	return table[[2]int64{resourceID, memberID}], nil
}

func (s *stubStore) CountOwnedTrainingPlans(ctx context.Context, planID, memberID int64) (int64, error) {
	return s.count(s.planCounts, planID, memberID)
}

func (s *stubStore) CountClassMemberships(ctx context.Context, classID, memberID int64) (int64, error) {
	return s.count(s.classCounts, classID, memberID)
}

func (s *stubStore) CountOwnedPlanItems(ctx context.Context, itemID, memberID int64) (int64, error) {
	return s.count(s.itemCounts, itemID, memberID)
}

func (s *stubStore) CountOwnedExercises(ctx context.Context, exerciseID, memberID int64) (int64, error) {
	return s.count(s.exerciseCounts, exerciseID, memberID)
}

func (s *stubStore) CountOwnedWorkoutGoals(ctx context.Context, goalID, memberID int64) (int64, error) {
	return s.count(s.goalCounts, goalID, memberID)
}

func TestVerifyTrainingPlanOwnership(t *testing.T) {
	store := newStubStore()
	store.planCounts[[2]int64{10, 7}] = 1
	v := NewVerifier(store)
	member := Principal{ID: 7, Role: RoleMember}

	owned, err := v.Verify(context.Background(), ParamTrainingPlanID, Params{"id": "10"}, member)
	require.NoError(t, err)
	assert.True(t, owned)
	assert.Equal(t, 1, store.queryCount)

	owned, err = v.Verify(context.Background(), ParamTrainingPlanID, Params{"id": "11"}, member)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestVerifyCountAboveOneDenies(t *testing.T) {
	store := newStubStore()
	store.classCounts[[2]int64{3, 7}] = 2
	v := NewVerifier(store)

	owned, err := v.Verify(context.Background(), ParamGymClassID,
		Params{"gymClassId": "3"}, Principal{ID: 7, Role: RoleMember})
	require.NoError(t, err)
	assert.False(t, owned, "only an exact count of 1 may pass")
}

func TestVerifyMemberIDComparesWithoutQuery(t *testing.T) {
	store := newStubStore()
	v := NewVerifier(store)
	member := Principal{ID: 42, Role: RoleMember}

	owned, err := v.Verify(context.Background(), ParamMemberID, Params{"memberId": "42"}, member)
	require.NoError(t, err)
	assert.True(t, owned)

	// Falls back to id when memberId is absent.
	owned, err = v.Verify(context.Background(), ParamMemberID, Params{"id": "42"}, member)
	require.NoError(t, err)
	assert.True(t, owned)

	// memberId wins over id when both are present.
	owned, err = v.Verify(context.Background(), ParamMemberID,
		Params{"memberId": "1", "id": "42"}, member)
	require.NoError(t, err)
	assert.False(t, owned)

	assert.Equal(t, 0, store.queryCount)
}

func TestVerifyUnparseableParamDenies(t *testing.T) {
	store := newStubStore()
	v := NewVerifier(store)

	for _, kind := range []ParamKind{
		ParamTrainingPlanID, ParamPlanItemID, ParamExerciseID, ParamWorkoutGoalID,
	} {
		owned, err := v.Verify(context.Background(), kind,
			Params{"id": "abc"}, Principal{ID: 1, Role: RoleMember})
		require.NoError(t, err)
		assert.False(t, owned, "kind %s", kind)
	}
	assert.Equal(t, 0, store.queryCount, "unparseable params must not reach the store")
}

func TestVerifyUnknownKindAllows(t *testing.T) {
	v := NewVerifier(newStubStore())

	owned, err := v.Verify(context.Background(), ParamKind("somethingElse"),
		Params{}, Principal{ID: 1, Role: RoleMember})
	require.NoError(t, err)
	assert.True(t, owned)
}

func TestVerifyStoreErrorPropagates(t *testing.T) {
	store := newStubStore()
	store.countErr = errors.New("connection reset")
	v := NewVerifier(store)

	owned, err := v.Verify(context.Background(), ParamExerciseID,
		Params{"id": "5"}, Principal{ID: 1, Role: RoleMember})
	require.Error(t, err)
	assert.False(t, owned)
}
