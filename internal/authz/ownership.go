package authz

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Params carries the raw request parameters consulted by ownership
// checks. Values are consumed verbatim; the verifier only applies
// numeric parsing.
type Params map[string]string

// RouteParams collects the chi URL parameters of the current request.
func RouteParams(r *http.Request) Params {
	params := Params{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

func (p Params) int64(key string) (int64, bool) {
	id, err := strconv.ParseInt(p[key], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Verifier answers the per-resource ownership question for a principal.
type Verifier struct {
	store Store
}

// NewVerifier constructs a Verifier over the given store.
func NewVerifier(store Store) Verifier {
	return Verifier{store: store}
}

// Verify reports whether the resource named by kind in params belongs to
// the principal. Every database branch issues exactly one counting query
// and accepts only an exact count of 1; a count of 0 and a corrupted
// count above 1 are both denials. An unparseable parameter never reaches
// the database and denies outright.
func (v Verifier) Verify(ctx context.Context, kind ParamKind, params Params, principal Principal) (bool, error) {
	switch kind {
	case ParamTrainingPlanID:
		id, ok := params.int64("id")
		if !ok {
			return false, nil
		}
		return v.matchOne(v.store.CountOwnedTrainingPlans(ctx, id, principal.ID))

	case ParamGymClassID:
		id, ok := params.int64("gymClassId")
		if !ok {
			return false, nil
		}
		return v.matchOne(v.store.CountClassMemberships(ctx, id, principal.ID))

	case ParamMemberID:
		// Pure comparison, no database access. memberId wins over id
		// when both are present.
		raw, found := params["memberId"]
		if !found || raw == "" {
			raw = params["id"]
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return false, nil
		}
		return id == principal.ID, nil

	case ParamPlanItemID:
		id, ok := params.int64("id")
		if !ok {
			return false, nil
		}
		return v.matchOne(v.store.CountOwnedPlanItems(ctx, id, principal.ID))

	case ParamExerciseID:
		id, ok := params.int64("id")
		if !ok {
			return false, nil
		}
		return v.matchOne(v.store.CountOwnedExercises(ctx, id, principal.ID))

	case ParamWorkoutGoalID:
		id, ok := params.int64("id")
		if !ok {
			return false, nil
		}
		return v.matchOne(v.store.CountOwnedWorkoutGoals(ctx, id, principal.ID))
	}

	// Unrecognized kinds pass. This is a deliberate, audited default for
	// routes without a declared kind; review per route before relying on
	// it for anything new.
	return true, nil
}

func (v Verifier) matchOne(count int64, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return count == 1, nil
}
