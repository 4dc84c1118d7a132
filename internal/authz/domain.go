package authz

// Role enumerates every role a principal can hold. MEMBER is the only
// non-staff role; all other roles belong to staff user accounts.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleReception Role = "RECEPTION"
	RoleTrainer   Role = "TRAINER"
	RoleSeller    Role = "SELLER"
	RoleMember    Role = "MEMBER"
)

// privilegedRoles are exempt from ownership verification. SELLER is
// deliberately excluded even though it is a staff role.
var privilegedRoles = map[Role]struct{}{
	RoleAdmin:     {},
	RoleReception: {},
	RoleTrainer:   {},
}

// Valid reports whether the role belongs to the known enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReception, RoleTrainer, RoleSeller, RoleMember:
		return true
	}
	return false
}

// Privileged reports whether the role skips ownership checks.
func (r Role) Privileged() bool {
	_, ok := privilegedRoles[r]
	return ok
}

// PrincipalKind discriminates which credential collection a principal
// was resolved from.
type PrincipalKind string

const (
	KindStaffUser PrincipalKind = "user"
	KindGymMember PrincipalKind = "member"
)

// Principal is the authenticated actor for the current request. It is
// built fresh per request by the resolver and never persisted. Staff
// users and members keep independent integer id spaces, so ID alone is
// ambiguous: Kind (derived from Role) selects the collection.
type Principal struct {
	ID   int64
	Role Role
}

// Kind derives the credential collection the principal lives in.
func (p Principal) Kind() PrincipalKind {
	if p.Role == RoleMember {
		return KindGymMember
	}
	return KindStaffUser
}

// ParamKind names which request parameter an ownership check applies to.
type ParamKind string

const (
	ParamTrainingPlanID ParamKind = "trainingPlanId"
	ParamGymClassID     ParamKind = "gymClassId"
	ParamMemberID       ParamKind = "memberId"
	ParamPlanItemID     ParamKind = "planItemId"
	ParamExerciseID     ParamKind = "exerciseId"
	ParamWorkoutGoalID  ParamKind = "workoutGoalId"
)

// Policy is the static route metadata consulted by the gate. Policies
// are bound to routes at registration time; nothing is discovered at
// request time.
type Policy struct {
	// Roles that may call the route. Empty means any authenticated
	// principal passes the role stage.
	Roles []Role
	// Ownership names the parameter kind verified for non-privileged
	// callers. Empty means the role stage alone decides.
	Ownership ParamKind
}

// Allow builds a Policy restricted to the given roles.
func Allow(roles ...Role) Policy {
	return Policy{Roles: roles}
}

// Owned attaches an ownership parameter kind to the policy.
func (p Policy) Owned(kind ParamKind) Policy {
	p.Ownership = kind
	return p
}

// permitsRole applies the role stage: an empty role list passes.
func (p Policy) permitsRole(role Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
