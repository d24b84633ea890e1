package authorize

import "strings"

type Action string
type Resource string
type Role string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionList: {}, ActionRead: {}, ActionCreate: {}, ActionUpdate: {}, ActionDelete: {},
}

// Resources are named after the URL segment of each collection so that a
// route's kind maps onto its resource without a lookup table.
const (
	ResourcePatient    Resource = "patients"
	ResourceBloodSugar Resource = "blood-sugar"
	ResourceInsulin    Resource = "insulin-logs"
	ResourceExercise   Resource = "exercise-plans"
	ResourceDiet       Resource = "diet-plans"
	ResourceSymptom    Resource = "symptoms"

	WildcardResource Resource = "*"
)

var KnownResources = map[Resource]struct{}{
	ResourcePatient: {}, ResourceBloodSugar: {}, ResourceInsulin: {},
	ResourceExercise: {}, ResourceDiet: {}, ResourceSymptom: {},
}

const (
	RoleDoctor  Role = "role:doctor"
	RolePatient Role = "role:patient"
)

var KnownRoles = map[Role]struct{}{
	RoleDoctor:  {},
	RolePatient: {},
}

// RoleFor maps a session role ("doctor", "patient") to its policy subject.
// Unknown names map to the empty role, which no policy matches.
func RoleFor(name string) Role {
	r := Role("role:" + strings.ToLower(strings.TrimSpace(name)))
	if _, ok := KnownRoles[r]; !ok {
		return ""
	}
	return r
}

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// Permission rows: p, role, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
