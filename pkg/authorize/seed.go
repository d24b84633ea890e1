package authorize

import (
	"context"
	"log/slog"
)

// DefaultPolicies is the baseline permission set.
//
// Doctors manage their patients and every record collection. Patients log
// their own measurements, insulin and symptoms, and can only read the plans
// a doctor assigned them. Which patient a request may touch is decided by
// the scope guard, not here.
func DefaultPolicies() []PermissionPolicy {
	return []PermissionPolicy{
		{RoleDoctor, WildcardResource, WildcardAction, EffectAllow},

		{RolePatient, ResourcePatient, ActionRead, EffectAllow},
		{RolePatient, ResourceBloodSugar, WildcardAction, EffectAllow},
		{RolePatient, ResourceInsulin, WildcardAction, EffectAllow},
		{RolePatient, ResourceSymptom, WildcardAction, EffectAllow},
		{RolePatient, ResourceExercise, ActionList, EffectAllow},
		{RolePatient, ResourceDiet, ActionList, EffectAllow},
		{RolePatient, ResourcePatient, ActionCreate, EffectDeny},
		{RolePatient, ResourcePatient, ActionList, EffectDeny},
	}
}

// SeedDefaultPolicies loads DefaultPolicies into auth.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	policies := DefaultPolicies()
	for _, p := range policies {
		if _, err := auth.AddPermission(ctx, p); err != nil {
			logger.Error("failed to add policy", "role", p.Subject, "resource", p.Object, "error", err)
			return err
		}
	}

	logger.Debug("seeded default RBAC policies", "count", len(policies))
	return nil
}

// NewDefault returns an audited authorizer preloaded with DefaultPolicies.
func NewDefault(ctx context.Context, logger *slog.Logger) (IAuthorization, error) {
	e, err := NewEnforcer()
	if err != nil {
		return nil, err
	}
	base, err := NewAuthorization(e)
	if err != nil {
		return nil, err
	}
	audited := NewAuditedAuthorization(base, logger)
	if err := SeedDefaultPolicies(ctx, audited, logger); err != nil {
		return nil, err
	}
	return audited, nil
}
