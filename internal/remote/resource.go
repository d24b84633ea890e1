package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// Resource is the remote collection of one record kind, scoped by patient.
type Resource[R domain.Record] struct {
	c    *Client
	kind domain.Kind[R]
}

func NewResource[R domain.Record](c *Client, kind domain.Kind[R]) *Resource[R] {
	return &Resource[R]{c: c, kind: kind}
}

func (r *Resource[R]) scopePath(scope domain.ID) string {
	return fmt.Sprintf("%s/patients/%s/%s", apiPrefix, url.PathEscape(scope.String()), r.kind.Name)
}

func (r *Resource[R]) itemPath(id domain.ID) string {
	return fmt.Sprintf("%s/%s/%s", apiPrefix, r.kind.Name, url.PathEscape(id.String()))
}

func (r *Resource[R]) List(ctx context.Context, scope domain.ID) ([]R, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: %s: scope is required", domain.ErrValidation, r.kind.Name)
	}
	var out []R
	if err := r.c.do(ctx, http.MethodGet, r.scopePath(scope), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[R]) Create(ctx context.Context, rec R) (R, error) {
	var zero R
	if !rec.RecordID().IsZero() {
		return zero, fmt.Errorf("%w: %s: new record must not carry an id", domain.ErrValidation, r.kind.Name)
	}
	if err := r.kind.Validate(rec); err != nil {
		return zero, err
	}
	var out R
	if err := r.c.do(ctx, http.MethodPost, r.scopePath(rec.RecordScope()), rec, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func (r *Resource[R]) Update(ctx context.Context, rec R) (R, error) {
	var zero R
	if rec.RecordID().IsZero() {
		return zero, fmt.Errorf("%w: %s: id is required", domain.ErrValidation, r.kind.Name)
	}
	if err := r.kind.Validate(rec); err != nil {
		return zero, err
	}
	var out R
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(rec.RecordID()), rec, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func (r *Resource[R]) Delete(ctx context.Context, id domain.ID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: %s: id is required", domain.ErrValidation, r.kind.Name)
	}
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

// PatientDirectory lists the patients visible to the session.
type PatientDirectory struct {
	c *Client
}

func (d *PatientDirectory) List(ctx context.Context) ([]domain.ScopedEntity, error) {
	var out []domain.ScopedEntity
	if err := d.c.do(ctx, http.MethodGet, apiPrefix+"/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *PatientDirectory) Create(ctx context.Context, e domain.ScopedEntity) (domain.ScopedEntity, error) {
	if e.DisplayName == "" {
		return domain.ScopedEntity{}, fmt.Errorf("%w: patient display_name is required", domain.ErrValidation)
	}
	var out domain.ScopedEntity
	if err := d.c.do(ctx, http.MethodPost, apiPrefix+"/patients", e, &out); err != nil {
		return domain.ScopedEntity{}, err
	}
	return out, nil
}
