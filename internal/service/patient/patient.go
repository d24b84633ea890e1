// Package patient is the per-doctor patient directory.
package patient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/store"
)

type CreatePatientRequest struct {
	DisplayName    string `json:"display_name"`
	SecondaryLabel string `json:"secondary_label"`
	Avatar         string `json:"avatar"`
}

type Service interface {
	// List returns the patients in the doctor's directory.
	List(ctx context.Context, doctorID domain.ID) ([]domain.Patient, error)
	Create(ctx context.Context, doctorID domain.ID, req CreatePatientRequest) (domain.Patient, error)
	Get(ctx context.Context, patientID domain.ID) (domain.Patient, error)
	// CanAccess reports whether doctorID owns patientID.
	CanAccess(ctx context.Context, doctorID, patientID domain.ID) error
}

type patientService struct {
	table  store.Table[domain.Patient]
	logger *slog.Logger
}

func New(table store.Table[domain.Patient], logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &patientService{table: table, logger: logger}
}

func (s *patientService) List(ctx context.Context, doctorID domain.ID) ([]domain.Patient, error) {
	if doctorID.IsZero() {
		return nil, fmt.Errorf("%w: doctor id is required", domain.ErrValidation)
	}
	return s.table.List(ctx, doctorID)
}

func (s *patientService) Create(ctx context.Context, doctorID domain.ID, req CreatePatientRequest) (domain.Patient, error) {
	p := domain.Patient{
		ScopedEntity: domain.ScopedEntity{
			DisplayName:    strings.TrimSpace(req.DisplayName),
			SecondaryLabel: strings.TrimSpace(req.SecondaryLabel),
			Avatar:         req.Avatar,
		},
		DoctorID: doctorID,
	}
	if err := domain.Patients.Validate(p); err != nil {
		return domain.Patient{}, err
	}
	p.ID = domain.ID(uuid.NewString())

	if err := s.table.Insert(ctx, p); err != nil {
		return domain.Patient{}, fmt.Errorf("create patient: %w", err)
	}
	s.logger.InfoContext(ctx, "patient created", "patient_id", p.ID, "doctor_id", doctorID)
	return p, nil
}

func (s *patientService) Get(ctx context.Context, patientID domain.ID) (domain.Patient, error) {
	p, err := s.table.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Patient{}, ErrPatientNotFound
		}
		return domain.Patient{}, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *patientService) CanAccess(ctx context.Context, doctorID, patientID domain.ID) error {
	p, err := s.Get(ctx, patientID)
	if err != nil {
		return err
	}
	if p.DoctorID != doctorID {
		return ErrAccessDenied
	}
	return nil
}
