package taxsettings

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
)

type SettingsServiceImpl struct {
	db   *database.DB
	repo taxrule.SettingsRepository
}

func NewSettingsService(db *database.DB, repo taxrule.SettingsRepository) taxrule.SettingsService {
	return &SettingsServiceImpl{db: db, repo: repo}
}

func employerFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employerID, ok := claims["employer_id"].(string)
	if !ok || employerID == "" {
		return "", fmt.Errorf("employer_id claim is missing or invalid")
	}

	return employerID, nil
}

func (s *SettingsServiceImpl) GetCurrent(ctx context.Context) (taxrule.SettingsResponse, error) {
	employerID, err := employerFromContext(ctx)
	if err != nil {
		return taxrule.SettingsResponse{}, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	settings, err := s.repo.GetCurrent(ctx, employerID)
	if err != nil {
		return taxrule.SettingsResponse{}, err
	}

	return taxrule.ToResponse(settings), nil
}

func (s *SettingsServiceImpl) GetVersion(ctx context.Context, version int) (taxrule.SettingsResponse, error) {
	employerID, err := employerFromContext(ctx)
	if err != nil {
		return taxrule.SettingsResponse{}, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	settings, err := s.repo.GetByVersion(ctx, employerID, version)
	if err != nil {
		return taxrule.SettingsResponse{}, err
	}

	return taxrule.ToResponse(settings), nil
}

func (s *SettingsServiceImpl) Create(ctx context.Context, req taxrule.CreateSettingsRequest) (taxrule.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return taxrule.SettingsResponse{}, err
	}

	employerID, err := employerFromContext(ctx)
	if err != nil {
		return taxrule.SettingsResponse{}, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	created, err := s.repo.Create(ctx, req.ToSettings(employerID))
	if err != nil {
		return taxrule.SettingsResponse{}, err
	}

	return taxrule.ToResponse(created), nil
}
