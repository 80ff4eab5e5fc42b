package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type taxSettingsRepository struct {
	db *database.DB
}

func NewTaxSettingsRepository(db *database.DB) taxrule.SettingsRepository {
	return &taxSettingsRepository{db: db}
}

const taxSettingsColumns = `
	id, employer_id, version,
	base_hours_per_week, overtime_multiplier, max_regular_hours_per_day,
	working_days_per_week,
	weekly_multiplier, fortnightly_multiplier, monthly_multiplier,
	acc_employee, acc_employer, npf_employee, npf_employer,
	paye_brackets, created_at`

func (r *taxSettingsRepository) GetCurrent(ctx context.Context, employerID string) (taxrule.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + taxSettingsColumns + `
		FROM tax_settings
		WHERE employer_id = $1
		ORDER BY version DESC
		LIMIT 1`

	s, err := scanTaxSettings(q.QueryRow(ctx, query, employerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxrule.Settings{}, taxrule.ErrSettingsNotFound
		}
		return taxrule.Settings{}, fmt.Errorf("failed to get tax settings: %w", err)
	}

	return s, nil
}

func (r *taxSettingsRepository) GetByVersion(ctx context.Context, employerID string, version int) (taxrule.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + taxSettingsColumns + `
		FROM tax_settings
		WHERE employer_id = $1 AND version = $2`

	s, err := scanTaxSettings(q.QueryRow(ctx, query, employerID, version))
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxrule.Settings{}, taxrule.ErrSettingsNotFound
		}
		return taxrule.Settings{}, fmt.Errorf("failed to get tax settings version %d: %w", version, err)
	}

	return s, nil
}

// Create inserts a new settings version; existing rows are never updated.
// The version comes from MAX(version) read in the same statement, which is
// not race-free under read committed: two concurrent creates can read the
// same MAX. The uq_tax_settings_version unique constraint rejects the
// loser, and the insert is retried with a fresh MAX.
func (r *taxSettingsRepository) Create(ctx context.Context, s taxrule.Settings) (taxrule.Settings, error) {
	q := GetQuerier(ctx, r.db)

	brackets, err := json.Marshal(s.PayeBrackets)
	if err != nil {
		return taxrule.Settings{}, fmt.Errorf("failed to encode paye brackets: %w", err)
	}

	query := `
		INSERT INTO tax_settings (
			employer_id, version,
			base_hours_per_week, overtime_multiplier, max_regular_hours_per_day,
			working_days_per_week,
			weekly_multiplier, fortnightly_multiplier, monthly_multiplier,
			acc_employee, acc_employer, npf_employee, npf_employer,
			paye_brackets
		) VALUES (
			$1,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM tax_settings WHERE employer_id = $1),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING` + taxSettingsColumns

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		created, err := scanTaxSettings(q.QueryRow(ctx, query,
			s.EmployerID,
			s.BaseHoursPerWeek, s.OvertimeMultiplier, s.MaxRegularHoursPerDay,
			s.WorkingDaysPerWeek,
			s.PayMultipliers[taxrule.PeriodWeekly],
			s.PayMultipliers[taxrule.PeriodFortnightly],
			s.PayMultipliers[taxrule.PeriodMonthly],
			s.ACC.Employee, s.ACC.Employer, s.NPF.Employee, s.NPF.Employer,
			brackets,
		))
		if err != nil {
			if strings.Contains(err.Error(), "uq_tax_settings_version") {
				lastErr = err
				continue
			}
			return taxrule.Settings{}, fmt.Errorf("failed to create tax settings: %w", err)
		}
		return created, nil
	}

	return taxrule.Settings{}, fmt.Errorf("failed to create tax settings: %w", lastErr)
}

func scanTaxSettings(row pgx.Row) (taxrule.Settings, error) {
	var s taxrule.Settings
	var weekly, fortnightly, monthly decimal.Decimal
	var brackets []byte

	err := row.Scan(
		&s.ID, &s.EmployerID, &s.Version,
		&s.BaseHoursPerWeek, &s.OvertimeMultiplier, &s.MaxRegularHoursPerDay,
		&s.WorkingDaysPerWeek,
		&weekly, &fortnightly, &monthly,
		&s.ACC.Employee, &s.ACC.Employer, &s.NPF.Employee, &s.NPF.Employer,
		&brackets, &s.CreatedAt,
	)
	if err != nil {
		return taxrule.Settings{}, err
	}

	s.PayMultipliers = map[taxrule.PeriodType]decimal.Decimal{
		taxrule.PeriodWeekly:      weekly,
		taxrule.PeriodFortnightly: fortnightly,
		taxrule.PeriodMonthly:     monthly,
	}
	if len(brackets) > 0 {
		if err := json.Unmarshal(brackets, &s.PayeBrackets); err != nil {
			return taxrule.Settings{}, fmt.Errorf("failed to decode paye brackets: %w", err)
		}
	}

	return s, nil
}
