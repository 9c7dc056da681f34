package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stridecoach/stride/internal/db"
	"github.com/stridecoach/stride/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) CreateVersion(ctx context.Context, pv *domain.PlanVersion) error {
	query := `INSERT INTO plan_versions (id, athlete_id, version, macro_plan, weeks, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		pv.ID,
		pv.AthleteID,
		pv.Version,
		rawToValue(pv.MacroPlan),
		string(pv.Weeks),
		pv.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan version: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.PlanVersion, error) {
	query := `SELECT id, athlete_id, version, macro_plan, weeks, created_at
		FROM plan_versions WHERE id = ?`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetLatest(ctx context.Context, athleteID string) (*domain.PlanVersion, error) {
	query := `SELECT id, athlete_id, version, macro_plan, weeks, created_at
		FROM plan_versions WHERE athlete_id = ? ORDER BY version DESC LIMIT 1`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, athleteID))
}

func (r *SQLitePlanRepo) GetVersion(ctx context.Context, athleteID string, version int) (*domain.PlanVersion, error) {
	query := `SELECT id, athlete_id, version, macro_plan, weeks, created_at
		FROM plan_versions WHERE athlete_id = ? AND version = ?`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, athleteID, version))
}

func (r *SQLitePlanRepo) ListVersions(ctx context.Context, athleteID string) ([]*domain.PlanVersion, error) {
	query := `SELECT id, athlete_id, version, macro_plan, weeks, created_at
		FROM plan_versions WHERE athlete_id = ? ORDER BY version`
	rows, err := r.db.QueryContext(ctx, query, athleteID)
	if err != nil {
		return nil, fmt.Errorf("listing plan versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.PlanVersion
	for rows.Next() {
		pv, err := scanVersionRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		versions = append(versions, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan versions: %w", err)
	}
	return versions, nil
}

func (r *SQLitePlanRepo) NextVersion(ctx context.Context, athleteID string) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) + 1 FROM plan_versions WHERE athlete_id = ?`
	var next int
	if err := r.db.QueryRowContext(ctx, query, athleteID).Scan(&next); err != nil {
		return 0, fmt.Errorf("computing next plan version: %w", err)
	}
	return next, nil
}

// scanVersion scans a single plan version from a *sql.Row.
func (r *SQLitePlanRepo) scanVersion(row *sql.Row) (*domain.PlanVersion, error) {
	pv, err := scanVersionRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan version: %w", ErrNotFound)
	}
	return pv, err
}

// scanVersionRow scans one plan version using the given scan function, which
// may come from either a *sql.Row or *sql.Rows.
func scanVersionRow(scan func(dest ...any) error) (*domain.PlanVersion, error) {
	var pv domain.PlanVersion
	var macroPlan sql.NullString
	var weeks, createdAtStr string

	err := scan(&pv.ID, &pv.AthleteID, &pv.Version, &macroPlan, &weeks, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan version: %w", err)
	}

	if macroPlan.Valid && macroPlan.String != "" {
		pv.MacroPlan = json.RawMessage(macroPlan.String)
	}
	pv.Weeks = json.RawMessage(weeks)
	pv.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &pv, nil
}
