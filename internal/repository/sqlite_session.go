package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stridecoach/stride/internal/db"
	"github.com/stridecoach/stride/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.SessionRecord) error {
	query := `INSERT INTO session_records (id, plan_id, date, session_type, status,
		skip_reason, rpe, cue_feedback, notes, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.PlanID,
		s.Date.Format(dateLayout),
		s.SessionType,
		string(s.Status),
		s.SkipReason,
		s.RPE,
		s.CueFeedback,
		s.Notes,
		nullableTimeToString(s.CompletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	query := `SELECT id, plan_id, date, session_type, status, skip_reason, rpe, cue_feedback, notes, completed_at
		FROM session_records WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.SessionRecord
	var dateStr, status string
	var completedAt sql.NullString

	err := row.Scan(&s.ID, &s.PlanID, &dateStr, &s.SessionType, &status,
		&s.SkipReason, &s.RPE, &s.CueFeedback, &s.Notes, &completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session record: %w", err)
	}
	if err := populateSession(&s, dateStr, status, completedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.SessionRecord) error {
	query := `UPDATE session_records SET status = ?, skip_reason = ?, rpe = ?,
		cue_feedback = ?, notes = ?, completed_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		s.SkipReason,
		s.RPE,
		s.CueFeedback,
		s.Notes,
		nullableTimeToString(s.CompletedAt, time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session record: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListByPlan(ctx context.Context, planID string) ([]domain.SessionRecord, error) {
	query := `SELECT id, plan_id, date, session_type, status, skip_reason, rpe, cue_feedback, notes, completed_at
		FROM session_records WHERE plan_id = ? ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by plan: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListByAthleteDateRange(ctx context.Context, athleteID string, from, to time.Time) ([]domain.SessionRecord, error) {
	query := `SELECT s.id, s.plan_id, s.date, s.session_type, s.status, s.skip_reason, s.rpe, s.cue_feedback, s.notes, s.completed_at
		FROM session_records s
		JOIN plan_versions p ON s.plan_id = p.id
		WHERE p.athlete_id = ?
		  AND s.date >= ? AND s.date <= ?
		ORDER BY s.date, s.id`
	rows, err := r.db.QueryContext(ctx, query,
		athleteID,
		from.Format(dateLayout),
		to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by athlete and date range: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// scanSessions scans multiple session records from *sql.Rows.
func scanSessions(rows *sql.Rows) ([]domain.SessionRecord, error) {
	var sessions []domain.SessionRecord
	for rows.Next() {
		var s domain.SessionRecord
		var dateStr, status string
		var completedAt sql.NullString

		err := rows.Scan(&s.ID, &s.PlanID, &dateStr, &s.SessionType, &status,
			&s.SkipReason, &s.RPE, &s.CueFeedback, &s.Notes, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if err := populateSession(&s, dateStr, status, completedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a SessionRecord after scanning raw strings.
func populateSession(s *domain.SessionRecord, dateStr, status string, completedAt sql.NullString) error {
	var err error
	s.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return fmt.Errorf("parsing session date: %w", err)
	}
	s.Status = domain.SessionStatus(status)
	s.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	return nil
}
