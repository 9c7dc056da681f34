package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stridecoach/stride/internal/db"
	"github.com/stridecoach/stride/internal/domain"
)

// SQLiteAthleteRepo implements AthleteRepo using a SQLite database.
type SQLiteAthleteRepo struct {
	db db.DBTX
}

// NewSQLiteAthleteRepo creates a new SQLiteAthleteRepo.
func NewSQLiteAthleteRepo(conn db.DBTX) *SQLiteAthleteRepo {
	return &SQLiteAthleteRepo{db: conn}
}

func (r *SQLiteAthleteRepo) Create(ctx context.Context, a *domain.Athlete) error {
	query := `INSERT INTO athletes (id, email, chat_id, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Email,
		a.ChatID,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting athlete: %w", err)
	}
	return nil
}

func (r *SQLiteAthleteRepo) GetByID(ctx context.Context, id string) (*domain.Athlete, error) {
	query := `SELECT id, email, chat_id, created_at FROM athletes WHERE id = ?`
	return r.scanAthlete(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteAthleteRepo) GetByEmail(ctx context.Context, email string) (*domain.Athlete, error) {
	query := `SELECT id, email, chat_id, created_at FROM athletes WHERE email = ?`
	return r.scanAthlete(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteAthleteRepo) GetByChatID(ctx context.Context, chatID string) (*domain.Athlete, error) {
	query := `SELECT id, email, chat_id, created_at FROM athletes WHERE chat_id = ? AND chat_id != ''`
	return r.scanAthlete(r.db.QueryRowContext(ctx, query, chatID))
}

func (r *SQLiteAthleteRepo) List(ctx context.Context) ([]*domain.Athlete, error) {
	query := `SELECT id, email, chat_id, created_at FROM athletes ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing athletes: %w", err)
	}
	defer rows.Close()

	var athletes []*domain.Athlete
	for rows.Next() {
		var a domain.Athlete
		var createdAtStr string
		if err := rows.Scan(&a.ID, &a.Email, &a.ChatID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning athlete row: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		athletes = append(athletes, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating athletes: %w", err)
	}
	return athletes, nil
}

func (r *SQLiteAthleteRepo) SetChatID(ctx context.Context, id, chatID string) error {
	query := `UPDATE athletes SET chat_id = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, chatID, id)
	if err != nil {
		return fmt.Errorf("updating athlete chat id: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("athlete: %w", ErrNotFound)
	}
	return nil
}

// scanAthlete scans a single athlete from a *sql.Row.
func (r *SQLiteAthleteRepo) scanAthlete(row *sql.Row) (*domain.Athlete, error) {
	var a domain.Athlete
	var createdAtStr string

	err := row.Scan(&a.ID, &a.Email, &a.ChatID, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("athlete: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning athlete: %w", err)
	}

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}
