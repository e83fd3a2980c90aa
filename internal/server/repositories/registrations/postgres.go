package registrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/resumebook/internal/dbx"
	"github.com/dmitrijs2005/resumebook/internal/server/models"
)

// PostgresRepository implements registration storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Filter returns the registrations matching every set field of f, ordered
// by name and user ID.
func (r *PostgresRepository) Filter(ctx context.Context, f models.RegistrationFilter) ([]*models.Registration, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.HasResume != nil {
		add("has_resume = $%d", *f.HasResume)
	}
	if f.Major != "" {
		add("major = $%d", f.Major)
	}
	if f.Graduation != "" {
		add("graduation = $%d", f.Graduation)
	}
	if f.University != "" {
		add("university = $%d", f.University)
	}

	query := `SELECT user_id, name, major, graduation, university, dietary_restrictions, has_resume, resume_key, updated_at
		FROM registrations`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY name, user_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select registrations: %w", err)
	}
	defer rows.Close()

	var result []*models.Registration
	for rows.Next() {
		var item models.Registration
		if err := rows.Scan(&item.UserID, &item.Name, &item.Major, &item.Graduation, &item.University,
			&item.DietaryRestrictions, &item.HasResume, &item.ResumeKey, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ResumeKeys looks up the stored résumé of each user. Users without one are
// absent from the result.
func (r *PostgresRepository) ResumeKeys(ctx context.Context, userIDs []string) (map[string]*models.ResumeObject, error) {
	result := make(map[string]*models.ResumeObject, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(userIDs))
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT user_id, name, resume_key FROM registrations
		WHERE has_resume AND resume_key <> '' AND user_id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select resume keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ResumeObject
		if err := rows.Scan(&item.UserID, &item.Name, &item.Key); err != nil {
			return nil, err
		}
		result[item.UserID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert inserts a registration or replaces the stored one with the same
// user ID.
func (r *PostgresRepository) Upsert(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (user_id, name, major, graduation, university, dietary_restrictions, has_resume, resume_key, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			major = EXCLUDED.major,
			graduation = EXCLUDED.graduation,
			university = EXCLUDED.university,
			dietary_restrictions = EXCLUDED.dietary_restrictions,
			has_resume = EXCLUDED.has_resume,
			resume_key = EXCLUDED.resume_key,
			updated_at = EXCLUDED.updated_at
	`
	res, err := r.db.ExecContext(ctx, query,
		reg.UserID, reg.Name, reg.Major, reg.Graduation, reg.University, reg.DietaryRestrictions, reg.HasResume, reg.ResumeKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
