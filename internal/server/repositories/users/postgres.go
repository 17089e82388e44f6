package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

const userColumns = `id, name, email, location, profile_photo, skills_offered, skills_wanted,
		availability, is_public, rating, total_ratings, status, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u       models.User
		offered dbx.StringList
		wanted  dbx.StringList
		status  string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Location, &u.ProfilePhoto, &offered, &wanted,
		&u.Availability, &u.IsPublic, &u.Rating, &u.TotalRatings, &status, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.SkillsOffered = offered
	u.SkillsWanted = wanted
	u.Status = models.UserStatus(status)
	return &u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, name, email, location, profile_photo, skills_offered, skills_wanted,
		     availability, is_public, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.Location, user.ProfilePhoto,
		dbx.StringList(user.SkillsOffered), dbx.StringList(user.SkillsWanted),
		user.Availability, user.IsPublic, string(user.Status)).Scan(&user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// Search matches skill against every offered and wanted skill and location
// against the location, both as case-insensitive substrings.
func (r *PostgresRepository) Search(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE status = 'active'
		  AND (NOT $1 OR is_public)
		  AND ($2 = '' OR EXISTS (
		        SELECT 1 FROM jsonb_array_elements_text(skills_offered || skills_wanted) AS s(skill)
		        WHERE s.skill ILIKE $3))
		  AND ($4 = '' OR location ILIKE $5)
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query,
		filter.PublicOnly,
		filter.Skill, dbx.ContainsPattern(filter.Skill),
		filter.Location, dbx.ContainsPattern(filter.Location))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query := `UPDATE users
		SET name = $2, location = $3, profile_photo = $4, skills_offered = $5, skills_wanted = $6,
		    availability = $7, is_public = $8
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Location, user.ProfilePhoto,
		dbx.StringList(user.SkillsOffered), dbx.StringList(user.SkillsWanted),
		user.Availability, user.IsPublic)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

// Lock takes a row lock on the user; it is released when the transaction
// the repository runs in ends.
func (r *PostgresRepository) Lock(ctx context.Context, id string) error {
	var locked string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetRating(ctx context.Context, id string, summary models.RatingSummary) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET rating = $2, total_ratings = $3 WHERE id = $1`,
		id, summary.Average, summary.Count)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// SearchSkills returns the distinct offered skills of public active users
// containing query, sorted.
func (r *PostgresRepository) SearchSkills(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT s.skill
		 FROM users u, jsonb_array_elements_text(u.skills_offered) AS s(skill)
		 WHERE u.is_public AND u.status = 'active' AND s.skill ILIKE $1
		 ORDER BY s.skill`,
		dbx.ContainsPattern(query))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	skills := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return skills, nil
}
