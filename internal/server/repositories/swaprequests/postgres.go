package swaprequests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/swap"
)

const requestColumns = `id, requester_id, receiver_id, requester_skill, receiver_skill, message,
		status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*swap.Request, error) {
	var (
		r      swap.Request
		status string
	)
	if err := row.Scan(&r.ID, &r.RequesterID, &r.ReceiverID, &r.RequesterSkill, &r.ReceiverSkill,
		&r.Message, &status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Status = swap.Status(status)
	return &r, nil
}

func (p *PostgresRepository) Create(ctx context.Context, r *swap.Request) (*swap.Request, error) {
	query :=
		`INSERT INTO swap_requests (id, requester_id, receiver_id, requester_skill, receiver_skill,
		     message, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := p.db.ExecContext(ctx, query,
		r.ID, r.RequesterID, r.ReceiverID, r.RequesterSkill, r.ReceiverSkill,
		r.Message, string(r.Status), r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) getOne(ctx context.Context, query, id string) (*swap.Request, error) {
	r, err := scanRequest(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) GetByID(ctx context.Context, id string) (*swap.Request, error) {
	return p.getOne(ctx, `SELECT `+requestColumns+` FROM swap_requests WHERE id = $1`, id)
}

func (p *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*swap.Request, error) {
	return p.getOne(ctx, `SELECT `+requestColumns+` FROM swap_requests WHERE id = $1 FOR UPDATE`, id)
}

// ListByUser returns every request the user sent or received, newest first.
// A malformed user id has no requests.
func (p *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]swap.Request, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM swap_requests
		 WHERE requester_id = $1 OR receiver_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return []swap.Request{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]swap.Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (p *PostgresRepository) UpdateStatus(ctx context.Context, r *swap.Request) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE swap_requests SET status = $2, updated_at = $3 WHERE id = $1`,
		r.ID, string(r.Status), r.UpdatedAt)
	return checkAffected(res, err)
}

func (p *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM swap_requests WHERE id = $1`, id)
	return checkAffected(res, err)
}

func checkAffected(res sql.Result, err error) error {
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
