package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danguerrag/go-leads-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, full_name, email, phone, message, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.Date,
	)

	return err
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT id, full_name, email, phone, message, date
		FROM leads
		ORDER BY date, id
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		var lead entity.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FullName,
			&lead.Email,
			&lead.Phone,
			&lead.Message,
			&lead.Date,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, full_name, email, phone, message, date
		FROM leads
		WHERE id = $1
	`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.Message,
		&lead.Date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET full_name = $2, email = $3, phone = $4, message = $5, date = $6
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.Date,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}
