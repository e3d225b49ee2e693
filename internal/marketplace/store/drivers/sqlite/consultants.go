package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
)

type consultantsRepo struct {
	db dbtx
}

const consultantColumns = `id, owner_id, name, phone, designation, experience, money, money_type,
	expertise, certifications, languages, image, id_proof, address, location, created_at, updated_at`

func scanConsultant(row scanner) (domain.Consultant, error) {
	var (
		c         domain.Consultant
		owner     sql.NullString
		languages string
	)
	err := row.Scan(&c.ID, &owner, &c.Name, &c.Phone, &c.Designation, &c.Experience, &c.Money,
		&c.MoneyType, &c.Expertise, &c.Certifications, &languages, &c.Image, &c.IDProof,
		&c.Address, &c.Location, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Consultant{}, err
	}
	c.Owner = mapNullString(owner)
	c.Languages = decodeList[string](languages)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *consultantsRepo) CreateConsultant(ctx context.Context, c domain.Consultant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consultants (`+consultantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, mapStringNull(c.Owner), c.Name, c.Phone, c.Designation, c.Experience, c.Money,
		c.MoneyType, c.Expertise, c.Certifications, encodeList(c.Languages), c.Image, c.IDProof,
		c.Address, c.Location, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapUnique(err)
}

func (r *consultantsRepo) GetConsultant(ctx context.Context, id string) (domain.Consultant, error) {
	c, err := scanConsultant(r.db.QueryRowContext(ctx,
		`SELECT `+consultantColumns+` FROM consultants WHERE id = ?`, id))
	return c, mapNotFound(err)
}

func (r *consultantsRepo) ListConsultants(ctx context.Context, location string) ([]domain.Consultant, error) {
	q := `SELECT ` + consultantColumns + ` FROM consultants`
	var args []any
	if location = strings.TrimSpace(location); location != "" {
		q += ` WHERE instr(lower(location), lower(?)) > 0`
		args = append(args, location)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Consultant{}
	for rows.Next() {
		c, err := scanConsultant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *consultantsRepo) UpdateConsultant(ctx context.Context, c domain.Consultant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE consultants SET
			name = ?, phone = ?, designation = ?, experience = ?, money = ?, money_type = ?,
			expertise = ?, certifications = ?, languages = ?, image = ?, id_proof = ?,
			address = ?, location = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Phone, c.Designation, c.Experience, c.Money, c.MoneyType,
		c.Expertise, c.Certifications, encodeList(c.Languages), c.Image, c.IDProof,
		c.Address, c.Location, c.UpdatedAt.UTC(), c.ID,
	)
	if err != nil {
		return mapUnique(err)
	}
	return requireOne(res, nil)
}

func (r *consultantsRepo) DeleteConsultant(ctx context.Context, id string) error {
	return requireOne(r.db.ExecContext(ctx, `DELETE FROM consultants WHERE id = ?`, id))
}
