package sqlite

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
)

type propertiesRepo struct {
	db dbtx
}

const propertyColumns = `id, owner_id, title, description, property_type, listing_type, bedrooms,
	posted_by, price, negotiable, deposit, maintenance,
	address_line1, address_line2, landmark, locality, city, state, country, pincode,
	carpet_area, built_up_area, furnishing, facing, amenities, images, videos,
	status, is_approved, approved_by, approval_date, views_count,
	seller_name, seller_phone, seller_email, created_at, updated_at`

func scanProperty(row scanner) (domain.Property, error) {
	var (
		p                         domain.Property
		owner                     sql.NullString
		amenities, images, videos string
		approvalDate              sql.NullTime
	)
	err := row.Scan(
		&p.ID, &owner, &p.Title, &p.Description, &p.PropertyType, &p.ListingType, &p.Bedrooms,
		&p.PostedBy, &p.Price, &p.Negotiable, &p.Deposit, &p.Maintenance,
		&p.Address.AddressLine1, &p.Address.AddressLine2, &p.Address.Landmark, &p.Address.Locality,
		&p.Address.City, &p.Address.State, &p.Address.Country, &p.Address.Pincode,
		&p.CarpetArea, &p.BuiltUpArea, &p.Furnishing, &p.Facing, &amenities, &images, &videos,
		&p.Status, &p.IsApproved, &p.ApprovedBy, &approvalDate, &p.ViewsCount,
		&p.SellerName, &p.SellerPhone, &p.SellerEmail, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}
	p.Owner = mapNullString(owner)
	p.Amenities = decodeList[string](amenities)
	p.Images = decodeList[string](images)
	p.Videos = decodeList[string](videos)
	p.ApprovalDate = mapNullTimePtr(approvalDate)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func propertyArgs(p domain.Property) []any {
	return []any{
		p.ID, mapStringNull(p.Owner), p.Title, p.Description, p.PropertyType, p.ListingType, p.Bedrooms,
		p.PostedBy, p.Price, p.Negotiable, p.Deposit, p.Maintenance,
		p.Address.AddressLine1, p.Address.AddressLine2, p.Address.Landmark, p.Address.Locality,
		p.Address.City, p.Address.State, p.Address.Country, p.Address.Pincode,
		p.CarpetArea, p.BuiltUpArea, p.Furnishing, p.Facing,
		encodeList(p.Amenities), encodeList(p.Images), encodeList(p.Videos),
		p.Status, p.IsApproved, p.ApprovedBy, mapOptionalTime(p.ApprovalDate), p.ViewsCount,
		p.SellerName, p.SellerPhone, p.SellerEmail, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	}
}

func (r *propertiesRepo) CreateProperty(ctx context.Context, p domain.Property) error {
	args := propertyArgs(p)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO properties (`+propertyColumns+`) VALUES (`+placeholders(len(args))+`)`,
		args...)
	return mapUnique(err)
}

func (r *propertiesRepo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id))
	return p, mapNotFound(err)
}

func (r *propertiesRepo) FindDuplicate(ctx context.Context, k domain.DuplicateKey) (domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, `
		SELECT `+propertyColumns+` FROM properties
		WHERE owner_id = ? AND title = ? AND property_type = ? AND address_line1 = ?
		  AND city = ? AND bedrooms = ? AND price = ?
		ORDER BY created_at
		LIMIT 1`,
		k.Owner, k.Title, k.PropertyType, k.AddressLine1, k.City, k.Bedrooms, k.Price))
	return p, mapNotFound(err)
}

func (r *propertiesRepo) ListProperties(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	var (
		where []string
		args  []any
	)
	if f.City != "" {
		where = append(where, `lower(city) = lower(?)`)
		args = append(args, f.City)
	}
	if f.ListingType != "" {
		where = append(where, `listing_type = ?`)
		args = append(args, f.ListingType)
	}
	if f.Approved != nil {
		where = append(where, `is_approved = ?`)
		args = append(args, *f.Approved)
	}
	if f.Owner != "" {
		where = append(where, `owner_id = ?`)
		args = append(args, f.Owner)
	}

	q := `SELECT ` + propertyColumns + ` FROM properties`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertiesRepo) UpdateProperty(ctx context.Context, p domain.Property) error {
	// Reuse the insert argument order, minus id/owner/created_at, plus id.
	args := propertyArgs(p)
	set := append(slices.Clone(args[2:len(args)-2]), p.UpdatedAt.UTC(), p.ID)

	return requireOne(r.db.ExecContext(ctx, `
		UPDATE properties SET
			title = ?, description = ?, property_type = ?, listing_type = ?, bedrooms = ?,
			posted_by = ?, price = ?, negotiable = ?, deposit = ?, maintenance = ?,
			address_line1 = ?, address_line2 = ?, landmark = ?, locality = ?, city = ?,
			state = ?, country = ?, pincode = ?,
			carpet_area = ?, built_up_area = ?, furnishing = ?, facing = ?,
			amenities = ?, images = ?, videos = ?,
			status = ?, is_approved = ?, approved_by = ?, approval_date = ?, views_count = ?,
			seller_name = ?, seller_phone = ?, seller_email = ?,
			updated_at = ?
		WHERE id = ?`, set...))
}

func (r *propertiesRepo) IncrementViews(ctx context.Context, id string) error {
	return requireOne(r.db.ExecContext(ctx,
		`UPDATE properties SET views_count = views_count + 1 WHERE id = ?`, id))
}

func (r *propertiesRepo) DeleteProperty(ctx context.Context, id string) error {
	return requireOne(r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id))
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
