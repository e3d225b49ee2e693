package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, phone, roles, is_verified, is_deleted, last_otp_sent_at, refresh_fingerprint, created_at, updated_at`

func scanUser(row scanner) (domain.User, error) {
	var (
		u       domain.User
		roles   string
		lastOTP sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Phone, &roles, &u.IsVerified, &u.IsDeleted, &lastOTP,
		&u.RefreshFingerprint, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Roles = decodeList[domain.Role](roles)
	u.LastOTPSentAt = mapNullTimePtr(lastOTP)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = ?`, phone))
	return u, mapNotFound(err)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Phone, encodeList(u.Roles), u.IsVerified, u.IsDeleted,
		mapOptionalTime(u.LastOTPSentAt), u.RefreshFingerprint,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapUnique(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	updated := u.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return requireOne(r.db.ExecContext(ctx, `
		UPDATE users
		SET roles = ?, is_verified = ?, is_deleted = ?, last_otp_sent_at = ?,
		    refresh_fingerprint = ?, updated_at = ?
		WHERE id = ?`,
		encodeList(u.Roles), u.IsVerified, u.IsDeleted, mapOptionalTime(u.LastOTPSentAt),
		u.RefreshFingerprint, updated.UTC(), u.ID,
	))
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
