package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tricare/tricare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const userCols = `id, email, username, hashed_password, full_name, age, sex, phone, postal_code,
	blood_type, allergies, chronic_conditions, current_medications, emergency_contact,
	is_active, is_verified, reset_token, reset_token_expires, created_at, updated_at, last_login`

func (r *userRepoPG) scanRow(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.FullName, &u.Age, &u.Sex, &u.Phone, &u.PostalCode,
		&u.BloodType, &u.Allergies, &u.ChronicConditions, &u.CurrentMedications, &u.EmergencyContact,
		&u.IsActive, &u.IsVerified, &u.ResetToken, &u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO users (id, email, username, hashed_password, full_name, is_active, is_verified)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Email, u.Username, u.HashedPassword, u.FullName, u.IsActive, u.IsVerified)
	return err
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(username) = lower($1)`, username))
}

func (r *userRepoPG) GetByResetToken(ctx context.Context, token string) (*User, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `
		SELECT `+userCols+` FROM users
		WHERE reset_token = $1 AND reset_token_expires > NOW()`, token))
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE users SET
			email=$2, username=$3, hashed_password=$4, full_name=$5, age=$6, sex=$7, phone=$8, postal_code=$9,
			blood_type=$10, allergies=$11, chronic_conditions=$12, current_medications=$13, emergency_contact=$14,
			is_active=$15, is_verified=$16, reset_token=$17, reset_token_expires=$18, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Email, u.Username, u.HashedPassword, u.FullName, u.Age, u.Sex, u.Phone, u.PostalCode,
		u.BloodType, u.Allergies, u.ChronicConditions, u.CurrentMedications, u.EmergencyContact,
		u.IsActive, u.IsVerified, u.ResetToken, u.ResetTokenExpires)
	return err
}

func (r *userRepoPG) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	return err
}
