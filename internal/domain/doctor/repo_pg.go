package doctor

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

type favoriteRepoPG struct{ pool *pgxpool.Pool }

func NewFavoriteRepoPG(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepoPG{pool: pool}
}

func (r *favoriteRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const favoriteCols = `id, user_id, doctor_id, doctor_name, specialization, clinic_name,
	phone, address, notes, last_visit, next_appointment, created_at, updated_at`

func (r *favoriteRepoPG) scanRow(row pgx.Row) (*Favorite, error) {
	var f Favorite
	err := row.Scan(&f.ID, &f.UserID, &f.DoctorID, &f.DoctorName, &f.Specialization, &f.ClinicName,
		&f.Phone, &f.Address, &f.Notes, &f.LastVisit, &f.NextAppointment, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFavoriteNotFound
	}
	return &f, err
}

func (r *favoriteRepoPG) Create(ctx context.Context, fav *Favorite) error {
	fav.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO favorite_doctors (id, user_id, doctor_id, doctor_name, specialization,
			clinic_name, phone, address, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		fav.ID, fav.UserID, fav.DoctorID, fav.DoctorName, fav.Specialization,
		fav.ClinicName, fav.Phone, fav.Address, fav.Notes)
	return err
}

func (r *favoriteRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+favoriteCols+` FROM favorite_doctors
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.DoctorID, &f.DoctorName, &f.Specialization, &f.ClinicName,
			&f.Phone, &f.Address, &f.Notes, &f.LastVisit, &f.NextAppointment, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *favoriteRepoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*Favorite, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+favoriteCols+` FROM favorite_doctors
		WHERE id = $1 AND user_id = $2`, id, userID)
	return r.scanRow(row)
}

func (r *favoriteRepoPG) GetByDoctorID(ctx context.Context, userID uuid.UUID, doctorID string) (*Favorite, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+favoriteCols+` FROM favorite_doctors
		WHERE user_id = $1 AND doctor_id = $2`, userID, doctorID)
	return r.scanRow(row)
}

func (r *favoriteRepoPG) Update(ctx context.Context, fav *Favorite) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE favorite_doctors SET notes = $1, last_visit = $2, next_appointment = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5`,
		fav.Notes, fav.LastVisit, fav.NextAppointment, fav.ID, fav.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM favorite_doctors WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepoPG) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM favorite_doctors WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
