package history

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

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// --- report history ---

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewReportRepoPG(pool *pgxpool.Pool) ReportRepository {
	return &reportRepoPG{pool: pool}
}

const reportCols = `id, user_id, file_name, summary, key_findings, next_steps, recommended_specialist, created_at`

func scanReport(row pgx.Row) (*ReportRecord, error) {
	var r ReportRecord
	err := row.Scan(&r.ID, &r.UserID, &r.FileName, &r.Summary, &r.KeyFindings, &r.NextSteps, &r.RecommendedSpecialist, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &r, err
}

func (r *reportRepoPG) Create(ctx context.Context, rec *ReportRecord) error {
	rec.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO report_history (id, user_id, file_name, summary, key_findings, next_steps, recommended_specialist)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.UserID, rec.FileName, rec.Summary, rec.KeyFindings, rec.NextSteps, rec.RecommendedSpecialist)
	return err
}

func (r *reportRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ReportRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+reportCols+` FROM report_history
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []ReportRecord{}
	for rows.Next() {
		var rec ReportRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FileName, &rec.Summary, &rec.KeyFindings, &rec.NextSteps, &rec.RecommendedSpecialist, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *reportRepoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*ReportRecord, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT `+reportCols+` FROM report_history WHERE id = $1 AND user_id = $2`, id, userID)
	return scanReport(row)
}

func (r *reportRepoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		DELETE FROM report_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reportRepoPG) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM report_history WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// --- symptom history ---

type symptomRepoPG struct{ pool *pgxpool.Pool }

func NewSymptomRepoPG(pool *pgxpool.Pool) SymptomRepository {
	return &symptomRepoPG{pool: pool}
}

const symptomCols = `id, user_id, symptoms, duration, age, sex, extracted_symptoms,
	urgency_level, specialist_recommendation, reasoning, red_flags, created_at`

func scanSymptom(row pgx.Row) (*SymptomRecord, error) {
	var s SymptomRecord
	err := row.Scan(&s.ID, &s.UserID, &s.Symptoms, &s.Duration, &s.Age, &s.Sex, &s.ExtractedSymptoms,
		&s.UrgencyLevel, &s.RecommendedSpecialist, &s.Reasoning, &s.RedFlags, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &s, err
}

func (r *symptomRepoPG) Create(ctx context.Context, rec *SymptomRecord) error {
	rec.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO symptom_history (id, user_id, symptoms, duration, age, sex, extracted_symptoms,
			urgency_level, specialist_recommendation, reasoning, red_flags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID, rec.UserID, rec.Symptoms, rec.Duration, rec.Age, rec.Sex, rec.ExtractedSymptoms,
		rec.UrgencyLevel, rec.RecommendedSpecialist, rec.Reasoning, rec.RedFlags)
	return err
}

func (r *symptomRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SymptomRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+symptomCols+` FROM symptom_history
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []SymptomRecord{}
	for rows.Next() {
		var s SymptomRecord
		if err := rows.Scan(&s.ID, &s.UserID, &s.Symptoms, &s.Duration, &s.Age, &s.Sex, &s.ExtractedSymptoms,
			&s.UrgencyLevel, &s.RecommendedSpecialist, &s.Reasoning, &s.RedFlags, &s.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

func (r *symptomRepoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*SymptomRecord, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT `+symptomCols+` FROM symptom_history WHERE id = $1 AND user_id = $2`, id, userID)
	return scanSymptom(row)
}

func (r *symptomRepoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		DELETE FROM symptom_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *symptomRepoPG) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM symptom_history WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// --- imaging history ---

type imagingRepoPG struct{ pool *pgxpool.Pool }

func NewImagingRepoPG(pool *pgxpool.Pool) ImagingRepository {
	return &imagingRepoPG{pool: pool}
}

const imagingCols = `id, user_id, file_name, file_type, body_part, prediction, confidence,
	explanation, recommendations, model_used, created_at`

func scanImaging(row pgx.Row) (*ImagingRecord, error) {
	var im ImagingRecord
	err := row.Scan(&im.ID, &im.UserID, &im.FileName, &im.ImageType, &im.BodyPart, &im.Prediction, &im.Confidence,
		&im.Explanation, &im.Recommendations, &im.ModelUsed, &im.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &im, err
}

func (r *imagingRepoPG) Create(ctx context.Context, rec *ImagingRecord) error {
	rec.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO imaging_history (id, user_id, file_name, file_type, body_part, prediction, confidence,
			explanation, recommendations, model_used)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.UserID, rec.FileName, rec.ImageType, rec.BodyPart, rec.Prediction, rec.Confidence,
		rec.Explanation, rec.Recommendations, rec.ModelUsed)
	return err
}

func (r *imagingRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ImagingRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+imagingCols+` FROM imaging_history
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []ImagingRecord{}
	for rows.Next() {
		var im ImagingRecord
		if err := rows.Scan(&im.ID, &im.UserID, &im.FileName, &im.ImageType, &im.BodyPart, &im.Prediction, &im.Confidence,
			&im.Explanation, &im.Recommendations, &im.ModelUsed, &im.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, im)
	}
	return records, rows.Err()
}

func (r *imagingRepoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*ImagingRecord, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT `+imagingCols+` FROM imaging_history WHERE id = $1 AND user_id = $2`, id, userID)
	return scanImaging(row)
}

func (r *imagingRepoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		DELETE FROM imaging_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *imagingRepoPG) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM imaging_history WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
