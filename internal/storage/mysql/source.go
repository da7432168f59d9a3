package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"reviewkit/internal/domain"
)

// Source reads businesses and their non-deleted reviews out of the review
// system's MySQL schema. This adapter is read-only; review ingestion is owned
// elsewhere.
type Source struct{ db *sql.DB }

func New(db *sql.DB) *Source { return &Source{db: db} }

func (s *Source) GetBusiness(ctx context.Context, id string) (domain.Business, error) {
	row := s.db.QueryRowContext(ctx, getBusinessSQL, id)
	b := domain.Business{ID: id}
	var name sql.NullString
	if err := row.Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return domain.Business{}, domain.ErrNotFound
		}
		return domain.Business{}, err
	}
	if name.Valid {
		b.Name = name.String
	}
	return b, nil
}

// FetchReviews returns up to max non-deleted reviews, newest first.
func (s *Source) FetchReviews(ctx context.Context, id string, max int) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, listReviewsSQL, id, max)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var (
			rv        domain.Review
			reviewer  sql.NullString
			rating    sql.NullFloat64
			text      sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&rv.ID, &reviewer, &rating, &text, &createdAt); err != nil {
			return nil, err
		}
		if reviewer.Valid {
			rv.Reviewer = reviewer.String
		}
		if rating.Valid {
			rv.Rating = rating.Float64
		}
		if text.Valid {
			rv.Text = text.String
		}
		if createdAt.Valid {
			rv.CreatedAt = createdAt.Time
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
