package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/overnightmvp/7-day/internal/models"
)

const inquiryColumns = `id, work_email, company_name, contact_name, phone, team_size,
		preferred_date, alternate_date, special_requests, experience_id,
		experience_title, estimated_cost, status, created_at`

// CreateInquiry inserts a booking inquiry and returns it with its id and
// creation time filled in.
func (s *Store) CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	inq.ID = s.newID()
	if inq.Status == "" {
		inq.Status = models.InquiryStatusPending
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO booking_inquiries (id, work_email, company_name, contact_name, phone, team_size,
			preferred_date, alternate_date, special_requests, experience_id,
			experience_title, estimated_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`,
		inq.ID, inq.WorkEmail, inq.CompanyName, inq.ContactName, nullString(inq.Phone), inq.TeamSize,
		inq.PreferredDate, nullTime(inq.AlternateDate), nullString(inq.SpecialRequests), inq.ExperienceID,
		inq.ExperienceTitle, inq.EstimatedCost, string(inq.Status),
	).Scan(&inq.CreatedAt)
	if err != nil {
		return models.Inquiry{}, fmt.Errorf("insert inquiry: %w", err)
	}
	return inq, nil
}

// ListInquiries returns inquiries newest first, optionally limited to some statuses.
func (s *Store) ListInquiries(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, error) {
	var (
		where []string
		args  []any
	)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	query := "SELECT " + inquiryColumns + "\n\t\tFROM booking_inquiries"
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf("\n\t\tLIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []models.Inquiry{}
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return inquiries, nil
}

// GetInquiry loads one inquiry by id.
func (s *Store) GetInquiry(ctx context.Context, id string) (models.Inquiry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+inquiryColumns+`
		FROM booking_inquiries
		WHERE id = $1
	`, id)
	inq, err := scanInquiry(row)
	if err != nil {
		if isMissing(err) {
			return models.Inquiry{}, ErrInquiryNotFound
		}
		return models.Inquiry{}, fmt.Errorf("select inquiry: %w", err)
	}
	return inq, nil
}

// UpdateInquiryStatus sets the status of an inquiry and returns the updated row.
func (s *Store) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) (models.Inquiry, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE booking_inquiries
		SET status = $2
		WHERE id = $1
		RETURNING `+inquiryColumns+`
	`, id, string(status))
	inq, err := scanInquiry(row)
	if err != nil {
		if isMissing(err) {
			return models.Inquiry{}, ErrInquiryNotFound
		}
		return models.Inquiry{}, fmt.Errorf("update inquiry status: %w", err)
	}
	return inq, nil
}

// CountInquiriesByStatus returns the number of inquiries in each status.
// Statuses with no inquiries are absent from the map.
func (s *Store) CountInquiriesByStatus(ctx context.Context) (map[models.InquiryStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM booking_inquiries
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count inquiries: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.InquiryStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan inquiry count: %w", err)
		}
		counts[models.InquiryStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiry counts: %w", err)
	}
	return counts, nil
}

// SumEstimatedCost totals the estimated cost of inquiries in the given statuses.
func (s *Store) SumEstimatedCost(ctx context.Context, statuses []models.InquiryStatus) (int, error) {
	values := make([]string, len(statuses))
	for i, st := range statuses {
		values[i] = string(st)
	}

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(estimated_cost), 0)
		FROM booking_inquiries
		WHERE status = ANY($1)
	`, pq.Array(values)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum estimated cost: %w", err)
	}
	return total, nil
}

func scanInquiry(row scanner) (models.Inquiry, error) {
	var (
		inq             models.Inquiry
		phone           sql.NullString
		alternateDate   sql.NullTime
		specialRequests sql.NullString
		status          string
	)
	if err := row.Scan(
		&inq.ID, &inq.WorkEmail, &inq.CompanyName, &inq.ContactName, &phone, &inq.TeamSize,
		&inq.PreferredDate, &alternateDate, &specialRequests, &inq.ExperienceID,
		&inq.ExperienceTitle, &inq.EstimatedCost, &status, &inq.CreatedAt,
	); err != nil {
		return models.Inquiry{}, err
	}
	inq.Phone = phone.String
	inq.SpecialRequests = specialRequests.String
	if alternateDate.Valid {
		t := alternateDate.Time
		inq.AlternateDate = &t
	}
	inq.Status = models.InquiryStatus(status)
	return inq, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
