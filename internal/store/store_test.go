package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/overnightmvp/7-day/internal/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(db)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

var inquiryRowColumns = []string{
	"id", "work_email", "company_name", "contact_name", "phone", "team_size",
	"preferred_date", "alternate_date", "special_requests", "experience_id",
	"experience_title", "estimated_cost", "status", "created_at",
}

func TestCreateInquiry(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	preferred := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO booking_inquiries`)).
		WithArgs("id-1", "sam@acme.com", "Acme", "Sam", sql.NullString{}, 20,
			preferred, sql.NullTime{}, sql.NullString{String: "vegan", Valid: true}, "blue-mountains-retreat",
			"Blue Mountains Corporate Retreat", 1360, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := s.CreateInquiry(ctx, models.Inquiry{
		WorkEmail:       "sam@acme.com",
		CompanyName:     "Acme",
		ContactName:     "Sam",
		TeamSize:        20,
		PreferredDate:   preferred,
		SpecialRequests: "vegan",
		ExperienceID:    "blue-mountains-retreat",
		ExperienceTitle: "Blue Mountains Corporate Retreat",
		EstimatedCost:   1360,
	})
	if err != nil {
		t.Fatalf("CreateInquiry error: %v", err)
	}
	if got.ID != "id-1" || got.Status != models.InquiryStatusPending || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected inquiry: %+v", got)
	}
	expectMet(t, mock)
}

func TestCreateInquiryFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO booking_inquiries`)).
		WillReturnError(errors.New("connection reset"))

	if _, err := s.CreateInquiry(context.Background(), models.Inquiry{}); err == nil {
		t.Fatalf("expected error")
	}
	expectMet(t, mock)
}

func TestListInquiriesFilters(t *testing.T) {
	s, mock := newMockStore(t)

	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	alt := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(inquiryRowColumns).
		AddRow("id-9", "sam@acme.com", "Acme", "Sam", "0400 000 000", 12,
			created.AddDate(0, 1, 0), alt, nil, "bondi-beach-house",
			"Bondi Beach Executive Retreat", 1800, "lost", created)

	mock.ExpectQuery(`FROM booking_inquiries\s+WHERE status = ANY\(\$1\)\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs(pq.Array([]string{"pending", "lost"}), 10).
		WillReturnRows(rows)

	got, err := s.ListInquiries(context.Background(), models.InquiryFilter{
		Statuses: []models.InquiryStatus{models.InquiryStatusPending, models.InquiryStatusLost},
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("ListInquiries error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 inquiry, got %d", len(got))
	}
	if got[0].Phone != "0400 000 000" || got[0].SpecialRequests != "" || got[0].Status != models.InquiryStatusLost {
		t.Fatalf("unexpected inquiry: %+v", got[0])
	}
	if got[0].AlternateDate == nil || !got[0].AlternateDate.Equal(alt) {
		t.Fatalf("expected alternate date %v, got %v", alt, got[0].AlternateDate)
	}
	expectMet(t, mock)
}

func TestListInquiriesUnfiltered(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM booking_inquiries\s+ORDER BY created_at DESC$`).
		WithArgs().
		WillReturnRows(sqlmock.NewRows(inquiryRowColumns))

	got, err := s.ListInquiries(context.Background(), models.InquiryFilter{})
	if err != nil {
		t.Fatalf("ListInquiries error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	expectMet(t, mock)
}

func TestGetInquiryNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_inquiries`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(inquiryRowColumns))

	_, err := s.GetInquiry(context.Background(), "missing")
	if !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestGetInquiryMalformedID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_inquiries`)).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})

	_, err := s.GetInquiry(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestUpdateInquiryStatus(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE booking_inquiries`)).
		WithArgs("id-3", "converted").
		WillReturnRows(sqlmock.NewRows(inquiryRowColumns).
			AddRow("id-3", "sam@acme.com", "Acme", "Sam", nil, 12,
				created, nil, nil, "bondi-beach-house",
				"Bondi Beach Executive Retreat", 1800, "converted", created))

	got, err := s.UpdateInquiryStatus(context.Background(), "id-3", models.InquiryStatusConverted)
	if err != nil {
		t.Fatalf("UpdateInquiryStatus error: %v", err)
	}
	if got.Status != models.InquiryStatusConverted || got.AlternateDate != nil {
		t.Fatalf("unexpected inquiry: %+v", got)
	}
	expectMet(t, mock)
}

func TestInquiryAggregates(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 4).
			AddRow("converted", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(estimated_cost), 0)`)).
		WithArgs(pq.Array([]string{"pending", "contacted"})).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(5440))

	counts, err := s.CountInquiriesByStatus(ctx)
	if err != nil {
		t.Fatalf("CountInquiriesByStatus error: %v", err)
	}
	if counts[models.InquiryStatusPending] != 4 || counts[models.InquiryStatusConverted] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	total, err := s.SumEstimatedCost(ctx, []models.InquiryStatus{models.InquiryStatusPending, models.InquiryStatusContacted})
	if err != nil {
		t.Fatalf("SumEstimatedCost error: %v", err)
	}
	if total != 5440 {
		t.Fatalf("expected 5440, got %d", total)
	}
	expectMet(t, mock)
}

func TestCreateCompanyWithAdmin(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO companies (id, name, admin_email)`)).
		WithArgs("id-1", "Acme", "boss@acme.com").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, company_id, email, role)`)).
		WithArgs("id-2", "id-1", "boss@acme.com", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectCommit()

	company, admin, err := s.CreateCompanyWithAdmin(context.Background(), "Acme", "boss@acme.com")
	if err != nil {
		t.Fatalf("CreateCompanyWithAdmin error: %v", err)
	}
	if company.ID != "id-1" || admin.CompanyID != "id-1" || admin.Role != models.RoleAdmin {
		t.Fatalf("unexpected result: %+v %+v", company, admin)
	}
	if admin.Company == nil || admin.Company.Name != "Acme" {
		t.Fatalf("expected admin to carry company, got %+v", admin.Company)
	}
	expectMet(t, mock)
}

func TestCreateCompanyWithAdminRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO companies`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	_, _, err := s.CreateCompanyWithAdmin(context.Background(), "Acme", "boss@acme.com")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	expectMet(t, mock)
}

func TestCreateCompanyDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO companies`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, _, err := s.CreateCompanyWithAdmin(context.Background(), "Acme", "boss@acme.com")
	if !errors.Is(err, ErrCompanyExists) {
		t.Fatalf("expected ErrCompanyExists, got %v", err)
	}
	expectMet(t, mock)
}

func TestFindCompanyByEmailDomain(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(split_part(admin_email, '@', 2)) = LOWER($1)`)).
		WithArgs("acme.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin_email", "created_at"}).
			AddRow("c-1", "Acme", "boss@acme.com", created))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(split_part(admin_email, '@', 2)) = LOWER($1)`)).
		WithArgs("nowhere.io").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin_email", "created_at"}))

	c, err := s.FindCompanyByEmailDomain(context.Background(), "acme.com")
	if err != nil {
		t.Fatalf("FindCompanyByEmailDomain error: %v", err)
	}
	if c.ID != "c-1" {
		t.Fatalf("expected c-1, got %s", c.ID)
	}

	if _, err := s.FindCompanyByEmailDomain(context.Background(), "nowhere.io"); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestFindCompanyByEmailDomainTreatsWildcardsLiterally(t *testing.T) {
	s, mock := newMockStore(t)

	for _, domain := range []string{"%.com", "acme_com"} {
		mock.ExpectQuery(`split_part\(admin_email, '@', 2\)\) = LOWER\(\$1\)`).
			WithArgs(domain).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin_email", "created_at"}))
	}

	for _, domain := range []string{"%.com", "acme_com"} {
		if _, err := s.FindCompanyByEmailDomain(context.Background(), domain); !errors.Is(err, ErrCompanyNotFound) {
			t.Fatalf("domain %q: expected ErrCompanyNotFound, got %v", domain, err)
		}
	}
	expectMet(t, mock)
}

func TestAddEmployeesIsAtomic(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("id-1", "c-1", "a@acme.com", "employee").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("id-2", "c-1", "b@acme.com", "employee").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := s.AddEmployees(context.Background(), "c-1", []string{"a@acme.com", "b@acme.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	expectMet(t, mock)
}

func TestAddEmployeesUnknownCompany(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "users_company_id_fkey"})
	mock.ExpectRollback()

	_, err := s.AddEmployees(context.Background(), "nope", []string{"a@acme.com"})
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestUserByEmail(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(u.email) = LOWER($1)`)).
		WithArgs("a@acme.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "email", "role", "created_at", "cid", "name", "admin_email", "ccreated"}).
			AddRow("u-1", "c-1", "a@acme.com", "employee", created, "c-1", "Acme", "boss@acme.com", created))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(u.email) = LOWER($1)`)).
		WithArgs("ghost@acme.com").
		WillReturnError(sql.ErrNoRows)

	u, err := s.UserByEmail(context.Background(), "a@acme.com")
	if err != nil {
		t.Fatalf("UserByEmail error: %v", err)
	}
	if u.Role != models.RoleEmployee || u.Company == nil || u.Company.Name != "Acme" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := s.UserByEmail(context.Background(), "ghost@acme.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestBookings(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs("id-1", "u-1", "hunter-valley-estate", start, end, 10, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings b`)).
		WithArgs("", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "experience_id", "start_date", "end_date", "guests", "status", "created_at", "email"}).
			AddRow("id-1", "u-1", "hunter-valley-estate", start, end, 10, "pending", created, "a@acme.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings`)).
		WithArgs("missing", "approved", "").
		WillReturnError(sql.ErrNoRows)

	b, err := s.CreateBooking(ctx, models.Booking{UserID: "u-1", ExperienceID: "hunter-valley-estate", StartDate: start, EndDate: end, Guests: 10})
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	if b.ID != "id-1" || b.Status != models.BookingStatusPending {
		t.Fatalf("unexpected booking: %+v", b)
	}

	list, err := s.ListBookings(ctx, "", models.BookingStatusPending)
	if err != nil {
		t.Fatalf("ListBookings error: %v", err)
	}
	if len(list) != 1 || list[0].UserEmail != "a@acme.com" {
		t.Fatalf("unexpected bookings: %+v", list)
	}

	if _, err := s.UpdateBookingStatus(ctx, "", "missing", models.BookingStatusApproved); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestBookingsScopedToCompany(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`u.company_id::text = $1`)).
		WithArgs("c-1", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "experience_id", "start_date", "end_date", "guests", "status", "created_at", "email"}))
	// A booking made by another company's employee matches no row.
	mock.ExpectQuery(regexp.QuoteMeta(`u.company_id::text = $3`)).
		WithArgs("b-9", "approved", "c-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(`u.company_id::text = $3`)).
		WithArgs("b-1", "approved", "c-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "experience_id", "start_date", "end_date", "guests", "status", "created_at", "email"}).
			AddRow("b-1", "u-2", "hunter-valley-estate", start, start, 4, "approved", created, "sam@acme.com"))

	list, err := s.ListBookings(ctx, "c-1", "")
	if err != nil {
		t.Fatalf("ListBookings error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no bookings, got %+v", list)
	}

	if _, err := s.UpdateBookingStatus(ctx, "c-1", "b-9", models.BookingStatusApproved); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	b, err := s.UpdateBookingStatus(ctx, "c-1", "b-1", models.BookingStatusApproved)
	if err != nil {
		t.Fatalf("UpdateBookingStatus error: %v", err)
	}
	if b.Status != models.BookingStatusApproved || b.UserEmail != "sam@acme.com" {
		t.Fatalf("unexpected booking: %+v", b)
	}
	expectMet(t, mock)
}
