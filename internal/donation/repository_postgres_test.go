package donation

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func requestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"requestId", "reference", "userId", "requestType", "bloodType", "region", "province", "municipality", "createdAt", "updatedAt"})
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM donation_requests").WithArgs(7).WillReturnRows(requestRows())

	if _, err := repo.GetByID(7); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := requestRows().
		AddRow(1, "ref-1", 9, "donating", "A+", "R1", "P1", "M1", "2026-08-01T00:00:00Z", "2026-08-01T00:00:00Z").
		AddRow(2, "ref-2", 9, "receiving", "O-", "R1", "P1", "M1", "2026-08-02T00:00:00Z", "2026-08-02T00:00:00Z")
	mock.ExpectQuery("FROM donation_requests").WithArgs(9).WillReturnRows(rows)

	requests, err := repo.ListByUserID(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[0].Reference != "ref-1" || requests[1].RequestType != "receiving" {
		t.Fatalf("unexpected rows: %+v", requests)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	donorTypes := []string{"O-", "O+", "A-", "A+"}
	rows := requestRows().
		AddRow(4, "ref-4", 5, "donating", "O-", "R1", "P1", "M1", "2026-08-03T00:00:00Z", "2026-08-03T00:00:00Z")
	mock.ExpectQuery(`"bloodType" = ANY`).WithArgs(pq.Array(donorTypes), "R1", 9).WillReturnRows(rows)

	matches, err := repo.ListMatches(donorTypes, "R1", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 4 {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE donation_requests").
		WithArgs("O-", "R2", "P1", "M1", "2026-08-31T00:00:00Z", 12).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update(Request{
		ID:           12,
		RequestType:  TypeReceiving,
		BloodType:    "O-",
		Region:       "R2",
		Province:     "P1",
		Municipality: "M1",
		UpdatedAt:    "2026-08-31T00:00:00Z",
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
