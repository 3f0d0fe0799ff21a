package profile

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"profileId", "userId", "firstName", "lastName", "weight", "height", "region", "province", "municipality", "bloodType", "availability", "lastDonationDate", "createdAt", "updatedAt"})
}

func TestPostgresGetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := profileRows().
		AddRow(1, 9, "Ana", "Reyes", 58.0, 162.0, "R1", "P1", "M1", "O-", true, "2026-06-01", "2026-05-01T00:00:00Z", "2026-06-01T00:00:00Z")
	mock.ExpectQuery("FROM profiles").WithArgs(9).WillReturnRows(rows)

	p, err := repo.GetByUserID(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BloodType != "O-" || !p.Availability {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.LastDonationDate == nil || *p.LastDonationDate != "2026-06-01" {
		t.Fatalf("lastDonationDate not scanned: %v", p.LastDonationDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByUserID_NullDonationDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := profileRows().
		AddRow(1, 9, "Ana", "Reyes", 58.0, 162.0, "R1", "P1", "M1", "O-", false, nil, nil, nil)
	mock.ExpectQuery("FROM profiles").WithArgs(9).WillReturnRows(rows)

	p, err := repo.GetByUserID(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LastDonationDate != nil {
		t.Fatalf("expected nil lastDonationDate, got %v", *p.LastDonationDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByUserID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM profiles").WithArgs(3).WillReturnRows(profileRows())

	if _, err := repo.GetByUserID(3); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
