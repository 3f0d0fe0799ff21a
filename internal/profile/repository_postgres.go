package profile

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getProfileByUserIDQuery = `
		SELECT "profileId", "userId", "firstName", "lastName", weight, height, region, province, municipality, "bloodType", availability, "lastDonationDate", "createdAt", "updatedAt"
		FROM profiles
		WHERE "userId" = $1
	`

	insertProfileQuery = `
		INSERT INTO profiles ("userId", "firstName", "lastName", weight, height, region, province, municipality, "bloodType", availability, "lastDonationDate", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING "profileId"
	`
	updateProfileQuery = `
		UPDATE profiles
		SET "firstName" = $1,
			"lastName" = $2,
			weight = $3,
			height = $4,
			region = $5,
			province = $6,
			municipality = $7,
			"bloodType" = $8,
			availability = $9,
			"lastDonationDate" = $10,
			"updatedAt" = $11
		WHERE "userId" = $12
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUserID(userID int) (Profile, error) {
	row := r.db.QueryRow(getProfileByUserIDQuery, userID)
	profile, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	return profile, nil
}

func (r *PostgresRepository) Create(profile Profile) (Profile, error) {
	var id int
	err := r.db.QueryRow(
		insertProfileQuery,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Weight,
		profile.Height,
		profile.Region,
		profile.Province,
		profile.Municipality,
		profile.BloodType,
		profile.Availability,
		dateArg(profile.LastDonationDate),
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&id)
	if err != nil {
		// unique constraint on userId enforces the one-to-one relation
		if strings.Contains(err.Error(), "duplicate key") {
			return Profile{}, ErrProfileExists
		}
		return Profile{}, err
	}

	profile.ID = id
	return profile, nil
}

func (r *PostgresRepository) Update(profile Profile) (Profile, error) {
	result, err := r.db.Exec(
		updateProfileQuery,
		profile.FirstName,
		profile.LastName,
		profile.Weight,
		profile.Height,
		profile.Region,
		profile.Province,
		profile.Municipality,
		profile.BloodType,
		profile.Availability,
		dateArg(profile.LastDonationDate),
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return Profile{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Profile{}, err
	}
	if affected == 0 {
		return Profile{}, ErrNotFound
	}

	return r.GetByUserID(profile.UserID)
}

func dateArg(date *string) interface{} {
	if date == nil {
		return nil
	}
	return *date
}

func scanProfile(scanner rowScanner) (Profile, error) {
	profile := Profile{}
	var lastDonation sql.NullString
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Weight,
		&profile.Height,
		&profile.Region,
		&profile.Province,
		&profile.Municipality,
		&profile.BloodType,
		&profile.Availability,
		&lastDonation,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Profile{}, err
	}

	if lastDonation.Valid {
		profile.LastDonationDate = &lastDonation.String
	}
	if createdAt.Valid {
		profile.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		profile.UpdatedAt = updatedAt.String
	}

	return profile, nil
}
