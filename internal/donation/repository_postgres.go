package donation

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getRequestByIDQuery = `
		SELECT "requestId", reference, "userId", "requestType", "bloodType", region, province, municipality, "createdAt", "updatedAt"
		FROM donation_requests
		WHERE "requestId" = $1
	`
	listRequestsByUserQuery = `
		SELECT "requestId", reference, "userId", "requestType", "bloodType", region, province, municipality, "createdAt", "updatedAt"
		FROM donation_requests
		WHERE "userId" = $1
		ORDER BY "createdAt", "requestId"
	`
	listAllRequestsQuery = `
		SELECT "requestId", reference, "userId", "requestType", "bloodType", region, province, municipality, "createdAt", "updatedAt"
		FROM donation_requests
		ORDER BY "createdAt", "requestId"
	`
	listMatchesQuery = `
		SELECT "requestId", reference, "userId", "requestType", "bloodType", region, province, municipality, "createdAt", "updatedAt"
		FROM donation_requests
		WHERE "requestType" = 'donating'
		  AND "bloodType" = ANY($1::text[])
		  AND region = $2
		  AND "userId" <> $3
		ORDER BY "createdAt", "requestId"
	`

	insertRequestQuery = `
		INSERT INTO donation_requests (reference, "userId", "requestType", "bloodType", region, province, municipality, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING "requestId"
	`
	updateRequestQuery = `
		UPDATE donation_requests
		SET "bloodType" = $1,
			region = $2,
			province = $3,
			municipality = $4,
			"updatedAt" = $5
		WHERE "requestId" = $6
	`
	deleteRequestQuery = `DELETE FROM donation_requests WHERE "requestId" = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(request Request) (Request, error) {
	var id int
	err := r.db.QueryRow(
		insertRequestQuery,
		request.Reference,
		request.UserID,
		request.RequestType,
		request.BloodType,
		request.Region,
		request.Province,
		request.Municipality,
		request.CreatedAt,
		request.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Request{}, err
	}

	request.ID = id
	return request, nil
}

func (r *PostgresRepository) GetByID(id int) (Request, error) {
	row := r.db.QueryRow(getRequestByIDQuery, id)
	request, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}

	return request, nil
}

func (r *PostgresRepository) Update(request Request) (Request, error) {
	result, err := r.db.Exec(
		updateRequestQuery,
		request.BloodType,
		request.Region,
		request.Province,
		request.Municipality,
		request.UpdatedAt,
		request.ID,
	)
	if err != nil {
		return Request{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Request{}, err
	}
	if affected == 0 {
		return Request{}, ErrNotFound
	}

	return r.GetByID(request.ID)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteRequestQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByUserID(userID int) ([]Request, error) {
	return r.queryRequests(listRequestsByUserQuery, userID)
}

func (r *PostgresRepository) ListAll() ([]Request, error) {
	return r.queryRequests(listAllRequestsQuery)
}

// ListMatches returns donating requests whose blood type is in donorTypes,
// within the given region, excluding the recipient's own requests.
func (r *PostgresRepository) ListMatches(donorTypes []string, region string, excludeUserID int) ([]Request, error) {
	return r.queryRequests(listMatchesQuery, pq.Array(donorTypes), region, excludeUserID)
}

func (r *PostgresRepository) queryRequests(query string, args ...any) ([]Request, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]Request, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func scanRequest(scanner rowScanner) (Request, error) {
	request := Request{}
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&request.ID,
		&request.Reference,
		&request.UserID,
		&request.RequestType,
		&request.BloodType,
		&request.Region,
		&request.Province,
		&request.Municipality,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Request{}, err
	}

	if createdAt.Valid {
		request.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		request.UpdatedAt = updatedAt.String
	}

	return request, nil
}
