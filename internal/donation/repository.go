package donation

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("request not found")

type Repository interface {
	Create(request Request) (Request, error)
	GetByID(id int) (Request, error)
	Update(request Request) (Request, error)
	Delete(id int) error
	ListByUserID(userID int) ([]Request, error)
	ListAll() ([]Request, error)
	ListMatches(donorTypes []string, region string, excludeUserID int) ([]Request, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	requests []Request
	nextID   int
}

func NewInMemoryRepository(seed []Request) *InMemoryRepository {
	repo := &InMemoryRepository{
		requests: make([]Request, 0, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, r := range seed {
		repo.requests = append(repo.requests, r)
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) Create(request Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == 0 {
		request.ID = r.nextID
		r.nextID++
	}

	r.requests = append(r.requests, request)
	return request, nil
}

func (r *InMemoryRepository) GetByID(id int) (Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}

	return Request{}, ErrNotFound
}

func (r *InMemoryRepository) Update(request Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, req := range r.requests {
		if req.ID == request.ID {
			r.requests[i] = request
			return request, nil
		}
	}

	return Request{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, req := range r.requests {
		if req.ID == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) ListByUserID(userID int) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]Request, 0)
	for _, req := range r.requests {
		if req.UserID == userID {
			requests = append(requests, req)
		}
	}

	sortByCreation(requests)
	return requests, nil
}

func (r *InMemoryRepository) ListAll() ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]Request, len(r.requests))
	copy(requests, r.requests)
	sortByCreation(requests)
	return requests, nil
}

func (r *InMemoryRepository) ListMatches(donorTypes []string, region string, excludeUserID int) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := make(map[string]bool, len(donorTypes))
	for _, t := range donorTypes {
		allowed[t] = true
	}

	requests := make([]Request, 0)
	for _, req := range r.requests {
		if req.RequestType != TypeDonating {
			continue
		}
		if req.UserID == excludeUserID {
			continue
		}
		if req.Region != region || !allowed[req.BloodType] {
			continue
		}
		requests = append(requests, req)
	}

	sortByCreation(requests)
	return requests, nil
}

func sortByCreation(requests []Request) {
	sort.SliceStable(requests, func(i, j int) bool {
		if requests[i].CreatedAt == requests[j].CreatedAt {
			return requests[i].ID < requests[j].ID
		}
		return requests[i].CreatedAt < requests[j].CreatedAt
	})
}
