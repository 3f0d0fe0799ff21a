package profile

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrProfileExists = errors.New("profile already exists")
)

type Repository interface {
	GetByUserID(userID int) (Profile, error)
	Create(profile Profile) (Profile, error)
	Update(profile Profile) (Profile, error)
}

// InMemoryRepository keyed by userID; one profile per user.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int]Profile
	nextID   int
}

func NewInMemoryRepository(seed []Profile) *InMemoryRepository {
	repo := &InMemoryRepository{
		profiles: make(map[int]Profile, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, p := range seed {
		repo.profiles[p.UserID] = p
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByUserID(userID int) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) Create(profile Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; ok {
		return Profile{}, ErrProfileExists
	}

	if profile.ID == 0 {
		profile.ID = r.nextID
		r.nextID++
	}

	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *InMemoryRepository) Update(profile Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; !ok {
		return Profile{}, ErrNotFound
	}

	r.profiles[profile.UserID] = profile
	return profile, nil
}
