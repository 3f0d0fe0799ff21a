package donation

import (
	"time"

	"github.com/jmcatapang/blood-donation-backend/internal/profile"
)

// ProfileSource supplies the requester's stored profile. The donation rules
// read availability, blood type and location from it.
type ProfileSource interface {
	GetByUserID(userID int) (profile.Profile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileSource
}

func NewService(repo Repository, profiles ProfileSource) *Service {
	return &Service{repo: repo, profiles: profiles}
}

func (s *Service) Create(userID int, in CreateInput) (Request, error) {
	p, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return Request{}, err
	}

	request, err := BuildRequest(p, in, time.Now())
	if err != nil {
		return Request{}, err
	}

	return s.repo.Create(request)
}

// Get returns the request if the caller owns it or is an administrator.
// Anyone else gets ErrNotFound so the request's existence stays hidden.
func (s *Service) Get(callerID int, admin bool, id int) (Request, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return Request{}, err
	}
	if request.UserID != callerID && !admin {
		return Request{}, ErrNotFound
	}
	return request, nil
}

func (s *Service) Edit(callerID, id int, in EditInput) (Request, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Request{}, err
	}
	if existing.UserID != callerID {
		return Request{}, ErrNotFound
	}

	next, err := ValidateEdit(existing, in, time.Now())
	if err != nil {
		return Request{}, err
	}

	return s.repo.Update(next)
}

func (s *Service) Delete(callerID, id int) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return ErrNotFound
	}

	return s.repo.Delete(id)
}

func (s *Service) ListOwn(userID int) ([]Request, error) {
	return s.repo.ListByUserID(userID)
}

func (s *Service) ListAll() ([]Request, error) {
	return s.repo.ListAll()
}

// Matches lists open donating requests able to serve the given receiving
// request: compatible blood type, same region, different user.
func (s *Service) Matches(callerID int, admin bool, id int) ([]Request, error) {
	request, err := s.Get(callerID, admin, id)
	if err != nil {
		return nil, err
	}
	if request.RequestType != TypeReceiving {
		return nil, ErrNotReceiving
	}

	return s.repo.ListMatches(CompatibleDonors(request.BloodType), request.Region, request.UserID)
}
