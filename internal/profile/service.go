package profile

import "time"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByUserID(userID int) (Profile, error) {
	if userID <= 0 {
		return Profile{}, ErrNotFound
	}
	return s.repo.GetByUserID(userID)
}

// Exists reports whether the user has completed their profile. Used as the
// login gate: users without one are sent to profile creation first.
func (s *Service) Exists(userID int) bool {
	_, err := s.repo.GetByUserID(userID)
	return err == nil
}

func (s *Service) Create(profile Profile) (Profile, error) {
	if profile.UserID <= 0 {
		return Profile{}, ErrNotFound
	}
	if !IsValidBloodType(profile.BloodType) {
		return Profile{}, ErrInvalidBloodType
	}
	if profile.LastDonationDate != nil {
		parsed, err := time.Parse(DateLayout, *profile.LastDonationDate)
		if err != nil || parsed.After(time.Now().UTC()) {
			return Profile{}, ErrInvalidDate
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return s.repo.Create(profile)
}

func (s *Service) Update(userID int, in UpdateInput) (Profile, error) {
	current, err := s.repo.GetByUserID(userID)
	if err != nil {
		return Profile{}, err
	}

	next, err := ValidateUpdate(current, in, time.Now().UTC())
	if err != nil {
		return Profile{}, err
	}

	next.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(next)
}
