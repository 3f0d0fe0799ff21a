package user

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(user User) (User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	if _, err := s.repo.GetByUsername(user.Username); err == nil {
		return User{}, ErrUsernameExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.Password = string(hashed)
	user.Active = true
	return s.repo.Create(user)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if !user.Active {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// UpdateAccount changes the account-level fields an administrator may touch:
// username and the active flag.
func (s *Service) UpdateAccount(id int, username string, active bool, updatedAt string) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}

	if username != "" && username != existing.Username {
		if other, err := s.repo.GetByUsername(username); err == nil && other.ID != id {
			return User{}, ErrUsernameExists
		} else if err != nil && err != ErrNotFound {
			return User{}, err
		}
		existing.Username = username
	}

	existing.Active = active
	existing.UpdatedAt = updatedAt
	return s.repo.Update(id, existing)
}

// Deactivate disables an account without deleting it.
func (s *Service) Deactivate(id int, updatedAt string) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}

	existing.Active = false
	existing.UpdatedAt = updatedAt
	return s.repo.Update(id, existing)
}
