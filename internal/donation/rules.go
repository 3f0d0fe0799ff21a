package donation

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jmcatapang/blood-donation-backend/internal/profile"
)

var (
	ErrNotEligible      = errors.New("not eligible to donate while unavailable")
	ErrImmutableRequest = errors.New("donating requests cannot be edited")
	ErrNotReceiving     = errors.New("matches exist only for receiving requests")
	ErrBadRequestType   = errors.New("requestType must be donating or receiving")
)

// CreateInput carries the fields submitted when opening a request. For
// donating requests the blood type and location values are ignored and
// sourced from the requester's profile instead.
type CreateInput struct {
	RequestType  string
	BloodType    string
	Region       string
	Province     string
	Municipality string
}

// EditInput carries the fields an owner may change on a receiving request.
// Nil pointers leave the stored value untouched.
type EditInput struct {
	BloodType    *string
	Region       *string
	Province     *string
	Municipality *string
}

// BuildRequest turns submitted input into a request ready for persistence.
// Donating requests require the profile to be marked available and copy
// their blood type and location from it; receiving requests take the
// caller's values verbatim.
func BuildRequest(p profile.Profile, in CreateInput, now time.Time) (Request, error) {
	r := Request{
		Reference:   uuid.NewString(),
		UserID:      p.UserID,
		RequestType: in.RequestType,
	}

	switch in.RequestType {
	case TypeDonating:
		if !p.Availability {
			return Request{}, ErrNotEligible
		}
		r.BloodType = p.BloodType
		r.Region = p.Region
		r.Province = p.Province
		r.Municipality = p.Municipality
	case TypeReceiving:
		if !profile.IsValidBloodType(in.BloodType) {
			return Request{}, profile.ErrInvalidBloodType
		}
		r.BloodType = in.BloodType
		r.Region = in.Region
		r.Province = in.Province
		r.Municipality = in.Municipality
	default:
		return Request{}, ErrBadRequestType
	}

	ts := now.UTC().Format(time.RFC3339)
	r.CreatedAt = ts
	r.UpdatedAt = ts
	return r, nil
}

// ValidateEdit applies in to existing and returns the request to persist.
// Only receiving requests are editable; donating requests mirror profile
// state at creation time and stay immutable. CreatedAt is preserved.
func ValidateEdit(existing Request, in EditInput, now time.Time) (Request, error) {
	if existing.RequestType != TypeReceiving {
		return Request{}, ErrImmutableRequest
	}

	next := existing
	if in.BloodType != nil {
		if !profile.IsValidBloodType(*in.BloodType) {
			return Request{}, profile.ErrInvalidBloodType
		}
		next.BloodType = *in.BloodType
	}
	if in.Region != nil {
		next.Region = *in.Region
	}
	if in.Province != nil {
		next.Province = *in.Province
	}
	if in.Municipality != nil {
		next.Municipality = *in.Municipality
	}

	next.UpdatedAt = now.UTC().Format(time.RFC3339)
	return next, nil
}
