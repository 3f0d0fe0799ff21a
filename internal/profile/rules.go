package profile

import (
	"errors"
	"fmt"
	"time"
)

// CooldownDays is the mandatory wait after a donation before a donor may
// mark themselves available again.
const CooldownDays = 56

// DateLayout is the wire format for lastDonationDate.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("lastDonationDate must be a past or present date in YYYY-MM-DD format")
	ErrInvalidBloodType = errors.New("invalid blood type")
)

// CooldownError rejects an availability toggle attempted before the
// post-donation wait has elapsed.
type CooldownError struct {
	RemainingDays int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("you must wait %d more days before you can change your availability", e.RemainingDays)
}

var bloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// IsValidBloodType reports whether code is one of the eight ABO/Rh codes.
func IsValidBloodType(code string) bool {
	return bloodTypes[code]
}

// UpdateInput carries the fields a profile edit may supply. Nil pointers
// leave the stored value untouched. BloodType is accepted for form
// round-trips but never applied: the stored value always wins.
type UpdateInput struct {
	FirstName        *string
	LastName         *string
	Weight           *float64
	Height           *float64
	Region           *string
	Province         *string
	Municipality     *string
	BloodType        *string
	Availability     *bool
	LastDonationDate *string
}

// ValidateUpdate applies in to current and returns the profile to persist,
// or an error if the edit violates a rule. It never mutates current and
// performs no I/O; today anchors the cooldown arithmetic.
//
// Turning availability on while the donation cooldown is still running
// yields a *CooldownError carrying the remaining day count. The cooldown is
// measured against the stored lastDonationDate, not a value submitted in
// the same edit.
func ValidateUpdate(current Profile, in UpdateInput, today time.Time) (Profile, error) {
	next := current

	if in.FirstName != nil {
		next.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		next.LastName = *in.LastName
	}
	if in.Weight != nil {
		next.Weight = *in.Weight
	}
	if in.Height != nil {
		next.Height = *in.Height
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

	if in.LastDonationDate != nil {
		if *in.LastDonationDate == "" {
			next.LastDonationDate = nil
		} else {
			parsed, err := time.Parse(DateLayout, *in.LastDonationDate)
			if err != nil || parsed.After(today) {
				return Profile{}, ErrInvalidDate
			}
			value := parsed.Format(DateLayout)
			next.LastDonationDate = &value
		}
	}

	if in.Availability != nil && *in.Availability != current.Availability {
		if *in.Availability && current.LastDonationDate != nil {
			lastDonation, err := time.Parse(DateLayout, *current.LastDonationDate)
			if err == nil {
				daysSince := daysBetween(lastDonation, today)
				if daysSince < CooldownDays {
					return Profile{}, &CooldownError{RemainingDays: CooldownDays - daysSince}
				}
			}
		}
		next.Availability = *in.Availability
	}

	// blood type is immutable through the edit path
	next.BloodType = current.BloodType

	return next, nil
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
