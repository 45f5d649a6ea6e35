package service

import (
	"regexp"
	"strings"

	"seminar/internal/errors"
)

var seminarTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// SeminarValidator checks seminar field values. Role and ownership checks
// live in the service because they need the store.
type SeminarValidator struct{}

// NewSeminarValidator creates a new seminar validator.
func NewSeminarValidator() *SeminarValidator {
	return &SeminarValidator{}
}

// ValidateCreate checks a new seminar: required fields first, then ranges,
// then the time format.
func (v *SeminarValidator) ValidateCreate(in CreateSeminarInput) error {
	if strings.TrimSpace(in.Name) == "" || in.Capacity == nil || in.Count == nil {
		return errors.BadRequest(errors.MsgMissingFields)
	}
	if *in.Capacity < 1 || *in.Count < 1 {
		return errors.BadRequest(errors.MsgNonPositiveCapacityCount)
	}
	if !v.ValidTime(in.Time) {
		return errors.BadRequest(errors.MsgInvalidTime)
	}
	return nil
}

// ValidateModify checks the supplied fields of a partial update against the
// seminar's current active participant count.
func (v *SeminarValidator) ValidateModify(in ModifySeminarInput, activeParticipants int64) error {
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return errors.BadRequest(errors.MsgCapacityTooSmall)
		}
		if int64(*in.Capacity) < activeParticipants {
			return errors.BadRequest(errors.MsgCapacityBelowActive)
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return errors.BadRequest(errors.MsgMissingFields)
	}
	if in.Count != nil && *in.Count < 1 {
		return errors.BadRequest(errors.MsgNonPositiveCapacityCount)
	}
	if in.Time != nil && !v.ValidTime(*in.Time) {
		return errors.BadRequest(errors.MsgInvalidTime)
	}
	return nil
}

// ValidTime reports whether s is a 24-hour HH:MM clock time.
func (v *SeminarValidator) ValidTime(s string) bool {
	return seminarTimePattern.MatchString(s)
}
