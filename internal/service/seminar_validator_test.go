package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seminar/internal/errors"
)

func TestSeminarValidator_ValidTime(t *testing.T) {
	v := NewSeminarValidator()

	for _, s := range []string{"00:00", "09:00", "13:45", "23:59"} {
		assert.True(t, v.ValidTime(s), s)
	}
	for _, s := range []string{"", "9:00", "09-00", "24:00", "12:60", "12:5", "ab:cd", "09:00 "} {
		assert.False(t, v.ValidTime(s), s)
	}
}

func TestSeminarValidator_ValidateCreate(t *testing.T) {
	v := NewSeminarValidator()

	tests := []struct {
		name string
		in   CreateSeminarInput
		want error
	}{
		{"valid", CreateSeminarInput{Name: "s", Capacity: intPtr(1), Count: intPtr(1), Time: "09:00"}, nil},
		{"blank name", CreateSeminarInput{Name: " ", Capacity: intPtr(1), Count: intPtr(1), Time: "09:00"}, errors.BadRequest(errors.MsgMissingFields)},
		{"missing count", CreateSeminarInput{Name: "s", Capacity: intPtr(1), Time: "09:00"}, errors.BadRequest(errors.MsgMissingFields)},
		{"missing fields win over bad time", CreateSeminarInput{Time: "bad"}, errors.BadRequest(errors.MsgMissingFields)},
		{"zero capacity", CreateSeminarInput{Name: "s", Capacity: intPtr(0), Count: intPtr(1), Time: "09:00"}, errors.BadRequest(errors.MsgNonPositiveCapacityCount)},
		{"range wins over bad time", CreateSeminarInput{Name: "s", Capacity: intPtr(1), Count: intPtr(-1), Time: "bad"}, errors.BadRequest(errors.MsgNonPositiveCapacityCount)},
		{"bad time", CreateSeminarInput{Name: "s", Capacity: intPtr(1), Count: intPtr(1), Time: "9시"}, errors.BadRequest(errors.MsgInvalidTime)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(tt.in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestSeminarValidator_ValidateModify(t *testing.T) {
	v := NewSeminarValidator()

	tests := []struct {
		name   string
		in     ModifySeminarInput
		active int64
		want   error
	}{
		{"empty update", ModifySeminarInput{}, 5, nil},
		{"capacity equal to active", ModifySeminarInput{Capacity: intPtr(3)}, 3, nil},
		{"capacity below one", ModifySeminarInput{Capacity: intPtr(0)}, 0, errors.BadRequest(errors.MsgCapacityTooSmall)},
		{"capacity below active", ModifySeminarInput{Capacity: intPtr(2)}, 3, errors.BadRequest(errors.MsgCapacityBelowActive)},
		{"blank name", ModifySeminarInput{Name: strPtr("")}, 0, errors.BadRequest(errors.MsgMissingFields)},
		{"zero count", ModifySeminarInput{Count: intPtr(0)}, 0, errors.BadRequest(errors.MsgNonPositiveCapacityCount)},
		{"bad time", ModifySeminarInput{Time: strPtr("7:30")}, 0, errors.BadRequest(errors.MsgInvalidTime)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateModify(tt.in, tt.active)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)
		})
	}
}
