package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusApproved, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, true},
		{AppointmentStatusPending, AppointmentStatusCanceled, true},
		{AppointmentStatusApproved, AppointmentStatusCompleted, true},
		{AppointmentStatusApproved, AppointmentStatusCanceled, true},
		{AppointmentStatusApproved, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCanceled, false},
		{AppointmentStatusCompleted, AppointmentStatusApproved, false},
		{AppointmentStatusCanceled, AppointmentStatusPending, false},
		{AppointmentStatusCanceled, AppointmentStatusApproved, false},
		{AppointmentStatusPending, AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.True(t, AppointmentStatusApproved.Valid())
	assert.True(t, AppointmentStatusCompleted.Valid())
	assert.True(t, AppointmentStatusCanceled.Valid())
	assert.False(t, AppointmentStatus("approve").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}
