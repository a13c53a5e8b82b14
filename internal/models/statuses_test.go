package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_AllowedMoves(t *testing.T) {
	allowed := []struct {
		from AppointmentStatus
		to   AppointmentStatus
	}{
		{AppointmentStatusPending, AppointmentStatusPriceProposed},
		{AppointmentStatusPending, AppointmentStatusRejected},
		{AppointmentStatusPending, AppointmentStatusCancelledByClient},
		{AppointmentStatusPriceProposed, AppointmentStatusConfirmed},
		{AppointmentStatusPriceProposed, AppointmentStatusCancelled},
		{AppointmentStatusPriceProposed, AppointmentStatusCancelledByClient},
		{AppointmentStatusConfirmed, AppointmentStatusCancelledByClient},
	}

	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}
}

func TestCanTransition_ForbiddenMoves(t *testing.T) {
	forbidden := []struct {
		from AppointmentStatus
		to   AppointmentStatus
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed},
		{AppointmentStatusPending, AppointmentStatusCancelled},
		{AppointmentStatusConfirmed, AppointmentStatusPending},
		{AppointmentStatusConfirmed, AppointmentStatusPriceProposed},
		{AppointmentStatusRejected, AppointmentStatusPending},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed},
		{AppointmentStatusCancelledByClient, AppointmentStatusPending},
		{AppointmentStatusPriceProposed, AppointmentStatusRejected},
	}

	for _, tc := range forbidden {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be forbidden", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusRejected.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusCancelledByClient.IsTerminal())

	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusPriceProposed.IsTerminal())
	// Подтвержденную запись клиент еще может отменить
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
}

func TestAppointmentHide_SetSemantics(t *testing.T) {
	a := &Appointment{}

	a.Hide("user-1")
	a.Hide("user-1")
	a.Hide("user-2")

	assert.Len(t, a.HiddenBy, 2)
	assert.True(t, a.IsHiddenFor("user-1"))
	assert.True(t, a.IsHiddenFor("user-2"))
	assert.False(t, a.IsHiddenFor("user-3"))
}
