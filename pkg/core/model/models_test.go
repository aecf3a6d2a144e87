package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"14:00", true},
		{"09:30", true},
		{"00:00", true},
		{"9:30", false},
		{"14:00:00", false},
		{"14h00", false},
		{"", false},
		{"ab:cd", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTime(tt.input))
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2025-12-20", true},
		{"2025-1-20", false},
		{"20-12-2025", false},
		{"2025/12/20", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDate(tt.input))
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	// Only a pending appointment accepts a decision.
	assert.True(t, StatusRequested.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusRequested.CanTransitionTo(StatusCancelled))

	// Terminal states have no outgoing transitions.
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))

	// A decision is never "back to pending".
	assert.False(t, StatusRequested.CanTransitionTo(StatusRequested))
}

func TestStatusIsDecision(t *testing.T) {
	assert.True(t, StatusConfirmed.IsDecision())
	assert.True(t, StatusCancelled.IsDecision())
	assert.False(t, StatusRequested.IsDecision())
	assert.False(t, Status("CONFIRMED").IsDecision())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleLearner.IsValid())
	assert.True(t, RoleVolunteer.IsValid())
	assert.True(t, RoleManager.IsValid())
	assert.False(t, Role("PROFESSOR").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestCounterpartName(t *testing.T) {
	apt := Appointment{LearnerName: "Maria", VolunteerName: "João"}

	assert.Equal(t, "Maria", apt.CounterpartName(RoleVolunteer))
	assert.Equal(t, "João", apt.CounterpartName(RoleLearner))
	assert.Equal(t, "João", apt.CounterpartName(RoleManager))
}

func TestShortTime(t *testing.T) {
	assert.Equal(t, "14:00", ShortTime("14:00:00"))
	assert.Equal(t, "14:00", ShortTime("14:00"))
	assert.Equal(t, "9:00", ShortTime("9:00"))
	assert.Equal(t, "", ShortTime(""))
}
