package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_LatestIssuedWins(t *testing.T) {
	var list List[string]

	first := list.Begin()
	second := list.Begin()

	// The newer refresh completes first.
	assert.True(t, list.Apply(second, []string{"fresh"}))

	// The older refresh completes late; its data must be discarded.
	assert.False(t, list.Apply(first, []string{"stale"}))

	assert.Equal(t, []string{"fresh"}, list.Items())
}

func TestList_InOrderCompletion(t *testing.T) {
	var list List[int]

	first := list.Begin()
	assert.True(t, list.Apply(first, []int{1, 2}))

	second := list.Begin()
	assert.True(t, list.Apply(second, []int{3}))

	assert.Equal(t, []int{3}, list.Items())
}

func TestList_FailedRefreshKeepsLastKnownGood(t *testing.T) {
	var list List[string]

	ticket := list.Begin()
	assert.True(t, list.Apply(ticket, []string{"good"}))

	// A refresh that begins but never applies (fetch failed) leaves the
	// snapshot untouched.
	list.Begin()
	assert.Equal(t, []string{"good"}, list.Items())
}

func TestList_EmptyBeforeFirstApply(t *testing.T) {
	var list List[int]
	assert.Empty(t, list.Items())
}

func TestGate_RejectsDuplicateSubmission(t *testing.T) {
	var gate Gate

	assert.True(t, gate.TryBegin())
	assert.False(t, gate.TryBegin())

	gate.End()
	assert.True(t, gate.TryBegin())
}
