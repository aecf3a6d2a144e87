package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/conecta-saber/saber-cli/pkg/core/model"
	"github.com/conecta-saber/saber-cli/pkg/session"
)

// AgendaView is the confirmed-lessons list together with the viewer's
// role, which decides whose name each row shows.
type AgendaView struct {
	Viewer model.User
	Items  []model.Appointment
}

// RequestLesson creates an appointment request against an offer. The date
// format is checked locally; everything else (offer existence, schedule
// conflicts) is the backend's call, and a rejection means no appointment
// exists anywhere.
func RequestLesson(ctx context.Context, gw Gateway, logger *zap.Logger, offerID int, date string) error {
	if offerID <= 0 {
		return fmt.Errorf("offer id must be positive, got %d", offerID)
	}
	if !model.ValidDate(date) {
		return fmt.Errorf("date must be in YYYY-MM-DD form (e.g. 2025-12-20)")
	}

	logger.Debug("Requesting lesson", zap.Int("offer_id", offerID), zap.String("date", date))

	if err := gw.CreateAppointment(ctx, offerID, date); err != nil {
		return fmt.Errorf("failed to request lesson: %w", err)
	}

	logger.Info("Lesson requested", zap.Int("offer_id", offerID), zap.String("date", date))
	return nil
}

// ListAgenda fetches the confirmed appointments for the current user,
// ordered by date as the backend returns them. The viewer's profile comes
// from the session store; a missing session still returns the list, with a
// zero viewer.
func ListAgenda(ctx context.Context, gw Gateway, store *session.Store, logger *zap.Logger) (*AgendaView, error) {
	view := &AgendaView{}

	sess, err := store.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if sess != nil {
		view.Viewer = sess.User
	} else {
		logger.Warn("No active session while fetching agenda")
	}

	items, err := gw.Agenda(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agenda: %w", err)
	}

	logger.Debug("Fetched agenda", zap.Int("count", len(items)))
	view.Items = items
	return view, nil
}

// ListPending returns the requests awaiting the current volunteer's
// decision.
func ListPending(ctx context.Context, gw Gateway, logger *zap.Logger) ([]model.Appointment, error) {
	items, err := gw.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending requests: %w", err)
	}

	logger.Debug("Fetched pending requests", zap.Int("count", len(items)))
	return items, nil
}

// Respond issues the volunteer's decision on a pending appointment and
// returns the re-fetched pending list. The transition is guarded locally
// (only REQUESTED accepts a decision) and never applied optimistically: on
// backend rejection the error is returned without touching any list, so
// the caller keeps its last-known-good state.
func Respond(ctx context.Context, gw Gateway, logger *zap.Logger, appointmentID int, current, decision model.Status) ([]model.Appointment, error) {
	if !decision.IsDecision() {
		return nil, fmt.Errorf("decision must be %s or %s, got %q", model.StatusConfirmed, model.StatusCancelled, decision)
	}
	if !current.CanTransitionTo(decision) {
		return nil, fmt.Errorf("appointment %d is %s and cannot transition to %s", appointmentID, current, decision)
	}

	logger.Debug("Responding to appointment",
		zap.Int("appointment_id", appointmentID),
		zap.String("decision", string(decision)))

	if err := gw.Respond(ctx, appointmentID, decision); err != nil {
		return nil, fmt.Errorf("failed to respond to appointment %d: %w", appointmentID, err)
	}

	logger.Info("Appointment responded",
		zap.Int("appointment_id", appointmentID),
		zap.String("decision", string(decision)))

	// Re-fetch rather than mutate: the backend owns the truth about which
	// requests are still pending.
	items, err := gw.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("decision applied but pending refresh failed: %w", err)
	}

	return items, nil
}
