package saberclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

type createAppointmentRequest struct {
	OfferID int    `json:"id_oferta"`
	Date    string `json:"data_aula"`
}

type respondRequest struct {
	NewStatus model.Status `json:"novo_status"`
}

// CreateAppointment requests a lesson against an offer for a concrete
// date. The offer's existence and schedule conflicts are validated by the
// backend; a rejection means the appointment does not exist anywhere.
func (c *Client) CreateAppointment(ctx context.Context, offerID int, date string) error {
	return c.do(ctx, http.MethodPost, "/agendamentos", nil, createAppointmentRequest{OfferID: offerID, Date: date}, nil)
}

// Agenda returns the current user's confirmed appointments, ordered by
// date as the backend returns them.
func (c *Client) Agenda(ctx context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/agendamentos/agenda", nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Pending returns the requests awaiting the current volunteer's decision.
func (c *Client) Pending(ctx context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/agendamentos/pendentes", nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Respond issues the volunteer's decision on a pending appointment.
func (c *Client) Respond(ctx context.Context, appointmentID int, decision model.Status) error {
	path := fmt.Sprintf("/agendamentos/%d/responder", appointmentID)
	return c.do(ctx, http.MethodPatch, path, nil, respondRequest{NewStatus: decision}, nil)
}
