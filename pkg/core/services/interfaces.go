package services

import (
	"context"

	"github.com/conecta-saber/saber-cli/pkg/clients/saberclient"
	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

// Gateway is the authenticated request surface the services depend on.
// saberclient.Client implements it; tests substitute a mock.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*saberclient.LoginResult, error)
	Register(ctx context.Context, input saberclient.RegisterInput) error
	CreateOffer(ctx context.Context, input saberclient.OfferInput) error
	SearchOffers(ctx context.Context, subject string) ([]model.Offer, error)
	MyOffers(ctx context.Context) ([]model.Offer, error)
	CreateAppointment(ctx context.Context, offerID int, date string) error
	Agenda(ctx context.Context) ([]model.Appointment, error)
	Pending(ctx context.Context) ([]model.Appointment, error)
	Respond(ctx context.Context, appointmentID int, decision model.Status) error
}
