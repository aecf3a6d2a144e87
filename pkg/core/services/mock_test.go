package services

import (
	"context"

	"github.com/conecta-saber/saber-cli/pkg/clients/saberclient"
	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

// mockGateway is a test double for the Gateway interface.
type mockGateway struct {
	loginResult *saberclient.LoginResult
	loginErr    error
	loginCalls  int

	registerErr   error
	registerInput saberclient.RegisterInput
	registerCalls int

	createOfferErr   error
	createOfferInput saberclient.OfferInput
	createOfferCalls int

	searchOffers []model.Offer
	searchErr    error
	searchTerm   string

	myOffers    []model.Offer
	myOffersErr error

	createAppointmentErr   error
	createAppointmentCalls int
	createdOfferID         int
	createdDate            string

	agenda    []model.Appointment
	agendaErr error

	pending      []model.Appointment
	pendingErr   error
	pendingCalls int

	respondErr      error
	respondCalls    int
	respondedID     int
	respondedStatus model.Status
}

func (m *mockGateway) Login(ctx context.Context, email, password string) (*saberclient.LoginResult, error) {
	m.loginCalls++
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockGateway) Register(ctx context.Context, input saberclient.RegisterInput) error {
	m.registerCalls++
	m.registerInput = input
	return m.registerErr
}

func (m *mockGateway) CreateOffer(ctx context.Context, input saberclient.OfferInput) error {
	m.createOfferCalls++
	m.createOfferInput = input
	return m.createOfferErr
}

func (m *mockGateway) SearchOffers(ctx context.Context, subject string) ([]model.Offer, error) {
	m.searchTerm = subject
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchOffers, nil
}

func (m *mockGateway) MyOffers(ctx context.Context) ([]model.Offer, error) {
	if m.myOffersErr != nil {
		return nil, m.myOffersErr
	}
	return m.myOffers, nil
}

func (m *mockGateway) CreateAppointment(ctx context.Context, offerID int, date string) error {
	m.createAppointmentCalls++
	m.createdOfferID = offerID
	m.createdDate = date
	return m.createAppointmentErr
}

func (m *mockGateway) Agenda(ctx context.Context) ([]model.Appointment, error) {
	if m.agendaErr != nil {
		return nil, m.agendaErr
	}
	return m.agenda, nil
}

func (m *mockGateway) Pending(ctx context.Context) ([]model.Appointment, error) {
	m.pendingCalls++
	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	return m.pending, nil
}

func (m *mockGateway) Respond(ctx context.Context, appointmentID int, decision model.Status) error {
	m.respondCalls++
	m.respondedID = appointmentID
	m.respondedStatus = decision
	return m.respondErr
}
