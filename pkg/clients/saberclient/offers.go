package saberclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

// OfferInput is the create-offer payload.
type OfferInput struct {
	Subject       string `json:"disciplina"`
	AvailableDays string `json:"dias_disponiveis"`
	StartTime     string `json:"horario_inicio"`
	EndTime       string `json:"horario_fim"`
}

// CreateOffer registers the current volunteer's availability.
func (c *Client) CreateOffer(ctx context.Context, input OfferInput) error {
	return c.do(ctx, http.MethodPost, "/ofertas", nil, input, nil)
}

// SearchOffers returns offers whose subject matches the given term. An
// empty slice is a valid outcome, distinct from a transport failure.
func (c *Client) SearchOffers(ctx context.Context, subject string) ([]model.Offer, error) {
	query := url.Values{"disciplina": {subject}}

	var offers []model.Offer
	if err := c.do(ctx, http.MethodGet, "/ofertas/busca", query, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// MyOffers returns the offers owned by the current volunteer.
func (c *Client) MyOffers(ctx context.Context) ([]model.Offer, error) {
	var offers []model.Offer
	if err := c.do(ctx, http.MethodGet, "/ofertas/meus-registros", nil, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}
