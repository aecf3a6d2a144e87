package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/conecta-saber/saber-cli/pkg/clients/saberclient"
	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

// OfferForm is the user-typed offer input.
type OfferForm struct {
	Subject       string
	AvailableDays string
	StartTime     string
	EndTime       string
}

// CreateOffer validates the time-format invariant locally and submits the
// offer. A validation failure returns before any network call, so the
// caller still holds the typed input for retry.
func CreateOffer(ctx context.Context, gw Gateway, logger *zap.Logger, form OfferForm) error {
	if form.Subject == "" || form.AvailableDays == "" || form.StartTime == "" || form.EndTime == "" {
		return fmt.Errorf("all offer fields are required")
	}

	if !model.ValidTime(form.StartTime) || !model.ValidTime(form.EndTime) {
		return fmt.Errorf("times must be in HH:MM form (e.g. 14:00)")
	}

	logger.Debug("Creating offer",
		zap.String("subject", form.Subject),
		zap.String("days", form.AvailableDays),
		zap.String("start", form.StartTime),
		zap.String("end", form.EndTime))

	err := gw.CreateOffer(ctx, saberclient.OfferInput{
		Subject:       form.Subject,
		AvailableDays: form.AvailableDays,
		StartTime:     form.StartTime,
		EndTime:       form.EndTime,
	})
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	logger.Info("Offer created", zap.String("subject", form.Subject))
	return nil
}

// SearchOffers returns the offers matching a subject term. An empty result
// is a valid outcome, not an error.
func SearchOffers(ctx context.Context, gw Gateway, logger *zap.Logger, term string) ([]model.Offer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	logger.Debug("Searching offers", zap.String("term", term))

	offers, err := gw.SearchOffers(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("offer search failed: %w", err)
	}

	logger.Debug("Search completed", zap.Int("results", len(offers)))
	return offers, nil
}

// ListMyOffers returns the current volunteer's own offers.
func ListMyOffers(ctx context.Context, gw Gateway, logger *zap.Logger) ([]model.Offer, error) {
	offers, err := gw.MyOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	logger.Debug("Fetched own offers", zap.Int("count", len(offers)))
	return offers, nil
}
