package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/ports"
	"parcelbridge/internal/pkg/errs"
)

// maxManifestNumberAttempts bounds the retries when a generated manifest
// number collides with an existing one.
const maxManifestNumberAttempts = 3

// CreateManifestResult carries the identifiers of a freshly opened manifest.
type CreateManifestResult struct {
	ManifestID kernel.UUID
	Number     string
}

// CreateManifestCommandHandler opens a draft manifest, optionally loading it
// with sealed bags. Bags already on another manifest are rejected.
type CreateManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewCreateManifestCommandHandler creates a handler for opening manifests.
func NewCreateManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (CreateManifestCommandHandler, error) {
	if uowFactory == nil {
		return CreateManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return CreateManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle opens the manifest.
func (h CreateManifestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateManifestCommand,
) (CreateManifestResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateManifestResult{}, err
	}

	var result CreateManifestResult
	var lastErr error
	for attempt := 0; attempt < maxManifestNumberAttempts; attempt++ {
		result, lastErr = h.create(ctx, cmd)
		if lastErr == nil {
			return result, nil
		}
		if !errors.Is(lastErr, ports.ErrManifestNumberTaken) {
			return CreateManifestResult{}, lastErr
		}
	}

	return CreateManifestResult{}, fmt.Errorf("creating manifest: %w", lastErr)
}

func (h CreateManifestCommandHandler) create(
	ctx context.Context,
	cmd CreateManifestCommand,
) (CreateManifestResult, error) {
	number, err := manifest.GenerateManifestNumber(time.Now().UTC())
	if err != nil {
		return CreateManifestResult{}, err
	}

	newManifest, err := manifest.NewManifest(
		kernel.NewUUID(),
		number,
		cmd.FlightNumber(),
		cmd.MAWBNumber(),
		cmd.AirlineReference(),
		cmd.DepartureAt(),
		cmd.CreatedBy(),
	)
	if err != nil {
		return CreateManifestResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateManifestResult{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := h.loadInitialBags(ctx, uow, newManifest, cmd.InitialBagIDs()); err != nil {
		return CreateManifestResult{}, err
	}

	if err := uow.ManifestRepository().Add(ctx, newManifest); err != nil {
		return CreateManifestResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateManifestResult{}, err
	}

	return CreateManifestResult{ManifestID: newManifest.ID(), Number: newManifest.Number()}, nil
}

func (h CreateManifestCommandHandler) loadInitialBags(
	ctx context.Context,
	uow ManifestUoW,
	newManifest *manifest.Manifest,
	bagIDs []kernel.UUID,
) error {
	if len(bagIDs) == 0 {
		return nil
	}

	loaded := make([]*bag.Bag, 0, len(bagIDs))
	for _, bagID := range bagIDs {
		candidate, err := uow.BagRepository().Get(ctx, bagID)
		if err != nil {
			return err
		}

		holder, err := uow.ManifestRepository().FindByBagID(ctx, bagID)
		if err != nil {
			return err
		}
		if holder != nil {
			return errs.NewNotEligibleError(
				"bag", "bag is already on manifest "+holder.Number())
		}

		if err := newManifest.AddBag(candidate); err != nil {
			return err
		}
		loaded = append(loaded, candidate)
	}

	newManifest.RecalculateTotals(loaded, nil)
	return nil
}
