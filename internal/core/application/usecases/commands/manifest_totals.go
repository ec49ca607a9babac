package commands

import (
	"context"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/manifest"
)

// refreshManifestTotals reloads the manifest's live membership and recomputes
// the cached totals. Called after every membership change so the caches never
// drift from the authoritative rows.
func refreshManifestTotals(
	ctx context.Context,
	uow ManifestUoW,
	m *manifest.Manifest,
) error {
	bags := make([]*bag.Bag, 0, len(m.BagIDs()))
	for _, bagID := range m.BagIDs() {
		member, err := uow.BagRepository().Get(ctx, bagID)
		if err != nil {
			return err
		}
		bags = append(bags, member)
	}

	standalone, err := uow.ShipmentRepository().GetByIDs(ctx, m.ShipmentIDs())
	if err != nil {
		return err
	}

	m.RecalculateTotals(bags, standalone)
	return nil
}
