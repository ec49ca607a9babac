package ports

import (
	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/domain/model/shipment"
)

// Artifact is an opaque generated document: the bytes, how to serve them and
// how many data rows they contain.
type Artifact struct {
	Name        string
	ContentType string
	Content     []byte
	Rows        int
}

// ExportGenerator produces the customs and airline paperwork for sealed bags
// and finalized manifests. Generation failures abort the surrounding
// transaction: a sealed bag without its invoice, or a finalized manifest
// without its documents, must never be committed.
type ExportGenerator interface {
	// GenerateAirInvoice renders the air invoice for a sealed bag listing
	// its member shipments.
	GenerateAirInvoice(aggregate *bag.Bag, members []*shipment.Shipment) (Artifact, error)

	// GenerateManifestSheet renders the printable cargo sheet for a
	// finalized manifest.
	GenerateManifestSheet(
		aggregate *manifest.Manifest, bags []*bag.Bag, shipments []*shipment.Shipment,
	) (Artifact, error)

	// GenerateManifestWorkbook renders the spreadsheet workbook for a
	// finalized manifest, one row per parcel.
	GenerateManifestWorkbook(
		aggregate *manifest.Manifest, bags []*bag.Bag, shipments []*shipment.Shipment,
	) (Artifact, error)
}
