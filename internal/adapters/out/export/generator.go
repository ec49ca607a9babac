// Package export renders the customs and airline paperwork: the air invoice
// for a sealed bag, and the cargo sheet plus spreadsheet workbook for a
// finalized manifest. Artifacts are generated in memory and stored by the
// repositories in the same transaction as the seal or finalize.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/ports"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeText = "text/plain; charset=utf-8"
)

// Generator implements ports.ExportGenerator with CSV and plain-text output.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates an export generator.
func NewGenerator() *Generator {
	return &Generator{now: func() time.Time { return time.Now().UTC() }}
}

// GenerateAirInvoice renders the air invoice for a sealed bag, one row per
// member shipment.
func (g *Generator) GenerateAirInvoice(aggregate *bag.Bag, members []*shipment.Shipment) (ports.Artifact, error) {
	if err := aggregate.Validate(); err != nil {
		return ports.Artifact{}, err
	}
	if len(members) == 0 {
		return ports.Artifact{}, fmt.Errorf("air invoice for bag %s: no members", aggregate.Number())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"awb", "sender", "recipient", "destination", "contents",
		"declared_value", "currency", "weight_kg"}
	if err := w.Write(header); err != nil {
		return ports.Artifact{}, err
	}

	for _, member := range members {
		awb := ""
		if member.AWB() != nil {
			awb = member.AWB().String()
		}
		record := []string{
			awb,
			member.Sender().Name(),
			member.Recipient().Name(),
			member.Recipient().Country(),
			member.Contents(),
			strconv.FormatFloat(member.DeclaredValue(), 'f', 2, 64),
			string(member.Currency()),
			strconv.FormatFloat(member.EstimatedWeight().Kilograms(), 'f', 3, 64),
		}
		if err := w.Write(record); err != nil {
			return ports.Artifact{}, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return ports.Artifact{}, err
	}

	return ports.Artifact{
		Name:        fmt.Sprintf("air-invoice-%s.csv", strings.ToLower(aggregate.Number())),
		ContentType: contentTypeCSV,
		Content:     buf.Bytes(),
		Rows:        len(members),
	}, nil
}

// GenerateManifestSheet renders the printable cargo sheet for a finalized
// manifest: a header block followed by one line per bag and per standalone
// shipment.
func (g *Generator) GenerateManifestSheet(
	aggregate *manifest.Manifest, bags []*bag.Bag, shipments []*shipment.Shipment,
) (ports.Artifact, error) {
	if err := aggregate.Validate(); err != nil {
		return ports.Artifact{}, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CARGO MANIFEST %s\n", aggregate.Number())
	fmt.Fprintf(&sb, "Flight: %s  MAWB: %s\n", aggregate.FlightNumber(), aggregate.MAWBNumber())
	fmt.Fprintf(&sb, "Departure: %s\n", aggregate.DepartureAt().Format(time.RFC3339))
	fmt.Fprintf(&sb, "Bags: %d  Parcels: %d  Weight: %.3f kg\n",
		aggregate.TotalBags(), aggregate.TotalParcels(), aggregate.TotalWeight().Kilograms())
	fmt.Fprintf(&sb, "Generated: %s\n\n", g.now().Format(time.RFC3339))

	rows := 0
	for _, b := range bags {
		fmt.Fprintf(&sb, "BAG %s  parcels=%d  weight=%.3f kg\n",
			b.Number(), len(b.ShipmentIDs()), b.Weight().Kilograms())
		rows++
	}
	for _, s := range shipments {
		awb := ""
		if s.AWB() != nil {
			awb = s.AWB().String()
		}
		fmt.Fprintf(&sb, "LOOSE %s  %s -> %s  %.3f kg\n",
			awb, s.Sender().Country(), s.Recipient().Country(), s.EstimatedWeight().Kilograms())
		rows++
	}

	return ports.Artifact{
		Name:        fmt.Sprintf("manifest-%s.txt", strings.ToLower(aggregate.Number())),
		ContentType: contentTypeText,
		Content:     []byte(sb.String()),
		Rows:        rows,
	}, nil
}

// GenerateManifestWorkbook renders the spreadsheet workbook for a finalized
// manifest, one row per parcel whether bagged or loose.
func (g *Generator) GenerateManifestWorkbook(
	aggregate *manifest.Manifest, bags []*bag.Bag, shipments []*shipment.Shipment,
) (ports.Artifact, error) {
	if err := aggregate.Validate(); err != nil {
		return ports.Artifact{}, err
	}

	bagNumbers := make(map[string]string, len(bags))
	for _, b := range bags {
		for _, memberID := range b.ShipmentIDs() {
			bagNumbers[memberID.String()] = b.Number()
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"manifest", "bag", "awb", "sender", "recipient",
		"destination", "contents", "declared_value", "currency", "weight_kg"}
	if err := w.Write(header); err != nil {
		return ports.Artifact{}, err
	}

	rows := 0
	for _, s := range shipments {
		awb := ""
		if s.AWB() != nil {
			awb = s.AWB().String()
		}
		record := []string{
			aggregate.Number(),
			bagNumbers[s.ID().String()],
			awb,
			s.Sender().Name(),
			s.Recipient().Name(),
			s.Recipient().Country(),
			s.Contents(),
			strconv.FormatFloat(s.DeclaredValue(), 'f', 2, 64),
			string(s.Currency()),
			strconv.FormatFloat(s.EstimatedWeight().Kilograms(), 'f', 3, 64),
		}
		if err := w.Write(record); err != nil {
			return ports.Artifact{}, err
		}
		rows++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return ports.Artifact{}, err
	}

	return ports.Artifact{
		Name:        fmt.Sprintf("manifest-%s.csv", strings.ToLower(aggregate.Number())),
		ContentType: contentTypeCSV,
		Content:     buf.Bytes(),
		Rows:        rows,
	}, nil
}
