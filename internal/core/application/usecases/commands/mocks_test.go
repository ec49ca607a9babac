package commands_test

import (
	"context"
	"testing"
	"time"

	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByAWB(ctx context.Context, awb string) (*shipment.Shipment, error) {
	args := m.Called(ctx, awb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) AddDeliveryProof(ctx context.Context, proof shipment.DeliveryProof) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

type MockBagRepository struct{ mock.Mock }

func (m *MockBagRepository) Add(ctx context.Context, b *bag.Bag) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBagRepository) Update(ctx context.Context, b *bag.Bag) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBagRepository) Get(ctx context.Context, id kernel.UUID) (*bag.Bag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bag.Bag), args.Error(1)
}

func (m *MockBagRepository) FindByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*bag.Bag, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bag.Bag), args.Error(1)
}

func (m *MockBagRepository) NextBagNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockBagRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBagRepository) SaveAirInvoice(ctx context.Context, invoice ports.AirInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockBagRepository) DeleteAirInvoice(ctx context.Context, bagID kernel.UUID) error {
	args := m.Called(ctx, bagID)
	return args.Error(0)
}

type MockManifestRepository struct{ mock.Mock }

func (m *MockManifestRepository) Add(ctx context.Context, aggregate *manifest.Manifest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockManifestRepository) Update(ctx context.Context, aggregate *manifest.Manifest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) FindByBagID(ctx context.Context, bagID kernel.UUID) (*manifest.Manifest, error) {
	args := m.Called(ctx, bagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) FindByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*manifest.Manifest, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManifestRepository) SaveExport(ctx context.Context, export ports.ManifestExport) error {
	args := m.Called(ctx, export)
	return args.Error(0)
}

// MockUoW satisfies all three unit of work interfaces.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) BagRepository() ports.BagRepository {
	args := m.Called()
	return args.Get(0).(ports.BagRepository)
}

func (m *MockUoW) ManifestRepository() ports.ManifestRepository {
	args := m.Called()
	return args.Get(0).(ports.ManifestRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockBaggingUoWFactory struct{ mock.Mock }

func (m *MockBaggingUoWFactory) Create() commands.BaggingUoW {
	args := m.Called()
	return args.Get(0).(commands.BaggingUoW)
}

type MockManifestUoWFactory struct{ mock.Mock }

func (m *MockManifestUoWFactory) Create() commands.ManifestUoW {
	args := m.Called()
	return args.Get(0).(commands.ManifestUoW)
}

type MockExportGenerator struct{ mock.Mock }

func (m *MockExportGenerator) GenerateAirInvoice(b *bag.Bag, members []*shipment.Shipment) (ports.Artifact, error) {
	args := m.Called(b, members)
	return args.Get(0).(ports.Artifact), args.Error(1)
}

func (m *MockExportGenerator) GenerateManifestSheet(
	aggregate *manifest.Manifest, bags []*bag.Bag, shipments []*shipment.Shipment,
) (ports.Artifact, error) {
	args := m.Called(aggregate, bags, shipments)
	return args.Get(0).(ports.Artifact), args.Error(1)
}

func (m *MockExportGenerator) GenerateManifestWorkbook(
	aggregate *manifest.Manifest, bags []*bag.Bag, shipments []*shipment.Shipment,
) (ports.Artifact, error) {
	args := m.Called(aggregate, bags, shipments)
	return args.Get(0).(ports.Artifact), args.Error(1)
}

type MockBookingDeduplicator struct{ mock.Mock }

func (m *MockBookingDeduplicator) Find(ctx context.Context, key string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockBookingDeduplicator) Remember(ctx context.Context, key string, shipmentID kernel.UUID) error {
	args := m.Called(ctx, key, shipmentID)
	return args.Error(0)
}

// Test fixtures shared across handler tests.

func testBooking(t *testing.T, direction shipment.Direction) shipment.Booking {
	t.Helper()

	sender, err := shipment.NewContact("Rahim Uddin", "+8801712345678", "12 Gulshan Avenue, Dhaka")
	require.NoError(t, err)
	recipient, err := shipment.NewContact("Chan Tai Man", "+85291234567", "88 Nathan Road, Kowloon")
	require.NoError(t, err)
	weight, err := kernel.NewWeightFromKilograms(2.5)
	require.NoError(t, err)

	return shipment.Booking{
		Direction:       direction,
		Sender:          sender,
		Recipient:       recipient,
		Contents:        "Garment samples",
		DeclaredValue:   120,
		Currency:        shipment.CurrencyUSD,
		EstimatedWeight: weight,
		ServiceType:     shipment.ServiceStandard,
		PaymentMethod:   shipment.PaymentCash,
	}
}

func testShipment(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()

	staff := kernel.NewUUID()
	booking := testBooking(t, shipment.BDToHK)
	booking.StaffAssisted = true
	booking.BookedBy = &staff

	s, err := shipment.NewShipment(kernel.NewUUID(), booking)
	require.NoError(t, err)

	for s.Status() != status {
		next := s.Status().NextStatuses(s.Direction())[0]
		require.NoError(t, s.TransitionTo(next, "", "", nil))
	}
	s.ClearPendingEvents()
	return s
}

func testOpenBag(t *testing.T) *bag.Bag {
	t.Helper()

	b, err := bag.NewBag(kernel.NewUUID(), "BAG-00042")
	require.NoError(t, err)
	return b
}

func testSealedBag(t *testing.T, members ...*shipment.Shipment) *bag.Bag {
	t.Helper()

	b := testOpenBag(t)
	for _, member := range members {
		require.NoError(t, b.AddShipment(member, nil))
	}
	require.NoError(t, b.Seal(nil))
	return b
}

func testDraftManifest(t *testing.T) *manifest.Manifest {
	t.Helper()

	m, err := manifest.NewManifest(
		kernel.NewUUID(), "MF202608280042", "BG388", "125-88990011", "",
		time.Now().UTC().Add(12*time.Hour), nil,
	)
	require.NoError(t, err)
	return m
}
