package shipment_test

import (
	"testing"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/domain/model/tracking"
	"parcelbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking(t *testing.T, direction shipment.Direction) shipment.Booking {
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

func bookShipment(t *testing.T, direction shipment.Direction) *shipment.Shipment {
	t.Helper()

	s, err := shipment.NewShipment(kernel.NewUUID(), validBooking(t, direction))
	require.NoError(t, err)
	s.ClearPendingEvents()
	return s
}

func TestNewShipment(t *testing.T) {
	t.Run("self-service booking starts pending without AWB", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), validBooking(t, shipment.BDToHK))

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Nil(t, s.AWB())
		assert.Nil(t, s.BookedBy())
		require.Len(t, s.PendingEvents(), 1)
		assert.Equal(t, "Shipment booked", s.PendingEvents()[0].Description())
		assert.Equal(t, "PENDING", s.PendingEvents()[0].Status())
	})

	t.Run("staff booking starts booked with AWB", func(t *testing.T) {
		staff := kernel.NewUUID()
		booking := validBooking(t, shipment.BDToHK)
		booking.StaffAssisted = true
		booking.BookedBy = &staff

		s, err := shipment.NewShipment(kernel.NewUUID(), booking)

		require.NoError(t, err)
		assert.Equal(t, shipment.Booked, s.Status())
		require.NotNil(t, s.AWB())
		assert.Equal(t, "DH", s.AWB().String()[:2])
		require.Len(t, s.PendingEvents(), 1)
		assert.Equal(t, "BOOKED", s.PendingEvents()[0].Status())
	})

	t.Run("staff booking requires actor", func(t *testing.T) {
		booking := validBooking(t, shipment.BDToHK)
		booking.StaffAssisted = true

		_, err := shipment.NewShipment(kernel.NewUUID(), booking)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("countries derive from direction", func(t *testing.T) {
		s := bookShipment(t, shipment.HKToBD)

		assert.Equal(t, "HK", s.Sender().Country())
		assert.Equal(t, "BD", s.Recipient().Country())
	})

	t.Run("missing contents is rejected", func(t *testing.T) {
		booking := validBooking(t, shipment.BDToHK)
		booking.Contents = ""

		_, err := shipment.NewShipment(kernel.NewUUID(), booking)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "contents")
	})

	t.Run("zero estimated weight is rejected", func(t *testing.T) {
		booking := validBooking(t, shipment.BDToHK)
		booking.EstimatedWeight = kernel.ZeroWeight()

		_, err := shipment.NewShipment(kernel.NewUUID(), booking)

		require.Error(t, err)
	})

	t.Run("negative declared value is rejected", func(t *testing.T) {
		booking := validBooking(t, shipment.BDToHK)
		booking.DeclaredValue = -1

		_, err := shipment.NewShipment(kernel.NewUUID(), booking)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestShipmentTransitionTo(t *testing.T) {
	t.Run("first move out of pending assigns AWB and one event", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		actor := kernel.NewUUID()

		err := s.TransitionTo(shipment.Booked, "Dhaka Office", "", &actor)

		require.NoError(t, err)
		assert.Equal(t, shipment.Booked, s.Status())
		require.NotNil(t, s.AWB())
		require.Len(t, s.PendingEvents(), 1)
		event := s.PendingEvents()[0]
		assert.Equal(t, tracking.KindStatusChange, event.Kind())
		assert.Equal(t, "Status updated from PENDING to BOOKED", event.Description())
		assert.Equal(t, "Dhaka Office", event.Location())
	})

	t.Run("AWB is assigned once", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)

		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		first := s.AWB().String()
		require.NoError(t, s.TransitionTo(shipment.ReceivedAtBD, "", "", nil))

		assert.Equal(t, first, s.AWB().String())
	})

	t.Run("skip-ahead is rejected", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)

		err := s.TransitionTo(shipment.ReceivedAtBD, "", "", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Empty(t, s.PendingEvents())
	})

	t.Run("exception reachable from mid-chain", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))

		err := s.TransitionTo(shipment.ExceptionDamaged, "Warehouse", "crushed box", nil)

		require.NoError(t, err)
		assert.Equal(t, shipment.ExceptionDamaged, s.Status())
	})

	t.Run("no moves out of exception", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, s.TransitionTo(shipment.ExceptionDamaged, "", "", nil))

		err := s.TransitionTo(shipment.ReceivedAtBD, "", "", nil)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestShipmentCascades(t *testing.T) {
	t.Run("mark bagged from booked", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		s.ClearPendingEvents()

		err := s.MarkBagged("BAG-00042", nil)

		require.NoError(t, err)
		assert.Equal(t, shipment.BaggedForExport, s.Status())
		require.Len(t, s.PendingEvents(), 1)
		assert.Equal(t, "Added to bag BAG-00042", s.PendingEvents()[0].Description())
	})

	t.Run("mark bagged rejects import corridor", func(t *testing.T) {
		s := bookShipment(t, shipment.HKToBD)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))

		err := s.MarkBagged("BAG-00042", nil)

		require.ErrorIs(t, err, errs.ErrNotEligible)
	})

	t.Run("mark bagged rejects pending shipment", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)

		err := s.MarkBagged("BAG-00042", nil)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("seal announcement keeps status", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, s.MarkBagged("BAG-00042", nil))
		s.ClearPendingEvents()

		require.NoError(t, s.AnnounceSealed("BAG-00042", nil))

		assert.Equal(t, shipment.BaggedForExport, s.Status())
		require.Len(t, s.PendingEvents(), 1)
		assert.Equal(t, tracking.KindBagSealed, s.PendingEvents()[0].Kind())
		assert.Equal(t, "BAGGED_FOR_EXPORT", s.PendingEvents()[0].Status())
	})

	t.Run("return to warehouse reverts status", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, s.MarkBagged("BAG-00042", nil))
		s.ClearPendingEvents()

		require.NoError(t, s.ReturnToWarehouse("Removed from bag BAG-00042", nil))

		assert.Equal(t, shipment.ReceivedAtBD, s.Status())
		require.Len(t, s.PendingEvents(), 1)
	})

	t.Run("delivered is corridor terminal", func(t *testing.T) {
		export := bookShipment(t, shipment.BDToHK)
		require.NoError(t, export.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, export.MarkDelivered("Chan Tai Man", "left at desk", nil))
		assert.Equal(t, shipment.DeliveredInHK, export.Status())

		imported := bookShipment(t, shipment.HKToBD)
		require.NoError(t, imported.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, imported.MarkDelivered("Rahim Uddin", "", nil))
		assert.Equal(t, shipment.Delivered, imported.Status())

		require.ErrorIs(t, imported.MarkDelivered("again", "", nil), errs.ErrInvalidState)
	})

	t.Run("delivery cannot leave an exception", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, s.TransitionTo(shipment.ExceptionCustomsHold, "Customs", "", nil))
		s.ClearPendingEvents()

		err := s.MarkDelivered("Chan Tai Man", "", nil)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, shipment.ExceptionCustomsHold, s.Status())
		assert.Empty(t, s.PendingEvents())
	})

	t.Run("hand to airline records flight and mawb", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))
		s.ClearPendingEvents()

		require.NoError(t, s.MarkHandedToAirline("CX612", "160-12345675", nil))

		assert.Equal(t, shipment.HandedToAirline, s.Status())
		assert.Equal(t, "160-12345675", s.MAWBNumber())
		assert.Equal(t, "Departed on flight CX612", s.PendingEvents()[0].Description())
	})

	t.Run("in transit follows corridor", func(t *testing.T) {
		export := bookShipment(t, shipment.BDToHK)
		require.NoError(t, export.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, export.MarkInTransit(nil))
		assert.Equal(t, shipment.InTransitToHK, export.Status())

		imported := bookShipment(t, shipment.HKToBD)
		require.NoError(t, imported.TransitionTo(shipment.Booked, "", "", nil))
		require.NoError(t, imported.MarkInTransit(nil))
		assert.Equal(t, shipment.InTransitToBD, imported.Status())
	})
}

func TestShipmentEnsureDeletable(t *testing.T) {
	t.Run("pending booking is deletable", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)

		require.NoError(t, s.EnsureDeletable())
	})

	t.Run("processed shipment is not deletable", func(t *testing.T) {
		s := bookShipment(t, shipment.BDToHK)
		require.NoError(t, s.TransitionTo(shipment.Booked, "", "", nil))

		require.ErrorIs(t, s.EnsureDeletable(), errs.ErrInvalidState)
	})
}

func TestRestoreShipment(t *testing.T) {
	t.Run("round trips through snapshot", func(t *testing.T) {
		original := bookShipment(t, shipment.BDToHK)
		require.NoError(t, original.TransitionTo(shipment.Booked, "", "", nil))

		restored, err := shipment.RestoreShipment(shipment.ShipmentSnapshot{
			ID:              original.ID(),
			AWB:             original.AWB(),
			Direction:       original.Direction(),
			Status:          original.Status(),
			Sender:          original.Sender(),
			Recipient:       original.Recipient(),
			Contents:        original.Contents(),
			DeclaredValue:   original.DeclaredValue(),
			Currency:        original.Currency(),
			EstimatedWeight: original.EstimatedWeight(),
			ServiceType:     original.ServiceType(),
			PaymentMethod:   original.PaymentMethod(),
			PaymentStatus:   original.PaymentStatus(),
			BookedAt:        original.BookedAt(),
			UpdatedAt:       original.UpdatedAt(),
		})

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Empty(t, restored.PendingEvents())
	})

	t.Run("invalid snapshot is rejected", func(t *testing.T) {
		_, err := shipment.RestoreShipment(shipment.ShipmentSnapshot{})

		require.Error(t, err)
	})
}
