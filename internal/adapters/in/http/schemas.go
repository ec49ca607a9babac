package http

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
}

type bookShipmentRequest struct {
	Direction           string         `json:"direction"            validate:"required,oneof=BD_TO_HK HK_TO_BD"`
	Sender              contactRequest `json:"sender"               validate:"required"`
	Recipient           contactRequest `json:"recipient"            validate:"required"`
	Contents            string         `json:"contents"             validate:"required"`
	DeclaredValue       float64        `json:"declared_value"       validate:"required,gt=0"`
	Currency            string         `json:"currency"             validate:"required,oneof=BDT HKD USD"`
	EstimatedWeightGr   int64          `json:"estimated_weight_grams" validate:"required,gt=0"`
	ServiceType         string         `json:"service_type"         validate:"required,oneof=STANDARD EXPRESS"`
	PaymentMethod       string         `json:"payment_method"       validate:"required,oneof=PREPAID CASH CREDIT COD"`
	SpecialInstructions string         `json:"special_instructions"`
	IsFragile           bool           `json:"is_fragile"`
	IsLiquid            bool           `json:"is_liquid"`
	StaffAssisted       bool           `json:"staff_assisted"`
}

type updateStatusRequest struct {
	Status   string `json:"status"   validate:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type deliveryProofRequest struct {
	ReceiverName string    `json:"receiver_name" validate:"required"`
	Notes        string    `json:"notes"`
	SignatureRef string    `json:"signature_ref"`
	DeliveredAt  time.Time `json:"delivered_at"  validate:"required"`
}

type bagMemberRequest struct {
	ShipmentID string `json:"shipment_id" validate:"required,uuid"`
}

type unsealBagRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type createManifestRequest struct {
	FlightNumber     string    `json:"flight_number"     validate:"required"`
	MAWBNumber       string    `json:"mawb_number"       validate:"required"`
	AirlineReference string    `json:"airline_reference"`
	DepartureAt      time.Time `json:"departure_at"      validate:"required"`
	InitialBagIDs    []string  `json:"initial_bag_ids"   validate:"dive,uuid"`
}

type manifestBagRequest struct {
	BagID string `json:"bag_id" validate:"required,uuid"`
}

type manifestShipmentRequest struct {
	ShipmentID string `json:"shipment_id" validate:"required,uuid"`
}

// --- Response types ---

type bookShipmentResponse struct {
	ShipmentID string `json:"shipment_id"`
	AWB        string `json:"awb,omitempty"`
	Status     string `json:"status"`
}

type createBagResponse struct {
	BagID  string `json:"bag_id"`
	Number string `json:"number"`
}

type createManifestResponse struct {
	ManifestID string `json:"manifest_id"`
	Number     string `json:"number"`
}

type trackingEventResponse struct {
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type trackingResponse struct {
	AWB           string                  `json:"awb"`
	Direction     string                  `json:"direction"`
	Status        string                  `json:"status"`
	Origin        string                  `json:"origin"`
	Destination   string                  `json:"destination"`
	RecipientName string                  `json:"recipient_name"`
	BookedAt      time.Time               `json:"booked_at"`
	Events        []trackingEventResponse `json:"events"`
}

type departingManifestResponse struct {
	Number       string    `json:"number"`
	FlightNumber string    `json:"flight_number"`
	DepartureAt  time.Time `json:"departure_at"`
	TotalBags    int       `json:"total_bags"`
	TotalParcels int       `json:"total_parcels"`
}

type bagOverviewResponse struct {
	Number      string `json:"number"`
	Status      string `json:"status"`
	ParcelCount int    `json:"parcel_count"`
	WeightGrams int64  `json:"weight_grams"`
}
