// Package http exposes the parcel workflow over REST. Handlers bind and
// validate request schemas, translate them into commands and queries, and
// leave error mapping to the central error handler.
package http

import (
	"net/http"
	"strconv"
	"time"

	"parcelbridge/internal/api/metrics"
	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/application/usecases/queries"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerIdempotencyKey = "X-Idempotency-Key"
	headerActorID        = "X-Actor-ID"

	defaultDepartureWindow = 48 * time.Hour
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	BookShipment         commands.BookShipmentCommandHandler
	UpdateShipmentStatus commands.UpdateShipmentStatusCommandHandler
	DeleteShipment       commands.DeleteShipmentCommandHandler
	AttachDeliveryProof  commands.AttachDeliveryProofCommandHandler

	CreateBag             commands.CreateBagCommandHandler
	AddShipmentToBag      commands.AddShipmentToBagCommandHandler
	RemoveShipmentFromBag commands.RemoveShipmentFromBagCommandHandler
	SealBag               commands.SealBagCommandHandler
	UnsealBag             commands.UnsealBagCommandHandler
	DeleteBag             commands.DeleteBagCommandHandler

	CreateManifest             commands.CreateManifestCommandHandler
	AddBagToManifest           commands.AddBagToManifestCommandHandler
	RemoveBagFromManifest      commands.RemoveBagFromManifestCommandHandler
	AddShipmentToManifest      commands.AddShipmentToManifestCommandHandler
	RemoveShipmentFromManifest commands.RemoveShipmentFromManifestCommandHandler
	FinalizeManifest           commands.FinalizeManifestCommandHandler
	DepartManifest             commands.DepartManifestCommandHandler
	MarkManifestInTransit      commands.MarkManifestInTransitCommandHandler
	ArriveManifest             commands.ArriveManifestCommandHandler
	DeleteManifest             commands.DeleteManifestCommandHandler

	ShipmentTracking   queries.GetShipmentTrackingQueryHandler
	DepartingManifests queries.GetDepartingManifestsQueryHandler
	BagOverview        queries.GetBagOverviewQueryHandler
}

// Server dispatches HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.BookShipment)
	api.POST("/shipments/:id/status", s.UpdateShipmentStatus)
	api.POST("/shipments/:id/delivery-proof", s.AttachDeliveryProof)
	api.DELETE("/shipments/:id", s.DeleteShipment)
	api.GET("/tracking/:awb", s.GetShipmentTracking)

	api.POST("/bags", s.CreateBag)
	api.GET("/bags", s.GetBagOverview)
	api.POST("/bags/:id/shipments", s.AddShipmentToBag)
	api.DELETE("/bags/:id/shipments/:shipmentID", s.RemoveShipmentFromBag)
	api.POST("/bags/:id/seal", s.SealBag)
	api.POST("/bags/:id/unseal", s.UnsealBag)
	api.DELETE("/bags/:id", s.DeleteBag)

	api.POST("/manifests", s.CreateManifest)
	api.GET("/manifests/departing", s.GetDepartingManifests)
	api.POST("/manifests/:id/bags", s.AddBagToManifest)
	api.DELETE("/manifests/:id/bags/:bagID", s.RemoveBagFromManifest)
	api.POST("/manifests/:id/shipments", s.AddShipmentToManifest)
	api.DELETE("/manifests/:id/shipments/:shipmentID", s.RemoveShipmentFromManifest)
	api.POST("/manifests/:id/finalize", s.FinalizeManifest)
	api.POST("/manifests/:id/depart", s.DepartManifest)
	api.POST("/manifests/:id/in-transit", s.MarkManifestInTransit)
	api.POST("/manifests/:id/arrive", s.ArriveManifest)
	api.DELETE("/manifests/:id", s.DeleteManifest)
}

// BookShipment handles POST /api/v1/shipments.
func (s *Server) BookShipment(c echo.Context) error {
	var req bookShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := bookingFromRequest(req, actorFrom(c))
	if err != nil {
		return err
	}

	cmd, err := commands.NewBookShipmentCommand(booking, c.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return err
	}

	result, err := s.handlers.BookShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	channel := "customer"
	if req.StaffAssisted {
		channel = "staff"
	}
	metrics.ShipmentsBookedTotal.WithLabelValues(req.Direction, channel).Inc()

	return c.JSON(http.StatusCreated, bookShipmentResponse{
		ShipmentID: result.ShipmentID.String(),
		AWB:        result.AWB,
		Status:     result.Status,
	})
}

// UpdateShipmentStatus handles POST /api/v1/shipments/:id/status.
func (s *Server) UpdateShipmentStatus(c echo.Context) error {
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	next, err := shipment.StatusFromName(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(shipmentID, next, req.Location, req.Notes, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateShipmentStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.NoContent(http.StatusNoContent)
}

// AttachDeliveryProof handles POST /api/v1/shipments/:id/delivery-proof.
func (s *Server) AttachDeliveryProof(c echo.Context) error {
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req deliveryProofRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewAttachDeliveryProofCommand(
		shipmentID, req.ReceiverName, req.Notes, req.SignatureRef, actorFrom(c), req.DeliveredAt)
	if err != nil {
		return err
	}

	if err = s.handlers.AttachDeliveryProof.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(c echo.Context) error {
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetShipmentTracking handles GET /api/v1/tracking/:awb.
func (s *Server) GetShipmentTracking(c echo.Context) error {
	query, err := queries.NewGetShipmentTrackingQuery(c.Param("awb"))
	if err != nil {
		return err
	}

	tracking, err := s.handlers.ShipmentTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	events := make([]trackingEventResponse, len(tracking.Events))
	for i, event := range tracking.Events {
		events[i] = trackingEventResponse{
			Kind:        event.Kind,
			Status:      event.Status,
			Description: event.Description,
			Location:    event.Location,
			OccurredAt:  event.OccurredAt,
		}
	}

	return c.JSON(http.StatusOK, trackingResponse{
		AWB:           tracking.AWB,
		Direction:     tracking.Direction,
		Status:        tracking.Status,
		Origin:        tracking.Origin,
		Destination:   tracking.Destination,
		RecipientName: tracking.RecipientName,
		BookedAt:      tracking.BookedAt,
		Events:        events,
	})
}

// CreateBag handles POST /api/v1/bags.
func (s *Server) CreateBag(c echo.Context) error {
	cmd, err := commands.NewCreateBagCommand(actorFrom(c))
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateBag.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createBagResponse{
		BagID:  result.BagID.String(),
		Number: result.Number,
	})
}

// GetBagOverview handles GET /api/v1/bags.
func (s *Server) GetBagOverview(c echo.Context) error {
	bags, err := s.handlers.BagOverview.Handle(c.Request().Context(), queries.NewGetBagOverviewQuery())
	if err != nil {
		return err
	}

	response := make([]bagOverviewResponse, len(bags))
	for i, b := range bags {
		response[i] = bagOverviewResponse{
			Number:      b.Number,
			Status:      b.Status,
			ParcelCount: b.ParcelCount,
			WeightGrams: b.WeightGrams,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// AddShipmentToBag handles POST /api/v1/bags/:id/shipments.
func (s *Server) AddShipmentToBag(c echo.Context) error {
	bagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req bagMemberRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipmentID, err := parseID("shipmentID", req.ShipmentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddShipmentToBagCommand(bagID, shipmentID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.AddShipmentToBag.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveShipmentFromBag handles DELETE /api/v1/bags/:id/shipments/:shipmentID.
func (s *Server) RemoveShipmentFromBag(c echo.Context) error {
	bagID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	shipmentID, err := pathID(c, "shipmentID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveShipmentFromBagCommand(bagID, shipmentID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.RemoveShipmentFromBag.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SealBag handles POST /api/v1/bags/:id/seal.
func (s *Server) SealBag(c echo.Context) error {
	bagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewSealBagCommand(bagID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.SealBag.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// UnsealBag handles POST /api/v1/bags/:id/unseal.
func (s *Server) UnsealBag(c echo.Context) error {
	bagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req unsealBagRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewUnsealBagCommand(bagID, req.Reason, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.UnsealBag.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteBag handles DELETE /api/v1/bags/:id.
func (s *Server) DeleteBag(c echo.Context) error {
	bagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteBagCommand(bagID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteBag.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateManifest handles POST /api/v1/manifests.
func (s *Server) CreateManifest(c echo.Context) error {
	var req createManifestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bagIDs := make([]kernel.UUID, 0, len(req.InitialBagIDs))
	for _, raw := range req.InitialBagIDs {
		bagID, err := parseID("bagID", raw)
		if err != nil {
			return err
		}
		bagIDs = append(bagIDs, bagID)
	}

	cmd, err := commands.NewCreateManifestCommand(
		req.FlightNumber, req.MAWBNumber, req.AirlineReference, req.DepartureAt, bagIDs, actorFrom(c))
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateManifest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createManifestResponse{
		ManifestID: result.ManifestID.String(),
		Number:     result.Number,
	})
}

// GetDepartingManifests handles GET /api/v1/manifests/departing.
func (s *Server) GetDepartingManifests(c echo.Context) error {
	window := defaultDepartureWindow
	if raw := c.QueryParam("window_hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("window_hours", err)
		}
		window = time.Duration(hours) * time.Hour
	}

	query, err := queries.NewGetDepartingManifestsQuery(window)
	if err != nil {
		return err
	}

	manifests, err := s.handlers.DepartingManifests.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]departingManifestResponse, len(manifests))
	for i, m := range manifests {
		response[i] = departingManifestResponse{
			Number:       m.Number,
			FlightNumber: m.FlightNumber,
			DepartureAt:  m.DepartureAt,
			TotalBags:    m.TotalBags,
			TotalParcels: m.TotalParcels,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// AddBagToManifest handles POST /api/v1/manifests/:id/bags.
func (s *Server) AddBagToManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req manifestBagRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bagID, err := parseID("bagID", req.BagID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddBagToManifestCommand(manifestID, bagID)
	if err != nil {
		return err
	}

	if err = s.handlers.AddBagToManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveBagFromManifest handles DELETE /api/v1/manifests/:id/bags/:bagID.
func (s *Server) RemoveBagFromManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bagID, err := pathID(c, "bagID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveBagFromManifestCommand(manifestID, bagID)
	if err != nil {
		return err
	}

	if err = s.handlers.RemoveBagFromManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AddShipmentToManifest handles POST /api/v1/manifests/:id/shipments.
func (s *Server) AddShipmentToManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req manifestShipmentRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipmentID, err := parseID("shipmentID", req.ShipmentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddShipmentToManifestCommand(manifestID, shipmentID)
	if err != nil {
		return err
	}

	if err = s.handlers.AddShipmentToManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveShipmentFromManifest handles DELETE /api/v1/manifests/:id/shipments/:shipmentID.
func (s *Server) RemoveShipmentFromManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	shipmentID, err := pathID(c, "shipmentID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveShipmentFromManifestCommand(manifestID, shipmentID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.RemoveShipmentFromManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// FinalizeManifest handles POST /api/v1/manifests/:id/finalize.
func (s *Server) FinalizeManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewFinalizeManifestCommand(manifestID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.FinalizeManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	metrics.ManifestsFinalizedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// DepartManifest handles POST /api/v1/manifests/:id/depart.
func (s *Server) DepartManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDepartManifestCommand(manifestID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.DepartManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkManifestInTransit handles POST /api/v1/manifests/:id/in-transit.
func (s *Server) MarkManifestInTransit(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkManifestInTransitCommand(manifestID, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.MarkManifestInTransit.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ArriveManifest handles POST /api/v1/manifests/:id/arrive.
func (s *Server) ArriveManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewArriveManifestCommand(manifestID)
	if err != nil {
		return err
	}

	if err = s.handlers.ArriveManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteManifest handles DELETE /api/v1/manifests/:id.
func (s *Server) DeleteManifest(c echo.Context) error {
	manifestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteManifestCommand(manifestID)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteManifest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func bookingFromRequest(req bookShipmentRequest, actor *kernel.UUID) (shipment.Booking, error) {
	direction, err := shipment.DirectionFromName(req.Direction)
	if err != nil {
		return shipment.Booking{}, err
	}
	sender, err := shipment.NewContact(req.Sender.Name, req.Sender.Phone, req.Sender.Address)
	if err != nil {
		return shipment.Booking{}, err
	}
	recipient, err := shipment.NewContact(req.Recipient.Name, req.Recipient.Phone, req.Recipient.Address)
	if err != nil {
		return shipment.Booking{}, err
	}
	weight, err := kernel.NewWeight(req.EstimatedWeightGr)
	if err != nil {
		return shipment.Booking{}, err
	}
	serviceType, err := shipment.ServiceTypeFromName(req.ServiceType)
	if err != nil {
		return shipment.Booking{}, err
	}
	paymentMethod, err := shipment.PaymentMethodFromName(req.PaymentMethod)
	if err != nil {
		return shipment.Booking{}, err
	}

	booking := shipment.Booking{
		Direction:           direction,
		Sender:              sender,
		Recipient:           recipient,
		Contents:            req.Contents,
		DeclaredValue:       req.DeclaredValue,
		Currency:            shipment.Currency(req.Currency),
		EstimatedWeight:     weight,
		ServiceType:         serviceType,
		PaymentMethod:       paymentMethod,
		SpecialInstructions: req.SpecialInstructions,
		IsFragile:           req.IsFragile,
		IsLiquid:            req.IsLiquid,
		StaffAssisted:       req.StaffAssisted,
	}
	if req.StaffAssisted {
		if actor == nil {
			return shipment.Booking{}, errs.NewValueIsRequiredError(headerActorID)
		}
		booking.BookedBy = actor
	}

	return booking, nil
}

func pathID(c echo.Context, param string) (kernel.UUID, error) {
	return parseID(param, c.Param(param))
}

func parseID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func actorFrom(c echo.Context) *kernel.UUID {
	raw := c.Request().Header.Get(headerActorID)
	if raw == "" {
		return nil
	}

	actor, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil
	}
	return &actor
}
