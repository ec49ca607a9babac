package cmd

import (
	"fmt"

	httpin "parcelbridge/internal/adapters/in/http"
	"parcelbridge/internal/adapters/out/export"
	"parcelbridge/internal/adapters/out/postgres"
	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/application/usecases/queries"
	"parcelbridge/internal/core/ports"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	exporter   ports.ExportGenerator
	dedup      ports.BookingDeduplicator
	log        zerolog.Logger
}

// NewCompositionRoot wires the application's use cases over the shared
// database handle. dedup may be nil when no deduplication store is
// configured.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, dedup ports.BookingDeduplicator, log zerolog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		exporter:   export.NewGenerator(),
		dedup:      dedup,
		log:        log,
	}
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) baggingUoWFactory() commands.BaggingUoWFactory {
	return FuncBaggingUoWFactory(func() commands.BaggingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) manifestUoWFactory() commands.ManifestUoWFactory {
	return FuncManifestUoWFactory(func() commands.ManifestUoW {
		return c.uowFactory.Create()
	})
}

// CreateHandlers builds every command and query handler the HTTP server
// dispatches to.
func (c *CompositionRoot) CreateHandlers() (httpin.Handlers, error) {
	bookShipment, err := commands.NewBookShipmentCommandHandler(c.shipmentUoWFactory(), c.dedup, c.log)
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create book shipment handler: %w", err)
	}

	updateStatus, err := commands.NewUpdateShipmentStatusCommandHandler(c.shipmentUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create update shipment status handler: %w", err)
	}

	deleteShipment, err := commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create delete shipment handler: %w", err)
	}

	attachProof, err := commands.NewAttachDeliveryProofCommandHandler(c.shipmentUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create attach delivery proof handler: %w", err)
	}

	createBag, err := commands.NewCreateBagCommandHandler(c.baggingUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create bag handler: %w", err)
	}

	addShipmentToBag, err := commands.NewAddShipmentToBagCommandHandler(c.baggingUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create add shipment to bag handler: %w", err)
	}

	removeShipmentFromBag, err := commands.NewRemoveShipmentFromBagCommandHandler(c.baggingUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create remove shipment from bag handler: %w", err)
	}

	sealBag, err := commands.NewSealBagCommandHandler(c.baggingUoWFactory(), c.exporter)
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create seal bag handler: %w", err)
	}

	unsealBag, err := commands.NewUnsealBagCommandHandler(c.baggingUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create unseal bag handler: %w", err)
	}

	deleteBag, err := commands.NewDeleteBagCommandHandler(c.baggingUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create delete bag handler: %w", err)
	}

	createManifest, err := commands.NewCreateManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create manifest handler: %w", err)
	}

	addBagToManifest, err := commands.NewAddBagToManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create add bag to manifest handler: %w", err)
	}

	removeBagFromManifest, err := commands.NewRemoveBagFromManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create remove bag from manifest handler: %w", err)
	}

	addShipmentToManifest, err := commands.NewAddShipmentToManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create add shipment to manifest handler: %w", err)
	}

	removeShipmentFromManifest, err := commands.NewRemoveShipmentFromManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create remove shipment from manifest handler: %w", err)
	}

	finalizeManifest, err := commands.NewFinalizeManifestCommandHandler(c.manifestUoWFactory(), c.exporter)
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create finalize manifest handler: %w", err)
	}

	departManifest, err := commands.NewDepartManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create depart manifest handler: %w", err)
	}

	markInTransit, err := commands.NewMarkManifestInTransitCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create mark manifest in transit handler: %w", err)
	}

	arriveManifest, err := commands.NewArriveManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create arrive manifest handler: %w", err)
	}

	deleteManifest, err := commands.NewDeleteManifestCommandHandler(c.manifestUoWFactory())
	if err != nil {
		return httpin.Handlers{}, fmt.Errorf("create delete manifest handler: %w", err)
	}

	return httpin.Handlers{
		BookShipment:         bookShipment,
		UpdateShipmentStatus: updateStatus,
		DeleteShipment:       deleteShipment,
		AttachDeliveryProof:  attachProof,

		CreateBag:             createBag,
		AddShipmentToBag:      addShipmentToBag,
		RemoveShipmentFromBag: removeShipmentFromBag,
		SealBag:               sealBag,
		UnsealBag:             unsealBag,
		DeleteBag:             deleteBag,

		CreateManifest:             createManifest,
		AddBagToManifest:           addBagToManifest,
		RemoveBagFromManifest:      removeBagFromManifest,
		AddShipmentToManifest:      addShipmentToManifest,
		RemoveShipmentFromManifest: removeShipmentFromManifest,
		FinalizeManifest:           finalizeManifest,
		DepartManifest:             departManifest,
		MarkManifestInTransit:      markInTransit,
		ArriveManifest:             arriveManifest,
		DeleteManifest:             deleteManifest,

		ShipmentTracking:   c.CreateGetShipmentTrackingQueryHandler(),
		DepartingManifests: c.CreateGetDepartingManifestsQueryHandler(),
		BagOverview:        c.CreateGetBagOverviewQueryHandler(),
	}, nil
}

func (c *CompositionRoot) CreateGetShipmentTrackingQueryHandler() queries.GetShipmentTrackingQueryHandler {
	return queries.NewGetShipmentTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDepartingManifestsQueryHandler() queries.GetDepartingManifestsQueryHandler {
	return queries.NewGetDepartingManifestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBagOverviewQueryHandler() queries.GetBagOverviewQueryHandler {
	return queries.NewGetBagOverviewQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncBaggingUoWFactory func() commands.BaggingUoW

func (f FuncBaggingUoWFactory) Create() commands.BaggingUoW {
	return f()
}

type FuncManifestUoWFactory func() commands.ManifestUoW

func (f FuncManifestUoWFactory) Create() commands.ManifestUoW {
	return f()
}
