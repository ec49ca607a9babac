// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcelbridge/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// BagRepoFactory provides access to the bag repository within a transaction.
	BagRepoFactory interface {
		BagRepository() ports.BagRepository
	}

	// ManifestRepoFactory provides access to the manifest repository within a transaction.
	ManifestRepoFactory interface {
		ManifestRepository() ports.ManifestRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations:
	// booking, status transitions, delivery proof and deletion.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// BaggingUoW manages transactions that touch bags and their member
	// shipments together: add/remove membership, seal, unseal, delete.
	// Unseal and delete also read manifest membership, since a bag held by
	// a draft manifest must be released from it first.
	BaggingUoW interface {
		TxManager
		ShipmentRepoFactory
		BagRepoFactory
		ManifestRepoFactory
	}

	// BaggingUoWFactory creates new bagging unit of work instances.
	BaggingUoWFactory interface {
		Create() BaggingUoW
	}

	// ManifestUoW manages the manifest orchestrators, which cascade across
	// all three aggregates in one atomic unit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   manifestRepo := uow.ManifestRepository()
	//   bagRepo := uow.BagRepository()
	//   shipmentRepo := uow.ShipmentRepository()
	//   // ... perform the cascade
	//
	//   err = uow.Commit(ctx)
	ManifestUoW interface {
		TxManager
		ShipmentRepoFactory
		BagRepoFactory
		ManifestRepoFactory
	}

	// ManifestUoWFactory creates new manifest unit of work instances.
	ManifestUoWFactory interface {
		Create() ManifestUoW
	}
)
