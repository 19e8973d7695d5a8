// Package store defines the contract the upgrade screen consumes from the
// platform store. The screen re-reads the observable fields on every render
// and never mutates them; the three calls are the only mutations it asks for.
package store

import (
	"context"
	"errors"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

var (
	// ErrOperationInFlight is returned when a purchase or restore is
	// attempted while another one has not settled yet.
	ErrOperationInFlight = errors.New("a purchase or restore is already in flight")

	// ErrProductNotFound is returned for a product id the catalog does
	// not contain.
	ErrProductNotFound = errors.New("product not found")
)

// Service is the store surface required by the upgrade screen.
type Service interface {
	// Observable fields, re-read each render cycle.
	IsProUser() bool
	Products() []entity.Product
	IsLoading() bool
	TransactionState() *entity.TransactionState

	// LoadProducts (re)populates the product catalog.
	LoadProducts(ctx context.Context) error

	// Purchase starts a purchase of the given product and blocks until
	// it settles. The result describes how it settled; an error means
	// the call itself failed.
	Purchase(ctx context.Context, product entity.Product) (entity.PurchaseResult, error)

	// RestorePurchases re-queries the store for previously completed
	// purchases and refreshes the entitlement.
	RestorePurchases(ctx context.Context) error
}
