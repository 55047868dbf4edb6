// internal/legacy/store.go
package legacy

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record is absent from the legacy store.
var ErrNotFound = errors.New("legacy record not found")

// Store is the query surface of the legacy Northwind mirror consumed by the
// catalog merge and the copy-on-read reconciliation.
type Store interface {
	// Products returns products not yet copied to the primary store.
	Products(ctx context.Context) ([]Product, error)
	ProductByKey(ctx context.Context, key string) (*Product, error)
	CategoryByID(ctx context.Context, categoryID int) (*Category, error)
	SupplierByID(ctx context.Context, supplierID int) (*Supplier, error)
	Shippers(ctx context.Context) ([]Shipper, error)

	MarkProductCopied(ctx context.Context, productID int) error
	MarkCategoryCopied(ctx context.Context, categoryID int) error
	MarkSupplierCopied(ctx context.Context, supplierID int) error

	Close() error
}
