// internal/legacy/models.go
package legacy

import (
	"time"
)

// Product is a catalog item in the legacy Northwind mirror. Key is derived
// from the product name on first read and shares the primary store's slug
// namespace. CopiedToStore marks a product already reconciled into the
// primary store; copied products are excluded from the merged listing.
type Product struct {
	ID              string    `json:"id,omitempty"`
	ProductID       int       `json:"product_id"`
	Key             string    `json:"key"`
	ProductName     string    `json:"product_name"`
	QuantityPerUnit string    `json:"quantity_per_unit,omitempty"`
	UnitPrice       float64   `json:"unit_price"`
	UnitsInStock    int       `json:"units_in_stock"`
	Discontinued    bool      `json:"discontinued"`
	CategoryID      int       `json:"category_id"`
	SupplierID      int       `json:"supplier_id"`
	ViewCount       int64     `json:"view_count"`
	AddedAt         time.Time `json:"added_at"`
	CopiedToStore   bool      `json:"copied_to_store"`
}

type Category struct {
	ID            string `json:"id,omitempty"`
	CategoryID    int    `json:"category_id"`
	CategoryName  string `json:"category_name"`
	Description   string `json:"description,omitempty"`
	CopiedToStore bool   `json:"copied_to_store"`
}

type Supplier struct {
	ID            string `json:"id,omitempty"`
	SupplierID    int    `json:"supplier_id"`
	CompanyName   string `json:"company_name"`
	ContactName   string `json:"contact_name,omitempty"`
	HomePage      string `json:"home_page,omitempty"`
	CopiedToStore bool   `json:"copied_to_store"`
}

// Shipper and legacy orders are read-only views; they are never migrated.
type Shipper struct {
	ID          string `json:"id,omitempty"`
	ShipperID   int    `json:"shipper_id"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone,omitempty"`
}

// Catalog item capability methods (shared with primary-store games).

func (p *Product) ItemKey() string         { return p.Key }
func (p *Product) ItemName() string        { return p.ProductName }
func (p *Product) ItemPrice() float64      { return p.UnitPrice }
func (p *Product) ItemUnitsInStock() int   { return p.UnitsInStock }
func (p *Product) ItemViewCount() int64    { return p.ViewCount }
func (p *Product) ItemDiscontinued() bool  { return p.Discontinued }
func (p *Product) ItemAddedAt() time.Time  { return p.AddedAt }
func (p *Product) ItemCommentCount() int64 { return 0 }
