// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order doubles as the basket while Status is open. Details reference games
// by key so basket lines survive a legacy product being reconciled mid-order.
type Order struct {
	BaseModel
	CustomerID       uuid.UUID     `json:"customer_id" gorm:"type:uuid;not null;index"`
	Status           OrderStatus   `json:"status" gorm:"type:varchar(20);default:'open';index"`
	OrderedAt        *time.Time    `json:"ordered_at"`
	ShippedAt        *time.Time    `json:"shipped_at"`
	PaymentMethod    PaymentMethod `json:"payment_method,omitempty" gorm:"type:varchar(20)"`
	PaymentReference string        `json:"payment_reference,omitempty" gorm:"size:255"`
	InvoiceNumber    string        `json:"invoice_number,omitempty" gorm:"size:50;index"`

	Customer *User         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Details  []OrderDetail `json:"details,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderDetail struct {
	BaseModel
	OrderID  uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	GameKey  string    `json:"game_key" gorm:"size:255;not null;index"`
	Price    float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity int       `json:"quantity" gorm:"not null"`
	Discount float64   `json:"discount" gorm:"type:decimal(4,3);default:0"`

	Order *Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

// Total sums detail lines with their discounts applied.
func (o *Order) Total() float64 {
	var total float64
	for _, d := range o.Details {
		total += d.Price * float64(d.Quantity) * (1 - d.Discount)
	}
	return total
}
