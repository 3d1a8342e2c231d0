package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product status values
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Sale status values
const (
	SaleCompleted = "Completed"
	SaleCancelled = "Cancelled"
)

// User - The person operating the register
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`                   // Never return this in JSON
	Role         string    `gorm:"size:20" json:"role"` // 'superadmin', 'admin', 'vendedor'
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category - Product grouping
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;size:100" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Provider - Who supplies the products
type Provider struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100" json:"name"`
	ContactPerson string `gorm:"size:100" json:"contact_person"`
	PhoneNumber   string `gorm:"size:20" json:"phone_number"`
	Email         string `gorm:"size:100" json:"email"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// Product - The Inventory
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SKU         string          `gorm:"uniqueIndex;size:50" json:"sku"`
	Name        string          `gorm:"size:200" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	Stock       int             `json:"stock"` // never negative, enforced by the sale engine
	Status      string          `gorm:"size:10;default:active" json:"status"`
	CategoryID  *uint           `json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	ProviderID  *uint           `json:"provider_id"`
	Provider    *Provider       `gorm:"constraint:OnDelete:SET NULL" json:"provider,omitempty"`
}

// Client - Registered customers (optional on a sale)
type Client struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200" json:"name"`
	Email       *string    `gorm:"uniqueIndex;size:100" json:"email"`
	PhoneNumber string     `gorm:"size:20" json:"phone_number"`
	Birthday    *time.Time `json:"birthday"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}

// PaymentMethod - How the client pays, with a signed percentage
// adjustment applied to the sale subtotal (e.g. -10.00 for a 10%
// cash discount, 8.50 for an 8.5% card surcharge).
type PaymentMethod struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	Name                 string          `gorm:"uniqueIndex;size:100" json:"name"`
	AdjustmentPercentage decimal.Decimal `gorm:"type:decimal(5,2)" json:"adjustment_percentage"`
	IsActive             bool            `gorm:"default:true" json:"is_active"`
}

// Sale - The Transaction Header
type Sale struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	DateTime        time.Time       `gorm:"autoCreateTime" json:"date_time"`
	UserID          *uint           `json:"user_id"` // Who processed it
	User            *User           `json:"user,omitempty"`
	ClientID        *uint           `json:"client_id"`
	Client          *Client         `json:"client,omitempty"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"` // subtotal before adjustment
	PaymentMethodID *uint           `json:"payment_method_id"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	FinalAmount     decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_amount"` // derived, see ComputeFinalAmount
	Status          string          `gorm:"size:20;default:Completed" json:"status"`
	Details         []SaleDetail    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"details"`
}

// SaleDetail - One line of a sale. UnitPrice is a snapshot taken at
// sale time and does not follow later product price changes.
type SaleDetail struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `json:"sale_id"`
	ProductID uint            `json:"product_id"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
}

// CashCount - The once-per-day register close. Immutable after creation.
type CashCount struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Date           string          `gorm:"uniqueIndex;size:10" json:"date"` // YYYY-MM-DD, unique keeps one close per day
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"expected_amount"`
	CountedAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"counted_amount"`
	Difference     decimal.Decimal `gorm:"type:decimal(10,2)" json:"difference"` // counted - expected
	UserID         *uint           `json:"user_id"`
	User           *User           `json:"user,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ComputeFinalAmount applies a payment method's percentage adjustment
// to a sale subtotal: total * (1 + pct/100), rounded to 2 decimals.
// A nil adjustment (no payment method) leaves the subtotal untouched.
// Every write of a Sale must go through this; final_amount is never
// taken from client input.
func ComputeFinalAmount(total decimal.Decimal, adjustmentPct *decimal.Decimal) decimal.Decimal {
	if adjustmentPct == nil {
		return total.Round(2)
	}
	factor := decimal.NewFromInt(1).Add(adjustmentPct.Div(decimal.NewFromInt(100)))
	return total.Mul(factor).Round(2)
}
