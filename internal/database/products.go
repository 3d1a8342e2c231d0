package database

import (
	"errors"

	"go-pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bulk price update targets
const (
	TargetCost = "cost"
	TargetSale = "sale"
	TargetBoth = "both"
)

// BulkPriceUpdate multiplies the cost and/or sale prices of the selected
// products by (1 + percentage/100), all inside one transaction: either
// every product updates or none does.
func BulkPriceUpdate(db *gorm.DB, productIDs []uint, percentage decimal.Decimal, target string) (int, error) {
	if target != TargetCost && target != TargetSale && target != TargetBoth {
		return 0, &ValidationError{Message: "update_target must be 'cost', 'sale' or 'both'"}
	}

	multiplier := decimal.NewFromInt(1).Add(percentage.Div(decimal.NewFromInt(100)))

	var products []models.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, &NotFoundError{Entity: "products"}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range products {
			p := &products[i]
			if target == TargetCost || target == TargetBoth {
				p.CostPrice = p.CostPrice.Mul(multiplier).Round(2)
			}
			if target == TargetSale || target == TargetBoth {
				p.SalePrice = p.SalePrice.Mul(multiplier).Round(2)
			}
			if err := tx.Save(p).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// AddStock applies a signed delta to a product's stock. The result may
// not go negative.
func AddStock(db *gorm.DB, productID uint, delta int) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: productID}
		}
		return nil, err
	}

	if product.Stock+delta < 0 {
		return nil, &ValidationError{Message: "stock cannot go negative"}
	}

	product.Stock += delta
	if err := db.Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
