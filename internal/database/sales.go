package database

import (
	"errors"
	"fmt"

	"go-pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleLine is one requested line of a sale. UnitPrice is taken as-is;
// the engine snapshots it into the SaleDetail instead of reading the
// product's current price.
type SaleLine struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSale commits a multi-line sale atomically: it resolves the
// payment method, validates every line (product exists, is active, has
// stock), decrements stock, writes the details and the header, and
// computes final_amount from the subtotal and the method's adjustment.
// Any single failure rolls the whole attempt back; no partial sale is
// ever observable.
func CreateSale(db *gorm.DB, userID, clientID *uint, paymentMethodID uint, lines []SaleLine) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Message: "a sale needs at least one line"}
	}

	var sale models.Sale

	err := db.Transaction(func(tx *gorm.DB) error {
		var method models.PaymentMethod
		if err := tx.First(&method, paymentMethodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "payment method", ID: paymentMethodID}
			}
			return err
		}

		total := decimal.Zero
		var details []models.SaleDetail

		for _, line := range lines {
			if line.Quantity <= 0 {
				return &ValidationError{Message: "quantity must be a positive integer"}
			}

			var product models.Product
			// Lock the row so concurrent sales serialize their decrements.
			// sqlite (the test database) has no FOR UPDATE; its writes
			// serialize on the file lock instead.
			q := tx
			if tx.Dialector.Name() == "mysql" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "product", ID: line.ProductID}
				}
				return err
			}

			if product.Status != models.ProductActive {
				return &ValidationError{Message: fmt.Sprintf("product '%s' is not active and cannot be sold", product.Name)}
			}
			if product.Stock < line.Quantity {
				return &ValidationError{Message: fmt.Sprintf("insufficient stock for %s", product.Name)}
			}

			product.Stock -= line.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			details = append(details, models.SaleDetail{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		sale = models.Sale{
			UserID:          userID,
			ClientID:        clientID,
			TotalAmount:     total,
			PaymentMethodID: &method.ID,
			FinalAmount:     models.ComputeFinalAmount(total, &method.AdjustmentPercentage),
			Status:          models.SaleCompleted,
			Details:         details, // gorm inserts these with the header
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// CancelSale moves a Completed sale to Cancelled (a terminal state) and
// restores each line's quantity to its product. Cancelling an already
// cancelled sale is refused, not silently accepted. The sale and its
// details stay on record; only status and stock change.
func CancelSale(db *gorm.DB, saleID uint) (*models.Sale, error) {
	var sale models.Sale

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Details").Preload("PaymentMethod").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "sale", ID: saleID}
			}
			return err
		}

		if sale.Status == models.SaleCancelled {
			return &ConflictError{Message: "this sale has already been cancelled"}
		}

		// Recompute the derived amount at the write boundary, same as creation
		var adjustment *decimal.Decimal
		if sale.PaymentMethod != nil {
			adjustment = &sale.PaymentMethod.AdjustmentPercentage
		}
		sale.Status = models.SaleCancelled
		sale.FinalAmount = models.ComputeFinalAmount(sale.TotalAmount, adjustment)

		if err := tx.Model(&models.Sale{}).Where("id = ?", sale.ID).
			Updates(map[string]interface{}{"status": sale.Status, "final_amount": sale.FinalAmount}).Error; err != nil {
			return err
		}

		for _, detail := range sale.Details {
			if err := tx.Model(&models.Product{}).Where("id = ?", detail.ProductID).
				Update("stock", gorm.Expr("stock + ?", detail.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// DeleteSale removes a sale and its lines outright, restoring stock
// first. This is the administrative hard-delete; cancellation is the
// normal path.
func DeleteSale(db *gorm.DB, saleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Preload("Details").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "sale", ID: saleID}
			}
			return err
		}

		for _, detail := range sale.Details {
			if err := tx.Model(&models.Product{}).Where("id = ?", detail.ProductID).
				Update("stock", gorm.Expr("stock + ?", detail.Quantity)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
}
