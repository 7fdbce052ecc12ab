package services

import (
	"fmt"
	"log"
	"sort"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"farmlink/models"
	"farmlink/utils"
)

var (
	freeDeliveryFrom = decimal.NewFromInt(500)
	deliveryCharge   = decimal.NewFromInt(50)
)

// DeliveryFee is zero for an empty order or once the subtotal reaches the
// free-delivery mark, otherwise a flat charge.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() || subtotal.GreaterThanOrEqual(freeDeliveryFrom) {
		return decimal.Zero
	}
	return deliveryCharge
}

// PlaceOrder turns a selection into one Order with its line items, one
// FarmerOrder and one FarmerPayment per item, decrements stock and fires
// the "order placed" notifications. Everything runs in one transaction;
// any failure leaves no partial rows behind.
//
// The selection is passed in explicitly (cart or buy-now, resolved by the
// caller) so the splitter has no hidden session state.
func PlaceOrder(db *gorm.DB, customer models.UserResponse, address models.Address, paymentMethod string, selection Selection) (*models.Order, error) {
	if len(selection) == 0 {
		return nil, validationErr("your cart is empty")
	}

	// Resolve and validate every product before any write.
	type line struct {
		product models.Product
		qty     int
	}
	var lines []line
	for pid, qty := range selection {
		productID, err := uuid.FromString(pid)
		if err != nil {
			return nil, notFoundErr("product %s does not exist", pid)
		}
		if qty <= 0 {
			return nil, validationErr("invalid quantity for product %s", pid)
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, notFoundErr("product %s does not exist", pid)
			}
			return nil, err
		}

		if product.UserID == customer.ID {
			return nil, validationErr("you cannot buy your own product %s", product.Name)
		}

		lines = append(lines, line{product: product, qty: qty})
	}

	// Stable creation order regardless of map iteration.
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].product.ID.String() < lines[j].product.ID.String()
	})

	addressSnapshot := fmt.Sprintf("%s, %s, %s, %s, %s | Phone: %s",
		address.FullName, address.AddressLine, address.City, address.State, address.Pincode, address.Phone)

	order := models.Order{
		ID:            uuid.NewV4(),
		UserID:        customer.ID,
		Address:       addressSnapshot,
		PaymentMethod: paymentMethod,
		Status:        models.StatusPending,
		TotalAmount:   decimal.Zero,
	}

	var lowStock []models.Product

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, l := range lines {
			lineTotal := l.product.Price.Mul(decimal.NewFromInt(int64(l.qty)))
			subtotal = subtotal.Add(lineTotal)

			item := models.OrderItem{
				ID:        uuid.NewV4(),
				OrderID:   order.ID,
				ProductID: l.product.ID,
				Quantity:  l.qty,
				Price:     l.product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			farmerOrder := models.FarmerOrder{
				ID:          uuid.NewV4(),
				FarmerID:    l.product.UserID,
				OrderItemID: item.ID,
				Status:      models.StatusPending,
			}
			if err := tx.Create(&farmerOrder).Error; err != nil {
				return err
			}

			payment := models.FarmerPayment{
				ID:          uuid.NewV4(),
				FarmerID:    l.product.UserID,
				OrderItemID: item.ID,
				Amount:      lineTotal,
				Status:      models.PaymentPending,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			remaining, err := decrementStock(tx, l.product, l.qty)
			if err != nil {
				return err
			}
			if remaining <= models.LowStockThreshold {
				if err := upsertStockAlert(tx, l.product); err != nil {
					return err
				}
				p := l.product
				p.Stock = remaining
				lowStock = append(lowStock, p)
			}

			Notify(tx, customer.ID, models.EventOrderPlaced, order.ID,
				fmt.Sprintf("Your order for %s x %d has been placed successfully!", l.product.Name, l.qty))
			Notify(tx, l.product.UserID, models.EventNewOrder, order.ID,
				fmt.Sprintf("New order for %s (%d %s).", l.product.Name, l.qty, l.product.Unit))
		}

		order.TotalAmount = subtotal.Add(DeliveryFee(subtotal))
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_amount", order.TotalAmount).Error
	})
	if err != nil {
		return nil, err
	}

	for _, p := range lowStock {
		sendLowStockTelegram(db, p.UserID, p, p.Stock)
	}
	go sendOrderConfirmationMail(db, customer, order)

	return &order, nil
}

// decrementStock clamps to zero in a single UPDATE so two racing
// checkouts can never drive the stock negative.
func decrementStock(tx *gorm.DB, product models.Product, qty int) (int, error) {
	err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("stock", gorm.Expr("CASE WHEN stock >= ? THEN stock - ? ELSE 0 END", qty, qty)).Error
	if err != nil {
		return 0, err
	}

	var remaining int
	err = tx.Model(&models.Product{}).Select("stock").Where("id = ?", product.ID).Scan(&remaining).Error
	return remaining, err
}

// upsertStockAlert is idempotent: an existing unalerted alert for the
// (product, farmer) pair is reused, never duplicated.
func upsertStockAlert(tx *gorm.DB, product models.Product) error {
	alert := models.StockAlert{
		ProductID: product.ID,
		UserID:    product.UserID,
		Threshold: models.LowStockThreshold,
	}
	return tx.Where(models.StockAlert{
		ProductID: product.ID,
		UserID:    product.UserID,
		Threshold: models.LowStockThreshold,
	}).Attrs(models.StockAlert{ID: uuid.NewV4(), IsAlerted: false}).
		FirstOrCreate(&alert).Error
}

func sendOrderConfirmationMail(db *gorm.DB, customer models.UserResponse, order models.Order) {
	var user models.User
	if err := db.First(&user, "id = ?", customer.ID).Error; err != nil {
		return
	}

	subject := fmt.Sprintf("Order confirmation - %s", order.ID)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your order has been placed successfully.</p><p>Total: %s</p><p>Delivery to: %s</p>",
		user.Name, order.TotalAmount.StringFixed(2), order.Address)
	if err := utils.SendEmail(user.Email, subject, body); err != nil {
		log.Printf("Failed to send confirmation mail to %s: %v", user.Email, err)
	}
}
