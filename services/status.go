package services

import (
	"fmt"

	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"farmlink/models"
)

// UpdateFarmerOrderStatus applies a farmer's manual status change to their
// own FarmerOrder, tells the customer, and re-evaluates the parent order.
func UpdateFarmerOrderStatus(db *gorm.DB, farmer models.UserResponse, farmerOrderID string, newStatus models.OrderStatus) (*models.FarmerOrder, error) {
	if !models.FarmerStatusChoices[newStatus] {
		return nil, validationErr("invalid status %q", newStatus)
	}

	id, err := uuid.FromString(farmerOrderID)
	if err != nil {
		return nil, notFoundErr("farmer order %s does not exist", farmerOrderID)
	}

	var farmerOrder models.FarmerOrder
	err = db.Preload("OrderItem").Preload("OrderItem.Product").
		First(&farmerOrder, "id = ? AND farmer_id = ?", id, farmer.ID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundErr("farmer order %s does not exist", farmerOrderID)
		}
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&farmerOrder).Update("status", newStatus).Error; err != nil {
			return err
		}
		farmerOrder.Status = newStatus

		var parent models.Order
		if err := tx.First(&parent, "id = ?", farmerOrder.OrderItem.OrderID).Error; err != nil {
			return err
		}

		Notify(tx, parent.UserID, models.EventStatusChange, parent.ID,
			fmt.Sprintf("Your order for %s is now %s.", farmerOrder.OrderItem.Product.Name, newStatus))

		return rollUpDelivered(tx, parent.ID)
	})
	if err != nil {
		return nil, err
	}

	return &farmerOrder, nil
}

// rollUpDelivered promotes the parent order to Delivered once every
// sibling FarmerOrder is Delivered. The customer notice is deduplicated,
// so re-triggering the check is harmless.
func rollUpDelivered(tx *gorm.DB, orderID uuid.UUID) error {
	var order models.Order
	if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
		return err
	}
	if order.Status == models.StatusDelivered {
		return nil
	}

	var total, delivered int64
	err := tx.Model(&models.FarmerOrder{}).
		Joins("JOIN order_items ON order_items.id = farmer_orders.order_item_id").
		Where("order_items.order_id = ?", orderID).
		Count(&total).Error
	if err != nil {
		return err
	}

	err = tx.Model(&models.FarmerOrder{}).
		Joins("JOIN order_items ON order_items.id = farmer_orders.order_item_id").
		Where("order_items.order_id = ? AND farmer_orders.status = ?", orderID, models.StatusDelivered).
		Count(&delivered).Error
	if err != nil {
		return err
	}

	if total == 0 || delivered != total {
		return nil
	}

	err = tx.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", models.StatusDelivered).Error
	if err != nil {
		return err
	}

	NotifyOnce(tx, order.UserID, models.EventOrderDelivered, orderID,
		fmt.Sprintf("Your order #%s has been delivered.", shortID(orderID)))
	return nil
}

// CancelOrder is allowed only while the order is still Pending. The
// rejection names the current status so the customer knows why.
//
// Cancellation deliberately does not touch FarmerOrders or
// FarmerPayments; whether it should cascade is still an open product
// question.
func CancelOrder(db *gorm.DB, customer models.UserResponse, orderID string) (*models.Order, error) {
	id, err := uuid.FromString(orderID)
	if err != nil {
		return nil, notFoundErr("order %s does not exist", orderID)
	}

	var order models.Order
	err = db.First(&order, "id = ? AND user_id = ?", id, customer.ID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundErr("order %s does not exist", orderID)
		}
		return nil, err
	}

	if order.Status != models.StatusPending {
		return nil, stateConflictErr(order.Status)
	}

	if err := db.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	order.Status = models.StatusCancelled
	return &order, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
