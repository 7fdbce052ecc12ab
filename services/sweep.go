package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"farmlink/models"
)

// Elapsed-time thresholds, measured from order creation.
const (
	shipAfter           = 24 * time.Hour
	outForDeliveryAfter = 36 * time.Hour
	deliverAfter        = 48 * time.Hour

	// FarmerOrders sitting in Shipped are auto-delivered this long after
	// their last update.
	farmerDeliverAfter = 24 * time.Hour
)

// AutoAdvanceOrders pushes stale orders along the lifecycle based on time
// elapsed since creation. The checks chain, so a long-forgotten Pending
// order converges to Delivered in a single sweep. Safe to re-run.
func AutoAdvanceOrders(db *gorm.DB, now time.Time) error {
	var orders []models.Order
	err := db.Where("status IN ?", []models.OrderStatus{
		models.StatusPending, models.StatusShipped, models.StatusOutForDelivery,
	}).Find(&orders).Error
	if err != nil {
		return err
	}

	for _, order := range orders {
		elapsed := now.Sub(order.CreatedAt)
		status := order.Status

		if status == models.StatusPending && elapsed > shipAfter {
			status = models.StatusShipped
		}
		if status == models.StatusShipped && elapsed > outForDeliveryAfter {
			status = models.StatusOutForDelivery
		}
		if status == models.StatusOutForDelivery && elapsed > deliverAfter {
			status = models.StatusDelivered
		}

		if status == order.Status {
			continue
		}

		orderID := order.ID
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
				Update("status", status).Error; err != nil {
				return err
			}
			if status == models.StatusDelivered {
				NotifyOnce(tx, order.UserID, models.EventOrderDelivered, orderID,
					fmt.Sprintf("Your order #%s has been delivered.", shortID(orderID)))
			}
			return nil
		})
		if err != nil {
			log.Printf("Failed to auto-advance order %s: %v", orderID, err)
		}
	}
	return nil
}

// AutoDeliverFarmerOrders promotes Shipped farmer orders to Delivered
// once they have sat untouched for a day, notifying the farmer and
// re-checking the parent order roll-up.
func AutoDeliverFarmerOrders(db *gorm.DB, now time.Time) error {
	cutoff := now.Add(-farmerDeliverAfter)

	var farmerOrders []models.FarmerOrder
	err := db.Preload("OrderItem").Preload("OrderItem.Product").
		Where("status = ? AND updated_at <= ?", models.StatusShipped, cutoff).
		Find(&farmerOrders).Error
	if err != nil {
		return err
	}

	for _, fo := range farmerOrders {
		fo := fo
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.FarmerOrder{}).Where("id = ?", fo.ID).
				Update("status", models.StatusDelivered).Error; err != nil {
				return err
			}

			Notify(tx, fo.FarmerID, models.EventFarmerOrderDelivered, fo.OrderItem.OrderID,
				fmt.Sprintf("Order %s has been auto-marked as Delivered.", fo.OrderItem.Product.Name))

			return rollUpDelivered(tx, fo.OrderItem.OrderID)
		})
		if err != nil {
			log.Printf("Failed to auto-deliver farmer order %s: %v", fo.ID, err)
		}
	}
	return nil
}

// RunSweeper drives both sweeps on a fixed interval. Run it in its own
// goroutine from main.
func RunSweeper(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		if err := AutoAdvanceOrders(db, now); err != nil {
			log.Printf("Order sweep failed: %v", err)
		}
		if err := AutoDeliverFarmerOrders(db, now); err != nil {
			log.Printf("Farmer order sweep failed: %v", err)
		}
	}
}
