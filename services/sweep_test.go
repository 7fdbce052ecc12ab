package services

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"farmlink/models"
)

func createBackdatedOrder(t *testing.T, db *gorm.DB, customer models.User, status models.OrderStatus, age time.Duration) models.Order {
	t.Helper()

	order := models.Order{
		ID:          uuid.NewV4(),
		UserID:      customer.ID,
		Address:     "somewhere",
		Status:      status,
		TotalAmount: decimal.NewFromInt(100),
		CreatedAt:   time.Now().Add(-age),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestAutoAdvanceOrders(t *testing.T) {
	db := setupTestDB(t)
	customer := createUser(t, db, models.RoleCustomer)
	now := time.Now()

	fresh := createBackdatedOrder(t, db, customer, models.StatusPending, 2*time.Hour)
	toShip := createBackdatedOrder(t, db, customer, models.StatusPending, 25*time.Hour)
	toOut := createBackdatedOrder(t, db, customer, models.StatusPending, 37*time.Hour)
	toDeliver := createBackdatedOrder(t, db, customer, models.StatusPending, 49*time.Hour)
	cancelled := createBackdatedOrder(t, db, customer, models.StatusCancelled, 72*time.Hour)

	require.NoError(t, AutoAdvanceOrders(db, now))

	expect := map[uuid.UUID]models.OrderStatus{
		fresh.ID:     models.StatusPending,
		toShip.ID:    models.StatusShipped,
		toOut.ID:     models.StatusOutForDelivery,
		toDeliver.ID: models.StatusDelivered,
		cancelled.ID: models.StatusCancelled,
	}
	for id, want := range expect {
		var order models.Order
		require.NoError(t, db.First(&order, "id = ?", id).Error)
		assert.Equal(t, want, order.Status, "order %s", id)
	}

	assert.EqualValues(t, 1, countNotifications(t, db, customer.ID, models.EventOrderDelivered))

	// idempotent: a second sweep changes nothing and sends nothing
	require.NoError(t, AutoAdvanceOrders(db, now))
	for id, want := range expect {
		var order models.Order
		require.NoError(t, db.First(&order, "id = ?", id).Error)
		assert.Equal(t, want, order.Status)
	}
	assert.EqualValues(t, 1, countNotifications(t, db, customer.ID, models.EventOrderDelivered))
}

func TestAutoDeliverFarmerOrders(t *testing.T) {
	db := setupTestDB(t)
	farmer := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)
	product := createProduct(t, db, farmer, "Pumpkin", "95.00", 15)

	order, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{product.ID.String(): 1})
	require.NoError(t, err)

	var farmerOrder models.FarmerOrder
	require.NoError(t, db.First(&farmerOrder, "farmer_id = ?", farmer.ID).Error)

	// shipped a day and a bit ago
	require.NoError(t, db.Model(&models.FarmerOrder{}).Where("id = ?", farmerOrder.ID).
		Updates(map[string]interface{}{
			"status":     models.StatusShipped,
			"updated_at": time.Now().Add(-25 * time.Hour),
		}).Error)

	require.NoError(t, AutoDeliverFarmerOrders(db, time.Now()))

	var reloaded models.FarmerOrder
	require.NoError(t, db.First(&reloaded, "id = ?", farmerOrder.ID).Error)
	assert.Equal(t, models.StatusDelivered, reloaded.Status)

	assert.EqualValues(t, 1, countNotifications(t, db, farmer.ID, models.EventFarmerOrderDelivered))

	// the only line item is delivered, so the parent rolls up too
	var parent models.Order
	require.NoError(t, db.First(&parent, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDelivered, parent.Status)
	assert.EqualValues(t, 1, countNotifications(t, db, customer.ID, models.EventOrderDelivered))
}

func TestAutoDeliverFarmerOrdersLeavesRecentAlone(t *testing.T) {
	db := setupTestDB(t)
	farmer := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)
	product := createProduct(t, db, farmer, "Ginger", "110.00", 15)

	_, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{product.ID.String(): 1})
	require.NoError(t, err)

	var farmerOrder models.FarmerOrder
	require.NoError(t, db.First(&farmerOrder, "farmer_id = ?", farmer.ID).Error)

	_, err = UpdateFarmerOrderStatus(db, asResponse(farmer), farmerOrder.ID.String(), models.StatusShipped)
	require.NoError(t, err)

	require.NoError(t, AutoDeliverFarmerOrders(db, time.Now()))

	var reloaded models.FarmerOrder
	require.NoError(t, db.First(&reloaded, "id = ?", farmerOrder.ID).Error)
	assert.Equal(t, models.StatusShipped, reloaded.Status, "freshly shipped orders must not auto-deliver")
}
