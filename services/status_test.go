package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmlink/models"
)

func TestUpdateFarmerOrderStatusRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	farmer := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)
	product := createProduct(t, db, farmer, "Eggs", "90.00", 40)

	_, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{product.ID.String(): 1})
	require.NoError(t, err)

	var farmerOrder models.FarmerOrder
	require.NoError(t, db.First(&farmerOrder, "farmer_id = ?", farmer.ID).Error)

	_, err = UpdateFarmerOrderStatus(db, asResponse(farmer), farmerOrder.ID.String(), "Teleported")
	require.ErrorIs(t, err, ErrValidation)

	// "Out for Delivery" is sweep-only, not a manual farmer choice
	_, err = UpdateFarmerOrderStatus(db, asResponse(farmer), farmerOrder.ID.String(), models.StatusOutForDelivery)
	require.ErrorIs(t, err, ErrValidation)

	var reloaded models.FarmerOrder
	require.NoError(t, db.First(&reloaded, "id = ?", farmerOrder.ID).Error)
	assert.Equal(t, models.StatusPending, reloaded.Status, "rejected update must not mutate")
}

func TestUpdateFarmerOrderStatusOwnershipAndNotice(t *testing.T) {
	db := setupTestDB(t)
	farmer := createUser(t, db, models.RoleFarmer)
	otherFarmer := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)
	product := createProduct(t, db, farmer, "Wheat", "75.00", 40)

	_, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{product.ID.String(): 2})
	require.NoError(t, err)

	var farmerOrder models.FarmerOrder
	require.NoError(t, db.First(&farmerOrder, "farmer_id = ?", farmer.ID).Error)

	_, err = UpdateFarmerOrderStatus(db, asResponse(otherFarmer), farmerOrder.ID.String(), models.StatusShipped)
	require.ErrorIs(t, err, ErrNotFound, "a farmer cannot touch another farmer's order")

	updated, err := UpdateFarmerOrderStatus(db, asResponse(farmer), farmerOrder.ID.String(), models.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)

	assert.EqualValues(t, 1, countNotifications(t, db, customer.ID, models.EventStatusChange))

	var notification models.Notification
	require.NoError(t, db.First(&notification, "user_id = ? AND event = ?",
		customer.ID, models.EventStatusChange).Error)
	assert.Contains(t, notification.Message, "Wheat")
	assert.Contains(t, notification.Message, "Shipped")
}

func TestRollUpDeliveredExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	farmerA := createUser(t, db, models.RoleFarmer)
	farmerB := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)

	productA := createProduct(t, db, farmerA, "Corn", "80.00", 30)
	productB := createProduct(t, db, farmerB, "Peas", "70.00", 30)

	order, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{productA.ID.String(): 1, productB.ID.String(): 1})
	require.NoError(t, err)

	var orderA, orderB models.FarmerOrder
	require.NoError(t, db.First(&orderA, "farmer_id = ?", farmerA.ID).Error)
	require.NoError(t, db.First(&orderB, "farmer_id = ?", farmerB.ID).Error)

	_, err = UpdateFarmerOrderStatus(db, asResponse(farmerA), orderA.ID.String(), models.StatusDelivered)
	require.NoError(t, err)

	var parent models.Order
	require.NoError(t, db.First(&parent, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusPending, parent.Status, "one delivered sibling must not promote the parent")
	assert.EqualValues(t, 0, countNotifications(t, db, customer.ID, models.EventOrderDelivered))

	_, err = UpdateFarmerOrderStatus(db, asResponse(farmerB), orderB.ID.String(), models.StatusDelivered)
	require.NoError(t, err)

	require.NoError(t, db.First(&parent, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDelivered, parent.Status)
	assert.EqualValues(t, 1, countNotifications(t, db, customer.ID, models.EventOrderDelivered))

	// re-triggering the roll-up must not send a second delivered notice
	_, err = UpdateFarmerOrderStatus(db, asResponse(farmerA), orderA.ID.String(), models.StatusDelivered)
	require.NoError(t, err)
	assert.EqualValues(t, 1, countNotifications(t, db, customer.ID, models.EventOrderDelivered))
}

func TestCancelOrderOnlyWhilePending(t *testing.T) {
	db := setupTestDB(t)
	farmer := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)
	product := createProduct(t, db, farmer, "Butter", "150.00", 20)

	order, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{product.ID.String(): 1})
	require.NoError(t, err)

	cancelled, err := CancelOrder(db, asResponse(customer), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// a cancelled order is no longer Pending; a second cancel conflicts
	_, err = CancelOrder(db, asResponse(customer), order.ID.String())
	require.ErrorIs(t, err, ErrStateConflict)
	assert.Contains(t, err.Error(), string(models.StatusCancelled),
		"rejection must name the current status")

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusCancelled, reloaded.Status)
}

func TestCancelOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	farmer := createUser(t, db, models.RoleFarmer)
	customer := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	address := createAddress(t, db, customer)
	product := createProduct(t, db, farmer, "Cheese", "200.00", 20)

	order, err := PlaceOrder(db, asResponse(customer), address, "cod",
		Selection{product.ID.String(): 1})
	require.NoError(t, err)

	_, err = CancelOrder(db, asResponse(stranger), order.ID.String())
	require.ErrorIs(t, err, ErrNotFound)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusPending, reloaded.Status)
}
