package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	uuid "github.com/satori/go.uuid"

	"farmlink/initializers"
)

// Selection maps product id -> quantity. Carts and buy-now picks live in
// redis keyed by user, so they expire with the session and are never
// shared across devices.
type Selection map[string]int

const buyNowTTL = 30 * time.Minute

func cartKey(userID uuid.UUID) string   { return "cart:" + userID.String() }
func buyNowKey(userID uuid.UUID) string { return "buynow:" + userID.String() }

func GetCart(userID uuid.UUID) (Selection, error) {
	raw, err := initializers.RedisClient.HGetAll(initializers.Ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	selection := Selection{}
	for pid, qty := range raw {
		n, err := strconv.Atoi(qty)
		if err != nil || n <= 0 {
			continue
		}
		selection[pid] = n
	}
	return selection, nil
}

func AddToCart(userID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	return initializers.RedisClient.HIncrBy(initializers.Ctx, cartKey(userID), productID.String(), int64(qty)).Err()
}

// SetCartQuantity overwrites the quantity; zero or less removes the item.
func SetCartQuantity(userID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return RemoveFromCart(userID, productID)
	}
	return initializers.RedisClient.HSet(initializers.Ctx, cartKey(userID), productID.String(), qty).Err()
}

func RemoveFromCart(userID, productID uuid.UUID) error {
	return initializers.RedisClient.HDel(initializers.Ctx, cartKey(userID), productID.String()).Err()
}

func ClearCart(userID uuid.UUID) error {
	return initializers.RedisClient.Del(initializers.Ctx, cartKey(userID)).Err()
}

// SetBuyNow stores a single-product selection with a short TTL, clamped
// to 1..10 like the storefront quantity dropdown.
func SetBuyNow(userID, productID uuid.UUID, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if qty > 10 {
		qty = 10
	}

	body, err := json.Marshal(Selection{productID.String(): qty})
	if err != nil {
		return err
	}
	return initializers.RedisClient.Set(initializers.Ctx, buyNowKey(userID), body, buyNowTTL).Err()
}

func GetBuyNow(userID uuid.UUID) (Selection, error) {
	raw, err := initializers.RedisClient.Get(initializers.Ctx, buyNowKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var selection Selection
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		return nil, fmt.Errorf("corrupt buy-now selection: %w", err)
	}
	return selection, nil
}

func ClearBuyNow(userID uuid.UUID) error {
	return initializers.RedisClient.Del(initializers.Ctx, buyNowKey(userID)).Err()
}
