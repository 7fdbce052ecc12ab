package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	uuid "github.com/satori/go.uuid"
)

const (
	RoleFarmer   = "farmer"
	RoleCustomer = "customer"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Email          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:varchar(100);not null" json:"-"`
	Role           string    `gorm:"type:varchar(20);not null" json:"role"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone"`
	TelegramChatID int64     `gorm:"default:0" json:"telegram_chat_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserResponse is the filtered view stored in c.Locals("user") by the
// auth middleware, so handlers never touch the password hash.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func FilterUserRecord(user *User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

func (u UserResponse) IsFarmer() bool {
	return u.Role == RoleFarmer
}

// Address is a saved delivery address. Orders keep their own denormalized
// snapshot, so editing an address never rewrites order history.
type Address struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FullName    string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Phone       string    `gorm:"type:varchar(20);not null" json:"phone"`
	AddressLine string    `gorm:"type:text;not null" json:"address_line"`
	City        string    `gorm:"type:varchar(50);not null" json:"city"`
	State       string    `gorm:"type:varchar(50);not null" json:"state"`
	Pincode     string    `gorm:"type:varchar(10);not null" json:"pincode"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=farmer customer"`
	Phone    string `json:"phone" validate:"required"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AddressInput struct {
	FullName    string `json:"full_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	AddressLine string `json:"address_line" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Pincode     string `json:"pincode" validate:"required"`
}

var validate = validator.New()

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

func ValidateStruct[T any](payload T) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(payload)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.Field = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
