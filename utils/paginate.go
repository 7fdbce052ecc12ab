package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Paginate runs the query with page/limit taken from the request and
// writes the standard JSON envelope, including the total for the client
// side pager.
func Paginate(c *fiber.Ctx, query *gorm.DB, dest interface{}) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dest,
		"meta": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
