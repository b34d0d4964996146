package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
)

type orderItemPayload struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type orderPayload struct {
	UserID *int64             `json:"userId"`
	Items  []orderItemPayload `json:"items" validate:"required,min=1,dive"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	query := GetDB(c).Model(&domain.Order{}).Preload("Items")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []domain.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}
	return ok(c, orders)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var o domain.Order
	if err := GetDB(c).Preload("Items").Where("id = ?", id).First(&o).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}
	return ok(c, o)
}

// createOrder writes the order and its items in one transaction. Item
// prices are snapshotted from the catalog at purchase time.
func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	db := GetDB(c)
	items := make([]domain.OrderItem, 0, len(payload.Items))
	total := 0.0
	for _, line := range payload.Items {
		var p domain.Product
		if err := db.Where("id = ?", line.ProductID).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusBadRequest, "UNKNOWN_PRODUCT",
				fmt.Sprintf("Product %d does not exist", line.ProductID), nil)
		} else if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Price:     p.Price,
		})
		total += p.Price * float64(line.Quantity)
	}

	now := time.Now()
	o := domain.Order{
		UserID:    payload.UserID,
		Status:    domain.OrderStatusPending,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", nil)
	}
	o.Items = items
	return created(c, o)
}

// updateOrderStatus applies an admin status change, rejecting
// transitions outside the order lifecycle with 409.
func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if !domain.ValidOrderStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
	}

	var o domain.Order
	if err := GetDB(c).Where("id = ?", id).First(&o).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}

	if !domain.CanTransitionOrder(o.Status, payload.Status) {
		return fail(c, http.StatusConflict, "ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, payload.Status), nil)
	}

	if err := GetDB(c).Model(&o).Updates(map[string]interface{}{
		"status":     payload.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", nil)
	}
	o.Status = payload.Status
	writeOprLog(c, "update_order_status", fmt.Sprintf("order %d -> %s", id, payload.Status))
	return ok(c, o)
}

func deleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var o domain.Order
	if err := GetDB(c).Where("id = ?", id).First(&o).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}
	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&o).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", nil)
	}
	writeOprLog(c, "delete_order", fmt.Sprintf("order %d", id))
	return c.NoContent(http.StatusNoContent)
}
