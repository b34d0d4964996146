package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/app"
	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
)

type bookingPayload struct {
	UserID      *int64 `json:"userId"`
	TreatmentID int64  `json:"treatmentId" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func registerBookingRoutes() {
	webserver.ApiGET("/bookings", listBookings)
	webserver.ApiGET("/bookings/:id", getBooking)
	webserver.ApiPOST("/bookings", createBooking)
	webserver.ApiPUT("/bookings/:id/status", updateBookingStatus)
	webserver.ApiDELETE("/bookings/:id", deleteBooking)
}

func listBookings(c echo.Context) error {
	query := GetDB(c).Model(&domain.Booking{})
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []domain.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", nil)
	}
	return ok(c, bookings)
}

func getBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	var b domain.Booking
	if err := GetDB(c).Where("id = ?", id).First(&b).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query booking", nil)
	}
	return ok(c, b)
}

// createBooking accepts a booking regardless of the booking_enabled
// toggle: the flag gates the calendar UI only. There is also no slot
// conflict check; overlapping bookings are resolved by the studio.
func createBooking(c echo.Context) error {
	var payload bookingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse booking", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var treatment domain.Treatment
	if err := GetDB(c).Where("id = ?", payload.TreatmentID).First(&treatment).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusBadRequest, "UNKNOWN_TREATMENT", "Treatment does not exist", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query treatment", nil)
	}

	appCtx := GetAppContext(c)
	if !appCtx.GetSettingsBoolValue(app.SettingsCategorySite, app.KeyBookingEnabled) {
		zap.L().Warn("booking accepted while booking_enabled is off",
			zap.Int64("treatment_id", payload.TreatmentID),
			zap.String("date", payload.Date),
			zap.String("time", payload.Time))
	}

	now := time.Now()
	b := domain.Booking{
		UserID:      payload.UserID,
		TreatmentID: payload.TreatmentID,
		Date:        payload.Date,
		Time:        payload.Time,
		Status:      domain.BookingStatusPending,
		Price:       treatment.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&b).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create booking", nil)
	}
	return created(c, b)
}

// updateBookingStatus applies an admin status change, rejecting
// transitions outside the booking lifecycle with 409.
func updateBookingStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}

	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if !domain.ValidBookingStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status", nil)
	}

	var b domain.Booking
	if err := GetDB(c).Where("id = ?", id).First(&b).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query booking", nil)
	}

	if !domain.CanTransitionBooking(b.Status, payload.Status) {
		return fail(c, http.StatusConflict, "ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot change booking status from %s to %s", b.Status, payload.Status), nil)
	}

	if err := GetDB(c).Model(&b).Updates(map[string]interface{}{
		"status":     payload.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update booking", nil)
	}
	b.Status = payload.Status
	writeOprLog(c, "update_booking_status", fmt.Sprintf("booking %d -> %s", id, payload.Status))
	return ok(c, b)
}

func deleteBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	var b domain.Booking
	if err := GetDB(c).Where("id = ?", id).First(&b).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query booking", nil)
	}
	if err := GetDB(c).Delete(&b).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete booking", nil)
	}
	writeOprLog(c, "delete_booking", fmt.Sprintf("booking %d", id))
	return c.NoContent(http.StatusNoContent)
}
