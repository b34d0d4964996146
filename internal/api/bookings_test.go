package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amberleaf/amberspa/internal/app"
	"github.com/amberleaf/amberspa/internal/domain"
)

func TestDeleteMissingBookingIs404AndIdempotent(t *testing.T) {
	e, application := newTestServer(t)

	rec := doJSON(t, e, http.MethodDelete, "/api/bookings/424242", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/bookings/424242", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	application.DB().Model(&domain.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestBookingSnapshotsTreatmentPrice(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "massage", Title: "Massage", Price: 69, Duration: 60}
	require.NoError(t, application.DB().Create(&tr).Error)

	rec := doJSON(t, e, http.MethodPost, "/api/bookings", map[string]interface{}{
		"treatmentId": tr.ID,
		"date":        "2026-09-14",
		"time":        "15:30",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var b domain.Booking
	decodeJSON(t, rec, &b)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
	assert.InDelta(t, 69.0, b.Price, 1e-9)
}

func TestBookingAcceptedWhileToggleOff(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "massage", Title: "Massage", Price: 69, Duration: 60}
	require.NoError(t, application.DB().Create(&tr).Error)

	// the flag gates the calendar UI only, never the endpoint
	require.NoError(t, application.ConfigMgr().SetValue(app.SettingsCategorySite, app.KeyBookingEnabled, "false"))

	rec := doJSON(t, e, http.MethodPost, "/api/bookings", map[string]interface{}{
		"treatmentId": tr.ID,
		"date":        "2026-09-14",
		"time":        "15:30",
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBookingUnknownTreatmentRejected(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/bookings", map[string]interface{}{
		"treatmentId": 999,
		"date":        "2026-09-14",
		"time":        "15:30",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingNoSlotConflictCheck(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "massage", Title: "Massage", Price: 69, Duration: 60}
	require.NoError(t, application.DB().Create(&tr).Error)

	payload := map[string]interface{}{
		"treatmentId": tr.ID,
		"date":        "2026-09-14",
		"time":        "15:30",
	}
	for i := 0; i < 2; i++ {
		rec := doJSON(t, e, http.MethodPost, "/api/bookings", payload, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var count int64
	application.DB().Model(&domain.Booking{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestBookingStatusTransitions(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "massage", Title: "Massage", Price: 69, Duration: 60}
	require.NoError(t, application.DB().Create(&tr).Error)
	b := domain.Booking{TreatmentID: tr.ID, Date: "2026-09-14", Time: "15:30", Status: domain.BookingStatusPending, Price: 69}
	require.NoError(t, application.DB().Create(&b).Error)
	target := fmt.Sprintf("/api/bookings/%d/status", b.ID)

	// pending -> completed skips confirmation, rejected
	rec := doJSON(t, e, http.MethodPut, target, map[string]string{"status": "completed"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": "confirmed"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// confirmed -> pending would walk backwards
	rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": "pending"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": "completed"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// completed is terminal
	rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": "cancelled"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": "bogus"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatusTransitions(t *testing.T) {
	e, application := newTestServer(t)

	o := domain.Order{Status: domain.OrderStatusPending, Total: 44}
	require.NoError(t, application.DB().Create(&o).Error)
	target := fmt.Sprintf("/api/orders/%d/status", o.ID)

	rec := doJSON(t, e, http.MethodPut, target, map[string]string{"status": "shipped"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	for _, status := range []string{"processing", "shipped", "completed"} {
		rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": status}, nil)
		require.Equal(t, http.StatusOK, rec.Code, "transition to %s", status)
	}

	rec = doJSON(t, e, http.MethodPut, target, map[string]string{"status": "pending"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
