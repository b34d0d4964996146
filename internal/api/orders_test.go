package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amberleaf/amberspa/internal/domain"
)

func TestOrderCreateWritesItemsAtomically(t *testing.T) {
	e, application := newTestServer(t)

	oil := domain.Product{Slug: "oil", Title: "Oil", Price: 20, Category: "body", StockQuantity: 5}
	mask := domain.Product{Slug: "mask", Title: "Mask", Price: 19, Category: "face", StockQuantity: 5}
	require.NoError(t, application.DB().Create(&oil).Error)
	require.NoError(t, application.DB().Create(&mask).Error)

	rec := doJSON(t, e, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": oil.ID, "quantity": 2},
			{"productId": mask.ID, "quantity": 1},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var o domain.Order
	decodeJSON(t, rec, &o)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.InDelta(t, 59.0, o.Total, 1e-9)
	require.Len(t, o.Items, 2)
	// unit prices are snapshots of the catalog price
	assert.InDelta(t, 20.0, o.Items[0].Price, 1e-9)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/orders/%d", o.ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched domain.Order
	decodeJSON(t, rec, &fetched)
	assert.Len(t, fetched.Items, 2)
}

func TestOrderWithUnknownProductLeavesNothingBehind(t *testing.T) {
	e, application := newTestServer(t)

	oil := domain.Product{Slug: "oil", Title: "Oil", Price: 20, Category: "body", StockQuantity: 5}
	require.NoError(t, application.DB().Create(&oil).Error)

	rec := doJSON(t, e, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": oil.ID, "quantity": 1},
			{"productId": 999, "quantity": 1},
		},
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	application.DB().Model(&domain.Order{}).Count(&count)
	assert.Zero(t, count)
	application.DB().Model(&domain.OrderItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestOrderRequiresItems(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderDeleteRemovesItems(t *testing.T) {
	e, application := newTestServer(t)

	o := domain.Order{Status: domain.OrderStatusPending, Total: 20}
	require.NoError(t, application.DB().Create(&o).Error)
	require.NoError(t, application.DB().Create(&domain.OrderItem{OrderID: o.ID, ProductID: 1, Quantity: 1, Price: 20}).Error)

	rec := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/orders/%d", o.ID), nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	application.DB().Model(&domain.OrderItem{}).Count(&count)
	assert.Zero(t, count)
}
