package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amberleaf/amberspa/internal/domain"
)

func TestTreatmentCreateFetchRoundTrip(t *testing.T) {
	e, _ := newTestServer(t)

	payload := map[string]interface{}{
		"slug":        "deep-tissue",
		"title":       "Deep Tissue Massage",
		"description": "Slow, firm pressure for chronic tension.",
		"price":       79.5,
		"duration":    60,
		"image":       "deep-tissue.jpg",
		"featured":    true,
	}
	rec := doJSON(t, e, http.MethodPost, "/api/treatments", payload, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Treatment
	decodeJSON(t, rec, &created)
	assert.Positive(t, created.ID)

	rec = doJSON(t, e, http.MethodGet, "/api/treatments/deep-tissue", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.Treatment
	decodeJSON(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "deep-tissue", fetched.Slug)
	assert.Equal(t, "Deep Tissue Massage", fetched.Title)
	assert.Equal(t, "Slow, firm pressure for chronic tension.", fetched.Description)
	assert.InDelta(t, 79.5, fetched.Price, 1e-9)
	assert.Equal(t, 60, fetched.Duration)
	assert.Equal(t, "deep-tissue.jpg", fetched.Image)
	assert.True(t, fetched.Featured)
}

func TestTreatmentFetchByIDWorksToo(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "facial", Title: "Facial", Price: 59, Duration: 45}
	require.NoError(t, application.DB().Create(&tr).Error)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/treatments/%d", tr.ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.Treatment
	decodeJSON(t, rec, &fetched)
	assert.Equal(t, "facial", fetched.Slug)
}

func TestTreatmentValidationErrors(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/treatments", map[string]interface{}{
		"slug": "broken",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code   string                   `json:"code"`
		Detail []map[string]interface{} `json:"detail"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.NotEmpty(t, body.Detail)
}

func TestTreatmentNotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/treatments/no-such-slug", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTreatmentDeleteThenGone(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "gone-soon", Title: "Gone Soon", Price: 10, Duration: 30}
	require.NoError(t, application.DB().Create(&tr).Error)

	target := fmt.Sprintf("/api/treatments/%d", tr.ID)
	rec := doJSON(t, e, http.MethodDelete, target, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, target, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTreatmentDuplicateSlugRejected(t *testing.T) {
	e, application := newTestServer(t)

	tr := domain.Treatment{Slug: "taken", Title: "Taken", Price: 10, Duration: 30}
	require.NoError(t, application.DB().Create(&tr).Error)

	rec := doJSON(t, e, http.MethodPost, "/api/treatments", map[string]interface{}{
		"slug": "taken", "title": "Taken Again", "price": 12.0, "duration": 30,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
