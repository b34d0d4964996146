package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amberleaf/amberspa/internal/domain"
)

func TestInstagramFetchByID(t *testing.T) {
	e, application := newTestServer(t)

	p := domain.InstagramPost{Image: "studio.jpg", Caption: "New treatment room", Link: "https://instagram.com/p/abc"}
	require.NoError(t, application.DB().Create(&p).Error)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/instagram/%d", p.ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.InstagramPost
	decodeJSON(t, rec, &fetched)
	assert.Equal(t, p.ID, fetched.ID)
	assert.Equal(t, "studio.jpg", fetched.Image)
	assert.Equal(t, "New treatment room", fetched.Caption)

	rec = doJSON(t, e, http.MethodGet, "/api/instagram/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInstagramUpdateRejectsMalformedLink(t *testing.T) {
	e, application := newTestServer(t)

	p := domain.InstagramPost{Image: "studio.jpg", Link: "https://instagram.com/p/abc"}
	require.NoError(t, application.DB().Create(&p).Error)

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/instagram/%d", p.ID), map[string]string{
		"link": "not a url",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var unchanged domain.InstagramPost
	require.NoError(t, application.DB().Where("id = ?", p.ID).First(&unchanged).Error)
	assert.Equal(t, "https://instagram.com/p/abc", unchanged.Link)
}
