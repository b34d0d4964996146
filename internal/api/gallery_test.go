package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amberleaf/amberspa/internal/domain"
)

func TestGalleryCategoryFilter(t *testing.T) {
	e, application := newTestServer(t)

	require.NoError(t, application.DB().Create(&domain.GalleryItem{
		Title: "Treatment Room", Image: "room.jpg", Category: "interior",
	}).Error)
	require.NoError(t, application.DB().Create(&domain.GalleryItem{
		Title: "Hot Stones", Image: "stones.jpg", Category: "treatments",
	}).Error)

	rec := doJSON(t, e, http.MethodGet, "/api/gallery?category=interior", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []domain.GalleryItem
	decodeJSON(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Treatment Room", items[0].Title)

	rec = doJSON(t, e, http.MethodGet, "/api/gallery", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &items)
	assert.Len(t, items, 2)
}
