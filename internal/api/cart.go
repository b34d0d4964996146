package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/amberleaf/amberspa/internal/cart"
	"github.com/amberleaf/amberspa/internal/webserver"
)

const cartCookieName = "cart_id"

type cartItemPayload struct {
	Type     string  `json:"type" validate:"required,oneof=product booking"`
	ItemID   int64   `json:"itemId" validate:"required,gt=0"`
	Title    string  `json:"title" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"omitempty,gte=1"`
	Image    string  `json:"image"`
	Date     string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time     string  `json:"time" validate:"omitempty,datetime=15:04"`
	Duration int     `json:"duration" validate:"omitempty,gt=0"`
}

type quantityPayload struct {
	Quantity int `json:"quantity"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPUT("/cart/items/:id", updateCartItem)
	webserver.ApiDELETE("/cart/items/:id", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
}

// cartID resolves the caller's cart key from header or cookie, minting
// a new cookie-backed id on first contact.
func cartID(c echo.Context) string {
	if id := c.Request().Header.Get("X-Cart-ID"); id != "" {
		return id
	}
	if cookie, err := c.Cookie(cartCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HttpOnly: true,
	})
	return id
}

// cartUnavailable reports whether the cart store failed to open at boot,
// in which case every cart endpoint answers 503 instead of panicking.
func cartUnavailable(c echo.Context) bool {
	return GetAppContext(c).CartStore() == nil
}

func getCart(c echo.Context) error {
	if cartUnavailable(c) {
		return fail(c, http.StatusServiceUnavailable, "CART_UNAVAILABLE", "Cart storage is not available", nil)
	}
	store := GetAppContext(c).CartStore()
	id := cartID(c)

	items, err := store.Items(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to load cart", nil)
	}
	if items == nil {
		items = []cart.Item{}
	}
	totalItems, _ := store.TotalItems(id)
	totalPrice, _ := store.TotalPrice(id)

	return ok(c, map[string]interface{}{
		"items":      items,
		"totalItems": totalItems,
		"totalPrice": totalPrice,
	})
}

func addCartItem(c echo.Context) error {
	if cartUnavailable(c) {
		return fail(c, http.StatusServiceUnavailable, "CART_UNAVAILABLE", "Cart storage is not available", nil)
	}
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	item, err := GetAppContext(c).CartStore().AddToCart(cartID(c), cart.Item{
		Type:     payload.Type,
		ItemID:   payload.ItemID,
		Title:    payload.Title,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		Image:    payload.Image,
		Date:     payload.Date,
		Time:     payload.Time,
		Duration: payload.Duration,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to add cart item", nil)
	}
	return created(c, item)
}

func updateCartItem(c echo.Context) error {
	if cartUnavailable(c) {
		return fail(c, http.StatusServiceUnavailable, "CART_UNAVAILABLE", "Cart storage is not available", nil)
	}
	var payload quantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	// quantity <= 0 removes the line, same as DELETE
	err := GetAppContext(c).CartStore().UpdateQuantity(cartID(c), c.Param("id"), payload.Quantity)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to update cart item", nil)
	}
	return getCart(c)
}

// removeCartItem is idempotent: removing an unknown line id is still 204.
func removeCartItem(c echo.Context) error {
	if cartUnavailable(c) {
		return fail(c, http.StatusServiceUnavailable, "CART_UNAVAILABLE", "Cart storage is not available", nil)
	}
	err := GetAppContext(c).CartStore().RemoveFromCart(cartID(c), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to remove cart item", nil)
	}
	return c.NoContent(http.StatusNoContent)
}

func clearCart(c echo.Context) error {
	if cartUnavailable(c) {
		return fail(c, http.StatusServiceUnavailable, "CART_UNAVAILABLE", "Cart storage is not available", nil)
	}
	if err := GetAppContext(c).CartStore().ClearCart(cartID(c)); err != nil {
		return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to clear cart", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
