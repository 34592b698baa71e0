package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/resp"
	"github.com/iamaamins/sporkbox-client-sub001/services"
	"github.com/iamaamins/sporkbox-client-sub001/utils"
)

type CartController struct {
	Cart   *services.CartService
	Quotes *services.QuoteService
}

func NewCartController(cart *services.CartService, quotes *services.QuoteService) *CartController {
	return &CartController{Cart: cart, Quotes: quotes}
}

// cartLineIn carries a line's identity plus the priced fields. Identity is
// item + delivery date + shift + restaurant; quantity is not part of it.
type cartLineIn struct {
	ItemID       string   `json:"itemId" binding:"required"`
	ItemName     string   `json:"itemName"`
	RestaurantID string   `json:"restaurantId" binding:"required"`
	ShiftID      string   `json:"shiftId" binding:"required"`
	Shift        string   `json:"shift"`
	DeliveryDate int64    `json:"deliveryDate" binding:"required"`
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unitPrice"`
	AddonPrice   float64  `json:"addonPrice"`
	Addons       []string `json:"addons"`
}

func (in *cartLineIn) toItem() entity.CartItem {
	return entity.CartItem{
		ItemID:       in.ItemID,
		ItemName:     in.ItemName,
		RestaurantID: in.RestaurantID,
		ShiftID:      in.ShiftID,
		Shift:        in.Shift,
		DeliveryDate: in.DeliveryDate,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		AddonPrice:   in.AddonPrice,
		Addons:       in.Addons,
	}
}

// GET /cart
func (ctl *CartController) Get(c *gin.Context) {
	q, err := ctl.Quotes.Quote(c.Request.Context(), utils.CurrentUserID(c), utils.BearerToken(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, q)
}

// POST /cart/items
func (ctl *CartController) AddItem(c *gin.Context) {
	var in cartLineIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid cart item")
		return
	}

	userID := utils.CurrentUserID(c)
	if _, err := ctl.Cart.AddOrUpdate(c.Request.Context(), userID, in.toItem()); err != nil {
		if errors.Is(err, services.ErrBadQuantity) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	ctl.respondWithQuote(c, userID)
}

// PATCH /cart/items
func (ctl *CartController) UpdateQuantity(c *gin.Context) {
	var in cartLineIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid cart item")
		return
	}

	userID := utils.CurrentUserID(c)
	if _, err := ctl.Cart.UpdateQuantity(c.Request.Context(), userID, in.toItem(), in.Quantity); err != nil {
		resp.ServerError(c, err)
		return
	}
	ctl.respondWithQuote(c, userID)
}

// DELETE /cart/items
func (ctl *CartController) RemoveItem(c *gin.Context) {
	var in cartLineIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid cart item")
		return
	}

	userID := utils.CurrentUserID(c)
	if _, err := ctl.Cart.Remove(c.Request.Context(), userID, in.toItem()); err != nil {
		resp.ServerError(c, err)
		return
	}
	ctl.respondWithQuote(c, userID)
}

// DELETE /cart
func (ctl *CartController) Clear(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if err := ctl.Cart.Clear(c.Request.Context(), userID); err != nil {
		resp.ServerError(c, err)
		return
	}
	ctl.respondWithQuote(c, userID)
}

// Every mutation answers with a fresh quote so the UI re-renders the payable
// amount without a second round trip.
func (ctl *CartController) respondWithQuote(c *gin.Context, userID string) {
	q, err := ctl.Quotes.Quote(c.Request.Context(), userID, utils.BearerToken(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, q)
}
