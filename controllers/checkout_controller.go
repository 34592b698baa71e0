package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/pkg/resp"
	"github.com/iamaamins/sporkbox-client-sub001/services"
	"github.com/iamaamins/sporkbox-client-sub001/utils"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// POST /checkout
func (ctl *CheckoutController) Create(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	token := utils.BearerToken(c)

	res, err := ctl.Checkout.Checkout(c.Request.Context(), userID, token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCheckoutInFlight):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrEmptyCart):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, services.ErrCheckoutFailed)
		}
		return
	}
	resp.Created(c, res)
}
