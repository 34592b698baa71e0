package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/pkg/resp"
	"github.com/iamaamins/sporkbox-client-sub001/services"
	"github.com/iamaamins/sporkbox-client-sub001/utils"
)

type DiscountController struct {
	Discount *services.DiscountService
	Quotes   *services.QuoteService
}

func NewDiscountController(discount *services.DiscountService, quotes *services.QuoteService) *DiscountController {
	return &DiscountController{Discount: discount, Quotes: quotes}
}

// POST /discount/apply
func (ctl *DiscountController) Apply(c *gin.Context) {
	var in struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "code is required")
		return
	}

	userID := utils.CurrentUserID(c)
	token := utils.BearerToken(c)
	if _, err := ctl.Discount.Apply(c.Request.Context(), userID, token, in.Code); err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}

	q, err := ctl.Quotes.Quote(c.Request.Context(), userID, token)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, q)
}

// DELETE /discount
func (ctl *DiscountController) Remove(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if err := ctl.Discount.Remove(c.Request.Context(), userID); err != nil {
		resp.ServerError(c, err)
		return
	}

	q, err := ctl.Quotes.Quote(c.Request.Context(), userID, utils.BearerToken(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, q)
}
