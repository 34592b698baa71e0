package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/pkg/resp"
	"github.com/iamaamins/sporkbox-client-sub001/services"
	"github.com/iamaamins/sporkbox-client-sub001/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GET /orders/upcoming?grouped=1
func (ctl *OrderController) Upcoming(c *gin.Context) {
	orders, err := ctl.Orders.Upcoming(c.Request.Context(), utils.BearerToken(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if c.Query("grouped") == "1" {
		resp.OK(c, services.UpcomingByDate(orders))
		return
	}
	resp.OK(c, orders)
}

// GET /orders/delivered?limit=25
func (ctl *OrderController) Delivered(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	orders, err := ctl.Orders.Delivered(c.Request.Context(), utils.BearerToken(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, orders)
}
