package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/ws"
)

type ActivityController struct {
	service *services.ActivityService
	hub     *ws.Hub
}

func NewActivityController(service *services.ActivityService, hub *ws.Hub) *ActivityController {
	return &ActivityController{service: service, hub: hub}
}

// Recent serves GET /activity?limit=.
func (ac *ActivityController) Recent(c *ctx.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := parseUint(raw)
		if err != nil {
			c.ValidationError(map[string]string{"limit": "The limit must be a positive integer."})
			return
		}
		limit = int(n)
	}
	list, err := ac.service.Recent(c.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(list)
}

// Feed upgrades GET /ws/activity to a websocket that receives every
// recorded event and every promotion as JSON.
func (ac *ActivityController) Feed(c *ctx.Context) {
	ac.hub.Upgrade(c.W, c.R)
}
