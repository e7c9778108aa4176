package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type MonitorController struct {
	service *services.MonitorService
}

func NewMonitorController(service *services.MonitorService) *MonitorController {
	return &MonitorController{service: service}
}

func (mc *MonitorController) Index(c *ctx.Context) {
	list, err := mc.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(list)
}

// Clear serves DELETE /monitored-users.
func (mc *MonitorController) Clear(c *ctx.Context) {
	if _, err := mc.service.ClearMonitored(c.Context()); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
