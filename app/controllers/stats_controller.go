package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type StatsController struct {
	service *services.StatsService
}

func NewStatsController(service *services.StatsService) *StatsController {
	return &StatsController{service: service}
}

// AvgPricePerCategory serves GET /stats/avg-price-per-category?user_id=.
func (sc *StatsController) AvgPricePerCategory(c *ctx.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}
	out, err := sc.service.AvgPricePerCategory(c.Context(), owner)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(out)
}

// AvgPricePerCategoryInMemory serves GET /stats/avg-price-per-category-inmemory?user_id=.
func (sc *StatsController) AvgPricePerCategoryInMemory(c *ctx.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}
	out, err := sc.service.AvgPricePerCategoryInMemory(c.Context(), owner)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(out)
}

// AvgPrice serves GET /stats/avg-price?user_id=.
func (sc *StatsController) AvgPrice(c *ctx.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}
	out, err := sc.service.AveragePrice(c.Context(), owner)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(out)
}
