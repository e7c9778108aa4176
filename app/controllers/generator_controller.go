package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type GeneratorController struct {
	service *services.GeneratorService
}

func NewGeneratorController(service *services.GeneratorService) *GeneratorController {
	return &GeneratorController{service: service}
}

// Toggle serves POST /toggle-generation.
func (gc *GeneratorController) Toggle(c *ctx.Context) {
	c.OK(gc.service.Toggle(c.Actor()))
}
