package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (cc *CategoryController) Index(c *ctx.Context) {
	list, err := cc.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(list)
}

func (cc *CategoryController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	cat, err := cc.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(cat)
}

func (cc *CategoryController) Store(c *ctx.Context) {
	var in services.CreateCategoryInput
	if !c.BindJSON(&in) {
		return
	}
	cat, err := cc.service.Create(c.Context(), in, c.Actor())
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(cat)
}

// Update serves both PATCH and PUT; absent fields are kept.
func (cc *CategoryController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.UpdateCategoryInput
	if !c.BindJSON(&in) {
		return
	}
	cat, err := cc.service.Update(c.Context(), id, in, c.Actor())
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(cat)
}

func (cc *CategoryController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := cc.service.Delete(c.Context(), id, c.Actor()); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
