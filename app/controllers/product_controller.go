package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/catalog/app/query"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index serves GET /products.
func (pc *ProductController) Index(c *ctx.Context) {
	spec, err := query.Parse(c.QueryValues())
	if err != nil {
		fail(c, err)
		return
	}
	list, err := pc.service.List(c.Context(), spec)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(list)
}

// ByUser serves GET /products/user/{user_id}.
func (pc *ProductController) ByUser(c *ctx.Context) {
	owner, ok := c.ParamUint("user_id")
	if !ok {
		return
	}
	spec, err := query.Parse(c.QueryValues())
	if err != nil {
		fail(c, err)
		return
	}
	list, err := pc.service.ListByOwner(c.Context(), owner, spec)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(list)
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	p, err := pc.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(p)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var in services.CreateProductInput
	if !c.BindJSON(&in) {
		return
	}
	p, err := pc.service.Create(c.Context(), in, c.Actor())
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(p)
}

func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.UpdateProductInput
	if !c.BindJSON(&in) {
		return
	}
	p, err := pc.service.Update(c.Context(), id, in, c.Actor())
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(p)
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := pc.service.Delete(c.Context(), id, c.Actor()); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	return uint(n), err
}
