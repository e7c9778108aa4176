package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/query"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// CreateProductInput is the body of POST /products. UserID names the owner
// when the request carries no bearer token.
type CreateProductInput struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image"       validate:"required,max=1024"`
	Video       *string `json:"video"       validate:"nullable,max=1024"`
	CategoryID  uint    `json:"category_id" validate:"required,gt=0"`
	UserID      uint    `json:"user_id"`
}

// UpdateProductInput is the body of PATCH /products/{id}. Absent fields are
// left unchanged. UserID only attributes the activity record.
type UpdateProductInput struct {
	Name        *string  `json:"name"        validate:"nullable,filled,max=255"`
	Price       *float64 `json:"price"       validate:"nullable,gt=0"`
	Description *string  `json:"description" validate:"nullable,filled"`
	Image       *string  `json:"image"       validate:"nullable,filled,max=1024"`
	Video       *string  `json:"video"       validate:"nullable,max=1024"`
	CategoryID  *uint    `json:"category_id" validate:"nullable,gt=0"`
	UserID      *uint    `json:"user_id"`
}

// ProductService implements product reads and mutations. Every mutation
// is followed by a best-effort activity record.
type ProductService struct {
	products   ProductStore
	categories CategoryStore
	activity   Recorder
}

func NewProductService(products ProductStore, categories CategoryStore, activity Recorder) *ProductService {
	return &ProductService{products: products, categories: categories, activity: activity}
}

// List returns every product joined with its category, filtered and
// ordered by spec.
func (s *ProductService) List(ctx context.Context, spec query.Spec) ([]models.ProductWithCategory, error) {
	all, err := s.products.ListWithCategory(ctx, nil)
	if err != nil {
		return nil, internal("list products", err)
	}
	return query.Apply(all, spec), nil
}

// ListByOwner is List restricted to one owner's products.
func (s *ProductService) ListByOwner(ctx context.Context, owner uint, spec query.Spec) ([]models.ProductWithCategory, error) {
	mine, err := s.products.ListWithCategory(ctx, &owner)
	if err != nil {
		return nil, internal("list products by owner", err)
	}
	return query.Apply(mine, spec), nil
}

// Get returns one product joined with its category.
func (s *ProductService) Get(ctx context.Context, id uint) (models.ProductWithCategory, error) {
	p, err := s.products.FindWithCategory(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return p, ErrNotFound
	case err != nil:
		return p, internal("get product", err)
	}
	return p, nil
}

// Create validates in and stores a new product. The owner is in.UserID,
// falling back to the bearer actor; the activity record is attributed the
// other way round.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput, actor uint) (models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, &ValidationError{Fields: errs}
	}

	owner := in.UserID
	if owner == 0 {
		owner = actor
	}
	if actor == 0 {
		actor = owner
	}
	if owner == 0 {
		return models.Product{}, invalid("user_id", "The user_id field is required.")
	}
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		Video:       in.Video,
		CategoryID:  in.CategoryID,
		UserID:      owner,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return models.Product{}, internal("create product", err)
	}

	s.activity.Record(ctx, actor, models.ActionCreate, models.EntityProduct, &p.ID)
	return p, nil
}

// Update applies the non-nil fields of in. The actor is the bearer actor,
// then in.UserID, then the product owner.
func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput, actor uint) (models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, &ValidationError{Fields: errs}
	}

	p, err := s.products.Find(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return p, ErrNotFound
	case err != nil:
		return p, internal("find product", err)
	}

	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
			return models.Product{}, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Video != nil {
		p.Video = in.Video
	}

	if err := s.products.Update(ctx, &p); err != nil {
		return models.Product{}, internal("update product", err)
	}

	switch {
	case actor != 0:
	case in.UserID != nil && *in.UserID != 0:
		actor = *in.UserID
	default:
		actor = p.UserID
	}
	s.activity.Record(ctx, actor, models.ActionUpdate, models.EntityProduct, &p.ID)
	return p, nil
}

// Delete removes the product. The actor is the bearer actor, else the owner.
func (s *ProductService) Delete(ctx context.Context, id uint, actor uint) error {
	p, err := s.products.Find(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return internal("find product", err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return internal("delete product", err)
	}

	if actor == 0 {
		actor = p.UserID
	}
	s.activity.Record(ctx, actor, models.ActionDelete, models.EntityProduct, &id)
	return nil
}

func (s *ProductService) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return internal("check category", err)
	}
	if !ok {
		return invalid("category_id", "The selected category_id is invalid.")
	}
	return nil
}
