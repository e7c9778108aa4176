package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

type CreateCategoryInput struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"        validate:"nullable,filled,max=255"`
	Description *string `json:"description"`
}

// CategoryService implements category CRUD. Mutations are recorded only
// when a bearer actor is known.
type CategoryService struct {
	categories CategoryStore
	activity   Recorder
}

func NewCategoryService(categories CategoryStore, activity Recorder) *CategoryService {
	return &CategoryService{categories: categories, activity: activity}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	out, err := s.categories.List(ctx)
	if err != nil {
		return nil, internal("list categories", err)
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (models.Category, error) {
	c, err := s.categories.Find(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c, ErrNotFound
	case err != nil:
		return c, internal("get category", err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput, actor uint) (models.Category, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Category{}, &ValidationError{Fields: errs}
	}

	c := models.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, &c); err != nil {
		return models.Category{}, internal("create category", err)
	}
	s.record(ctx, actor, models.ActionCreate, c.ID)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in UpdateCategoryInput, actor uint) (models.Category, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Category{}, &ValidationError{Fields: errs}
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := s.categories.Update(ctx, &c); err != nil {
		return models.Category{}, internal("update category", err)
	}
	s.record(ctx, actor, models.ActionUpdate, c.ID)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint, actor uint) error {
	err := s.categories.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return internal("delete category", err)
	}
	s.record(ctx, actor, models.ActionDelete, id)
	return nil
}

func (s *CategoryService) record(ctx context.Context, actor uint, action string, id uint) {
	if actor == 0 {
		return
	}
	s.activity.Record(ctx, actor, action, models.EntityCategory, &id)
}
