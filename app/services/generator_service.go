package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// PlaceholderImage is the image of every generated product.
const PlaceholderImage = "/assets/images/placeholder.jpg"

// GeneratorState is the body of POST /toggle-generation.
type GeneratorState struct {
	Generating bool   `json:"generating"`
	Message    string `json:"message"`
}

// ProductCreator creates products on behalf of an actor.
type ProductCreator interface {
	Create(ctx context.Context, in CreateProductInput, actor uint) (models.Product, error)
}

// GeneratorService creates one sample product per Tick while enabled. The
// products belong to the actor who last switched it on.
type GeneratorService struct {
	products   ProductCreator
	categories CategoryStore

	mu      sync.Mutex
	enabled bool
	actor   uint
	seq     int
}

func NewGeneratorService(products ProductCreator, categories CategoryStore) *GeneratorService {
	return &GeneratorService{products: products, categories: categories}
}

// Toggle flips the generator and returns the new state.
func (s *GeneratorService) Toggle(actor uint) GeneratorState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = !s.enabled
	verb := "stopped"
	if s.enabled {
		s.actor = actor
		verb = "started"
		metrics.Generating.Set(1)
	} else {
		metrics.Generating.Set(0)
	}
	logger.Info("generator: toggled", "generating", s.enabled, "actor_id", actor)
	return GeneratorState{Generating: s.enabled, Message: "Product generation " + verb}
}

// Enabled reports whether ticks create products.
func (s *GeneratorService) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Tick creates one product in the first category. It does nothing while
// disabled or when no category exists.
func (s *GeneratorService) Tick(ctx context.Context) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.seq++
	n, actor := s.seq, s.actor
	s.mu.Unlock()

	log := logger.WithCtx(ctx)
	cat, err := s.categories.First(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Debug("generator: no category, skipping tick")
		return
	}
	if err != nil {
		log.Warn("generator: load category failed", "error", err)
		return
	}

	p, err := s.products.Create(ctx, CreateProductInput{
		Name:        fmt.Sprintf("Generated Product %d", n),
		Price:       float64(10 + n%90),
		Description: fmt.Sprintf("Automatically generated product #%d", n),
		Image:       PlaceholderImage,
		CategoryID:  cat.ID,
		UserID:      actor,
	}, actor)
	if err != nil {
		log.Warn("generator: create failed", "error", err)
		return
	}
	log.Debug("generator: product created", "product_id", p.ID)
}
