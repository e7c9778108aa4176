package services

import (
	"context"
	"sort"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

// PriceSummary is the average price over one owner's products.
// AveragePrice is nil when the owner has none.
type PriceSummary struct {
	AveragePrice *float64 `json:"average_price"`
	Count        int      `json:"count"`
}

// StatsService computes price aggregates per owner.
type StatsService struct {
	stats    StatsStore
	products ProductStore
}

func NewStatsService(stats StatsStore, products ProductStore) *StatsService {
	return &StatsService{stats: stats, products: products}
}

// AvgPricePerCategory aggregates in SQL.
func (s *StatsService) AvgPricePerCategory(ctx context.Context, owner uint) ([]models.CategoryAverage, error) {
	out, err := s.stats.AvgPricePerCategory(ctx, owner)
	if err != nil {
		return nil, internal("average price per category", err)
	}
	return out, nil
}

// AvgPricePerCategoryInMemory loads the owner's products and groups them
// in process. It returns what AvgPricePerCategory returns.
func (s *StatsService) AvgPricePerCategoryInMemory(ctx context.Context, owner uint) ([]models.CategoryAverage, error) {
	products, err := s.products.ListWithCategory(ctx, &owner)
	if err != nil {
		return nil, internal("list products by owner", err)
	}

	groups := collection.GroupBy(products, func(p models.ProductWithCategory) string { return p.CategoryName })
	out := make([]models.CategoryAverage, 0, len(groups))
	for name, ps := range groups {
		total := collection.Sum(ps, func(p models.ProductWithCategory) float64 { return p.Price })
		out = append(out, models.CategoryAverage{Category: name, AvgPrice: total / float64(len(ps))})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgPrice != out[j].AvgPrice {
			return out[i].AvgPrice > out[j].AvgPrice
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// AveragePrice averages the owner's product prices in process.
func (s *StatsService) AveragePrice(ctx context.Context, owner uint) (PriceSummary, error) {
	products, err := s.products.ListByOwner(ctx, owner)
	if err != nil {
		return PriceSummary{}, internal("list products by owner", err)
	}
	if len(products) == 0 {
		return PriceSummary{}, nil
	}

	avg := collection.Sum(products, func(p models.Product) float64 { return p.Price }) / float64(len(products))
	return PriceSummary{AveragePrice: &avg, Count: len(products)}, nil
}
