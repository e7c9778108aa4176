// Package graphql exposes a read-only GraphQL view of the catalog on
// POST /graphql. Resolvers call the same services as the REST handlers.
package graphql

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/query"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// Resolvers holds the services the schema reads from.
type Resolvers struct {
	Products   *services.ProductService
	Categories *services.CategoryService
	Monitor    *services.MonitorService
	Activity   *services.ActivityService
}

var errInternal = errors.New("internal server error")

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"created_at":  &graphql.Field{Type: graphql.DateTime},
		"updated_at":  &graphql.Field{Type: graphql.DateTime},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":         &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"description":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"image":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"video":         &graphql.Field{Type: graphql.String},
		"category_id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"category_name": &graphql.Field{Type: graphql.String},
		"user_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"created_at":    &graphql.Field{Type: graphql.DateTime},
		"updated_at":    &graphql.Field{Type: graphql.DateTime},
	},
})

var monitoredUserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonitoredUser",
	Fields: graphql.Fields{
		"user_id":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var activityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Activity",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"user_id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"action":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"entity":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"entity_id": &graphql.Field{Type: graphql.Int},
		"timestamp": &graphql.Field{Type: graphql.DateTime},
	},
})

// NewSchema builds the root query over r.
func NewSchema(r Resolvers) (graphql.Schema, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"user_id":     &graphql.ArgumentConfig{Type: graphql.Int},
					"category_id": &graphql.ArgumentConfig{Type: graphql.Int},
					"min_price":   &graphql.ArgumentConfig{Type: graphql.Float},
					"max_price":   &graphql.ArgumentConfig{Type: graphql.Float},
					"search_term": &graphql.ArgumentConfig{Type: graphql.String},
					"sort_by":     &graphql.ArgumentConfig{Type: graphql.String},
					"sort_order":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.products,
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.product,
			},
			"categories": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(categoryType))),
				Resolve: r.categories,
			},
			"monitoredUsers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(monitoredUserType))),
				Resolve: r.monitoredUsers,
			},
			"recentActivity": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(activityType))),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: r.recentActivity,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: root})
}

func (r Resolvers) products(p graphql.ResolveParams) (interface{}, error) {
	spec := query.Spec{}
	if v, ok := p.Args["category_id"].(int); ok && v >= 0 {
		id := uint(v)
		spec.CategoryID = &id
	}
	if v, ok := p.Args["min_price"].(float64); ok {
		spec.MinPrice = &v
	}
	if v, ok := p.Args["max_price"].(float64); ok {
		spec.MaxPrice = &v
	}
	spec.SearchTerm, _ = p.Args["search_term"].(string)
	spec.SortBy, _ = p.Args["sort_by"].(string)
	spec.SortOrder, _ = p.Args["sort_order"].(string)

	var (
		list []models.ProductWithCategory
		err  error
	)
	if owner, ok := p.Args["user_id"].(int); ok && owner > 0 {
		list, err = r.Products.ListByOwner(p.Context, uint(owner), spec)
	} else {
		list, err = r.Products.List(p.Context, spec)
	}
	if err != nil {
		return nil, public(p.Context, err)
	}

	out := make([]map[string]interface{}, len(list))
	for i, item := range list {
		out[i] = productMap(item)
	}
	return out, nil
}

func (r Resolvers) product(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(int)
	if id <= 0 {
		return nil, nil
	}
	item, err := r.Products.Get(p.Context, uint(id))
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, public(p.Context, err)
	}
	return productMap(item), nil
}

func (r Resolvers) categories(p graphql.ResolveParams) (interface{}, error) {
	list, err := r.Categories.List(p.Context)
	if err != nil {
		return nil, public(p.Context, err)
	}
	out := make([]map[string]interface{}, len(list))
	for i, c := range list {
		out[i] = map[string]interface{}{
			"id":          int(c.ID),
			"name":        c.Name,
			"description": c.Description,
			"created_at":  c.CreatedAt,
			"updated_at":  c.UpdatedAt,
		}
	}
	return out, nil
}

func (r Resolvers) monitoredUsers(p graphql.ResolveParams) (interface{}, error) {
	list, err := r.Monitor.List(p.Context)
	if err != nil {
		return nil, public(p.Context, err)
	}
	out := make([]map[string]interface{}, len(list))
	for i, m := range list {
		out[i] = map[string]interface{}{"user_id": int(m.UserID), "username": m.Username}
	}
	return out, nil
}

func (r Resolvers) recentActivity(p graphql.ResolveParams) (interface{}, error) {
	limit, _ := p.Args["limit"].(int)
	list, err := r.Activity.Recent(p.Context, limit)
	if err != nil {
		return nil, public(p.Context, err)
	}
	out := make([]map[string]interface{}, len(list))
	for i, l := range list {
		var entityID interface{}
		if l.EntityID != nil {
			entityID = int(*l.EntityID)
		}
		out[i] = map[string]interface{}{
			"id":        int(l.ID),
			"user_id":   int(l.UserID),
			"action":    l.Action,
			"entity":    l.Entity,
			"entity_id": entityID,
			"timestamp": l.Timestamp,
		}
	}
	return out, nil
}

func productMap(p models.ProductWithCategory) map[string]interface{} {
	var video interface{}
	if p.Video != nil {
		video = *p.Video
	}
	return map[string]interface{}{
		"id":            int(p.ID),
		"name":          p.Name,
		"price":         p.Price,
		"description":   p.Description,
		"image":         p.Image,
		"video":         video,
		"category_id":   int(p.CategoryID),
		"category_name": p.CategoryName,
		"user_id":       int(p.UserID),
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
}

// public hides internal detail from GraphQL clients.
func public(ctx context.Context, err error) error {
	logger.WithCtx(ctx).Error("graphql: resolver failed", "error", err)
	return errInternal
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. Query errors are reported in the
// response's "errors" array with status 200.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if _, err := bind.JSON(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Query == "" {
			response.ValidationError(w, map[string]string{"query": "The query field is required."})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})
		response.JSON(w, http.StatusOK, result)
	}
}
