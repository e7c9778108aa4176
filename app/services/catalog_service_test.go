package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/query"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/internal/testdb"
)

type record struct {
	Actor  uint
	Action string
	Entity string
	ID     uint
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []record
}

func (r *fakeRecorder) Record(_ context.Context, actor uint, action, entity string, id *uint) services.Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := record{Actor: actor, Action: action, Entity: entity}
	if id != nil {
		rec.ID = *id
	}
	r.records = append(r.records, rec)
	return services.Attempt{}
}

type catalog struct {
	products   *services.ProductService
	categories *services.CategoryService
	stats      *services.StatsService
	auth       *services.AuthService
	recorder   *fakeRecorder
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	pool := testdb.New(t)
	productRepo := repositories.NewProductRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	rec := &fakeRecorder{}
	return &catalog{
		products:   services.NewProductService(productRepo, categoryRepo, rec),
		categories: services.NewCategoryService(categoryRepo, rec),
		stats:      services.NewStatsService(repositories.NewStatsRepository(pool), productRepo),
		auth:       services.NewAuthService(repositories.NewUserRepository(pool)),
		recorder:   rec,
	}
}

func strp(s string) *string { return &s }

func TestProductCreateValidatesBeforeWriting(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	_, err := c.products.Create(ctx, services.CreateProductInput{Name: "Hammer", Price: 0, Description: "d", Image: "i", CategoryID: 1, UserID: 1}, 0)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	_, err = c.products.Create(ctx, services.CreateProductInput{Name: "Hammer", Price: 1, Description: "d", Image: "i", CategoryID: 42, UserID: 1}, 0)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")

	all, err := c.products.List(ctx, query.Spec{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, c.recorder.records)
}

func TestProductLifecycleAttribution(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	tools, err := c.categories.Create(ctx, services.CreateCategoryInput{Name: "Tools"}, 0)
	require.NoError(t, err)

	p, err := c.products.Create(ctx, services.CreateProductInput{
		Name: "Hammer", Price: 9.99, Description: "Claw", Image: "h.jpg", CategoryID: tools.ID, UserID: 1,
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.UserID)

	updated, err := c.products.Update(ctx, p.ID, services.UpdateProductInput{Name: strp("Mallet")}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Mallet", updated.Name)
	assert.Equal(t, 9.99, updated.Price)

	_, err = c.products.Update(ctx, p.ID, services.UpdateProductInput{Description: strp("Rubber")}, 4)
	require.NoError(t, err)

	got, err := c.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tools", got.CategoryName)
	assert.Equal(t, "Rubber", got.Description)

	require.NoError(t, c.products.Delete(ctx, p.ID, 0))
	assert.ErrorIs(t, c.products.Delete(ctx, p.ID, 0), services.ErrNotFound)

	_, err = c.products.Update(ctx, p.ID, services.UpdateProductInput{}, 0)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The category create carried no bearer actor, so only product events were recorded.
	assert.Equal(t, []record{
		{Actor: 1, Action: models.ActionCreate, Entity: models.EntityProduct, ID: p.ID},
		{Actor: 1, Action: models.ActionUpdate, Entity: models.EntityProduct, ID: p.ID},
		{Actor: 4, Action: models.ActionUpdate, Entity: models.EntityProduct, ID: p.ID},
		{Actor: 1, Action: models.ActionDelete, Entity: models.EntityProduct, ID: p.ID},
	}, c.recorder.records)
}

func TestProductCreateRequiresAnOwner(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	cat, err := c.categories.Create(ctx, services.CreateCategoryInput{Name: "General"}, 0)
	require.NoError(t, err)

	_, err = c.products.Create(ctx, services.CreateProductInput{Name: "x", Price: 1, Description: "d", Image: "i", CategoryID: cat.ID}, 0)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user_id")

	p, err := c.products.Create(ctx, services.CreateProductInput{Name: "x", Price: 1, Description: "d", Image: "i", CategoryID: cat.ID}, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.UserID)
}

func TestProductCreateRecordsBearerActorOverOwner(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	cat, err := c.categories.Create(ctx, services.CreateCategoryInput{Name: "General"}, 0)
	require.NoError(t, err)

	p, err := c.products.Create(ctx, services.CreateProductInput{
		Name: "Lamp", Price: 20, Description: "d", Image: "i", CategoryID: cat.ID, UserID: 7,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.UserID)

	assert.Equal(t, []record{
		{Actor: 1, Action: models.ActionCreate, Entity: models.EntityProduct, ID: p.ID},
	}, c.recorder.records)
}

func TestCategoryMutationsRecordedOnlyWithActor(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	cat, err := c.categories.Create(ctx, services.CreateCategoryInput{Name: "Garden", Description: "Outdoor"}, 2)
	require.NoError(t, err)
	_, err = c.categories.Update(ctx, cat.ID, services.UpdateCategoryInput{Name: strp("Yard")}, 0)
	require.NoError(t, err)

	_, err = c.categories.Update(ctx, cat.ID, services.UpdateCategoryInput{Name: strp("  ")}, 0)
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, c.categories.Delete(ctx, cat.ID, 2))
	_, err = c.categories.Get(ctx, cat.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.Equal(t, []record{
		{Actor: 2, Action: models.ActionCreate, Entity: models.EntityCategory, ID: cat.ID},
		{Actor: 2, Action: models.ActionDelete, Entity: models.EntityCategory, ID: cat.ID},
	}, c.recorder.records)
}

// staleUsers hides existing usernames from the lookup, as a concurrent
// registration would.
type staleUsers struct {
	*repositories.UserRepository
}

func (staleUsers) FindByUsername(context.Context, string) (models.User, error) {
	return models.User{}, repositories.ErrNotFound
}

func TestRegisterLosingInsertRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewUserRepository(testdb.New(t))
	auth := services.NewAuthService(staleUsers{repo})

	_, err := auth.Register(ctx, services.RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, services.RegisterInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.NotErrorIs(t, err, services.ErrInternal)
}

func TestRegisterAndLogin(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	u, err := c.auth.Register(ctx, services.RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = c.auth.Register(ctx, services.RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = c.auth.Register(ctx, services.RegisterInput{Username: "root", Password: "pw", Role: "Superuser"})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	got, err := c.auth.Login(ctx, services.LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = c.auth.Login(ctx, services.LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	_, err = c.auth.Login(ctx, services.LoginInput{Username: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestInMemoryAveragesMatchSQL(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	a, err := c.categories.Create(ctx, services.CreateCategoryInput{Name: "A"}, 0)
	require.NoError(t, err)
	b, err := c.categories.Create(ctx, services.CreateCategoryInput{Name: "B"}, 0)
	require.NoError(t, err)
	for _, in := range []struct {
		cat   uint
		price float64
	}{{a.ID, 10}, {a.ID, 30}, {b.ID, 50}, {b.ID, 70}, {b.ID, 90}} {
		_, err := c.products.Create(ctx, services.CreateProductInput{
			Name: "p", Price: in.price, Description: "d", Image: "i", CategoryID: in.cat, UserID: 1,
		}, 0)
		require.NoError(t, err)
	}

	sqlAvg, err := c.stats.AvgPricePerCategory(ctx, 1)
	require.NoError(t, err)
	memAvg, err := c.stats.AvgPricePerCategoryInMemory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sqlAvg, memAvg)
	assert.Equal(t, []models.CategoryAverage{{Category: "B", AvgPrice: 70}, {Category: "A", AvgPrice: 20}}, memAvg)

	sum, err := c.stats.AveragePrice(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, sum.AveragePrice)
	assert.Equal(t, 50.0, *sum.AveragePrice)
	assert.Equal(t, 5, sum.Count)

	none, err := c.stats.AveragePrice(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, none.AveragePrice)
	assert.Zero(t, none.Count)
}

func TestInternalErrorsWrapTheCause(t *testing.T) {
	cause := errors.New("boom")
	svc := services.NewMonitorService(nil, nil, failingMonitored{cause}, nil)
	_, err := svc.ClearMonitored(context.Background())
	assert.ErrorIs(t, err, services.ErrInternal)
	assert.ErrorIs(t, err, cause)
}

type failingMonitored struct{ err error }

func (f failingMonitored) List(context.Context) ([]models.MonitoredUser, error) { return nil, f.err }
func (f failingMonitored) Promote(context.Context, models.MonitoredUser) (bool, error) {
	return false, f.err
}
func (f failingMonitored) Clear(context.Context) (int64, error) { return 0, f.err }
