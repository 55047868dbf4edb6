// internal/services/reconcile_test.go
package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/legacy"
	"github.com/gamevault/gamestore-backend/internal/models"
)

// fakeCatalog is an in-memory primaryCatalog with the same uniqueness rules
// as the real schema: game keys, genre names, and publisher company names
// collide with ErrDuplicateKey.
type fakeCatalog struct {
	mtx        sync.Mutex
	games      map[string]*models.Game
	genres     map[string]*models.Genre
	publishers map[string]*models.Publisher

	failNextCreateGame bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		games:      make(map[string]*models.Game),
		genres:     make(map[string]*models.Genre),
		publishers: make(map[string]*models.Publisher),
	}
}

func (f *fakeCatalog) GameByKey(ctx context.Context, key string) (*models.Game, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if game, ok := f.games[key]; ok {
		return game, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CreateGame(ctx context.Context, game *models.Game) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if f.failNextCreateGame {
		f.failNextCreateGame = false
		f.games[game.Key] = &models.Game{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Key:       game.Key,
			Name:      game.Name,
		}
		return ErrDuplicateKey
	}
	if _, ok := f.games[game.Key]; ok {
		return ErrDuplicateKey
	}
	game.ID = uuid.New()
	f.games[game.Key] = game
	return nil
}

func (f *fakeCatalog) GenreByLegacyCategory(ctx context.Context, categoryID int) (*models.Genre, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, genre := range f.genres {
		if genre.LegacyCategoryID != nil && *genre.LegacyCategoryID == categoryID {
			return genre, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) GenreByName(ctx context.Context, name string) (*models.Genre, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if genre, ok := f.genres[name]; ok {
		return genre, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CreateGenre(ctx context.Context, genre *models.Genre) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if _, ok := f.genres[genre.Name]; ok {
		return ErrDuplicateKey
	}
	genre.ID = uuid.New()
	f.genres[genre.Name] = genre
	return nil
}

func (f *fakeCatalog) PublisherByLegacySupplier(ctx context.Context, supplierID int) (*models.Publisher, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, publisher := range f.publishers {
		if publisher.LegacySupplierID != nil && *publisher.LegacySupplierID == supplierID {
			return publisher, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) PublisherByName(ctx context.Context, name string) (*models.Publisher, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if publisher, ok := f.publishers[name]; ok {
		return publisher, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CreatePublisher(ctx context.Context, publisher *models.Publisher) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if _, ok := f.publishers[publisher.CompanyName]; ok {
		return ErrDuplicateKey
	}
	publisher.ID = uuid.New()
	f.publishers[publisher.CompanyName] = publisher
	return nil
}

func newTestReconciler(catalog primaryCatalog, store legacy.Store) *Reconciler {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &Reconciler{
		catalog: catalog,
		legacy:  store,
		logger:  logrus.NewEntry(logger),
	}
}

func seededLegacyStore() *legacy.MemoryStore {
	store := legacy.NewMemoryStore()
	store.Seed(
		[]legacy.Product{{
			ProductID:       17,
			Key:             "chai-quest",
			ProductName:     "Chai Quest",
			QuantityPerUnit: "digital download",
			UnitPrice:       18.5,
			UnitsInStock:    39,
			CategoryID:      1,
			SupplierID:      2,
			ViewCount:       120,
			AddedAt:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		}},
		[]legacy.Category{{CategoryID: 1, CategoryName: "Beverages"}},
		[]legacy.Supplier{{SupplierID: 2, CompanyName: "Exotic Liquids", HomePage: "https://example.test"}},
	)
	return store
}

func TestReconcileProductCopiesEverything(t *testing.T) {
	catalog := newFakeCatalog()
	store := seededLegacyStore()
	reconciler := newTestReconciler(catalog, store)

	product, err := store.ProductByKey(context.Background(), "chai-quest")
	require.NoError(t, err)

	game, err := reconciler.ReconcileProduct(context.Background(), product)
	require.NoError(t, err)

	assert.Equal(t, "chai-quest", game.Key)
	assert.Equal(t, "Chai Quest", game.Name)
	assert.Equal(t, "digital download", game.Description)
	assert.Equal(t, 18.5, game.Price)
	assert.Equal(t, 39, game.UnitsInStock)
	assert.Equal(t, int64(120), game.ViewCount)

	require.Len(t, game.Genres, 1)
	assert.Equal(t, "Beverages", game.Genres[0].Name)
	require.NotNil(t, game.Genres[0].LegacyCategoryID)
	assert.Equal(t, 1, *game.Genres[0].LegacyCategoryID)

	require.NotNil(t, game.PublisherID)
	publisher, err := catalog.PublisherByName(context.Background(), "Exotic Liquids")
	require.NoError(t, err)
	assert.Equal(t, *game.PublisherID, publisher.ID)

	// The product drops out of the legacy listing once copied.
	products, err := store.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestReconcileProductLosesInsertRace(t *testing.T) {
	catalog := newFakeCatalog()
	store := seededLegacyStore()
	reconciler := newTestReconciler(catalog, store)

	product, err := store.ProductByKey(context.Background(), "chai-quest")
	require.NoError(t, err)

	// Simulate a concurrent copy winning the insert: the create fails with a
	// duplicate and the row it raced against is what gets re-read.
	catalog.failNextCreateGame = true

	game, err := reconciler.ReconcileProduct(context.Background(), product)
	require.NoError(t, err)

	winner, err := catalog.GameByKey(context.Background(), "chai-quest")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, game.ID)
}

func TestReconcileProductIdempotent(t *testing.T) {
	catalog := newFakeCatalog()
	store := seededLegacyStore()
	reconciler := newTestReconciler(catalog, store)

	product, err := store.ProductByKey(context.Background(), "chai-quest")
	require.NoError(t, err)

	first, err := reconciler.ReconcileProduct(context.Background(), product)
	require.NoError(t, err)

	second, err := reconciler.ReconcileProduct(context.Background(), product)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, catalog.games, 1)
	assert.Len(t, catalog.genres, 1)
	assert.Len(t, catalog.publishers, 1)
}

func TestReconcileProductMissingCategoryCopiesWithoutGenre(t *testing.T) {
	catalog := newFakeCatalog()
	store := legacy.NewMemoryStore()
	store.Seed(
		[]legacy.Product{{
			ProductID:   9,
			Key:         "orphan-odyssey",
			ProductName: "Orphan Odyssey",
			UnitPrice:   12,
			CategoryID:  99,
			SupplierID:  98,
		}},
		nil, nil,
	)
	reconciler := newTestReconciler(catalog, store)

	product, err := store.ProductByKey(context.Background(), "orphan-odyssey")
	require.NoError(t, err)

	game, err := reconciler.ReconcileProduct(context.Background(), product)
	require.NoError(t, err)

	assert.Empty(t, game.Genres)
	assert.Nil(t, game.PublisherID)
	assert.Len(t, catalog.games, 1)
}

func TestReconcileProductFailsOnCopiedCategoryDrift(t *testing.T) {
	catalog := newFakeCatalog()
	store := legacy.NewMemoryStore()
	store.Seed(
		[]legacy.Product{{
			ProductID:   17,
			Key:         "chai-quest",
			ProductName: "Chai Quest",
			UnitPrice:   18.5,
			CategoryID:  1,
		}},
		[]legacy.Category{{CategoryID: 1, CategoryName: "Beverages", CopiedToStore: true}},
		nil,
	)
	reconciler := newTestReconciler(catalog, store)

	product, err := store.ProductByKey(context.Background(), "chai-quest")
	require.NoError(t, err)

	// The category claims it was copied but no genre carries it: failing
	// surfaces the drift instead of re-creating a duplicate row.
	_, err = reconciler.ReconcileProduct(context.Background(), product)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopiedRowMissing)
	assert.Empty(t, catalog.genres)
}

func TestEnsurePublisherFailsOnCopiedSupplierDrift(t *testing.T) {
	catalog := newFakeCatalog()
	store := legacy.NewMemoryStore()
	store.Seed(nil, nil,
		[]legacy.Supplier{{SupplierID: 2, CompanyName: "Exotic Liquids", CopiedToStore: true}},
	)
	reconciler := newTestReconciler(catalog, store)

	_, err := reconciler.ensurePublisher(context.Background(), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopiedRowMissing)
	assert.Empty(t, catalog.publishers)
}

func TestEnsureGenreAdoptsRowAfterCopiedMark(t *testing.T) {
	catalog := newFakeCatalog()
	legacyID := 1
	seeded := &models.Genre{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		Name:             "Beverages",
		LegacyCategoryID: &legacyID,
	}
	catalog.genres[seeded.Name] = seeded

	store := legacy.NewMemoryStore()
	store.Seed(nil,
		[]legacy.Category{{CategoryID: 1, CategoryName: "Beverages", CopiedToStore: true}},
		nil,
	)
	reconciler := newTestReconciler(catalog, store)

	genre, err := reconciler.ensureGenre(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, genre.ID)
}

func TestReconcileProductAdoptsExistingGenreByName(t *testing.T) {
	catalog := newFakeCatalog()
	seeded := &models.Genre{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Beverages",
	}
	catalog.genres[seeded.Name] = seeded

	store := seededLegacyStore()
	reconciler := newTestReconciler(catalog, store)

	product, err := store.ProductByKey(context.Background(), "chai-quest")
	require.NoError(t, err)

	game, err := reconciler.ReconcileProduct(context.Background(), product)
	require.NoError(t, err)

	require.Len(t, game.Genres, 1)
	assert.Equal(t, seeded.ID, game.Genres[0].ID)
	assert.Len(t, catalog.genres, 1)
}

func TestEnsureGenreZeroCategorySkipped(t *testing.T) {
	reconciler := newTestReconciler(newFakeCatalog(), legacy.NewMemoryStore())

	genre, err := reconciler.ensureGenre(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, genre)
}

func TestEnsurePublisherZeroSupplierSkipped(t *testing.T) {
	reconciler := newTestReconciler(newFakeCatalog(), legacy.NewMemoryStore())

	publisher, err := reconciler.ensurePublisher(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, publisher)
}

func TestTranslateDuplicate(t *testing.T) {
	assert.ErrorIs(t, translateDuplicate(gorm.ErrDuplicatedKey), ErrDuplicateKey)
	assert.NoError(t, translateDuplicate(nil))
	assert.NotErrorIs(t, translateDuplicate(gorm.ErrRecordNotFound), ErrDuplicateKey)
}
