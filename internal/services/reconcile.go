// internal/services/reconcile.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/legacy"
	"github.com/gamevault/gamestore-backend/internal/models"
)

var (
	// ErrDuplicateKey is returned by the primary catalog when an insert
	// collides with an existing slug.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCopiedRowMissing reports drift between the two stores: a legacy
	// record is marked copied but the primary store has no matching row.
	// Surfaced instead of re-copying, which would create duplicates.
	ErrCopiedRowMissing = errors.New("marked copied but not found in primary store")
)

// primaryCatalog is the slice of the primary store the reconciler needs.
// The gorm adapter below implements it; tests substitute an in-memory fake.
type primaryCatalog interface {
	GameByKey(ctx context.Context, key string) (*models.Game, error)
	CreateGame(ctx context.Context, game *models.Game) error
	GenreByLegacyCategory(ctx context.Context, categoryID int) (*models.Genre, error)
	GenreByName(ctx context.Context, name string) (*models.Genre, error)
	CreateGenre(ctx context.Context, genre *models.Genre) error
	PublisherByLegacySupplier(ctx context.Context, supplierID int) (*models.Publisher, error)
	PublisherByName(ctx context.Context, name string) (*models.Publisher, error)
	CreatePublisher(ctx context.Context, publisher *models.Publisher) error
}

// Reconciler copies legacy products into the primary store the first time
// they are read individually. The copy is idempotent: the game slug is
// unique, so a concurrent copy loses the insert race and re-reads the row
// the winner created. Genres and publishers referenced by the product are
// created on demand from their legacy counterparts.
type Reconciler struct {
	catalog primaryCatalog
	legacy  legacy.Store
	logger  *logrus.Entry
}

func NewReconciler(db *gorm.DB, legacyStore legacy.Store) *Reconciler {
	return &Reconciler{
		catalog: &gormCatalog{db: db},
		legacy:  legacyStore,
		logger:  logrus.WithField("component", "reconciler"),
	}
}

// ReconcileProduct copies the legacy product into the primary store and
// marks it copied. Safe to call for a product another request is copying
// concurrently; both callers end up with the same game row.
func (r *Reconciler) ReconcileProduct(ctx context.Context, product *legacy.Product) (*models.Game, error) {
	game := &models.Game{
		Key:          product.Key,
		Name:         product.ProductName,
		Description:  product.QuantityPerUnit,
		Price:        product.UnitPrice,
		UnitsInStock: product.UnitsInStock,
		Discontinued: product.Discontinued,
		ViewCount:    product.ViewCount,
	}

	genre, err := r.ensureGenre(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if genre != nil {
		game.Genres = []models.Genre{*genre}
	}

	publisher, err := r.ensurePublisher(ctx, product.SupplierID)
	if err != nil {
		return nil, err
	}
	if publisher != nil {
		game.PublisherID = &publisher.ID
	}

	if err := r.catalog.CreateGame(ctx, game); err != nil {
		if !errors.Is(err, ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to copy product %q: %w", product.Key, err)
		}
		// Lost the insert race; another request copied the product first.
		game, err = r.catalog.GameByKey(ctx, product.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read copied product %q: %w", product.Key, err)
		}
	}

	if err := r.legacy.MarkProductCopied(ctx, product.ProductID); err != nil {
		// The game exists either way; an unmarked product is re-copied
		// harmlessly on the next read.
		r.logger.WithError(err).WithField("product_id", product.ProductID).
			Warn("failed to mark legacy product as copied")
	}

	r.logger.WithFields(logrus.Fields{
		"key":        product.Key,
		"product_id": product.ProductID,
	}).Info("legacy product copied to primary store")

	return game, nil
}

// ensureGenre resolves the genre for a legacy category id, creating it from
// the legacy category on first use. A category that has disappeared from the
// legacy store yields no genre rather than an error; a category marked
// copied whose genre cannot be found fails with ErrCopiedRowMissing.
func (r *Reconciler) ensureGenre(ctx context.Context, categoryID int) (*models.Genre, error) {
	if categoryID == 0 {
		return nil, nil
	}

	genre, err := r.catalog.GenreByLegacyCategory(ctx, categoryID)
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up genre for category %d: %w", categoryID, err)
	}

	category, err := r.legacy.CategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, legacy.ErrNotFound) {
			r.logger.WithField("category_id", categoryID).
				Warn("legacy category missing, copying product without genre")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read legacy category %d: %w", categoryID, err)
	}

	// A genre with the same name may already exist from seeding or an
	// earlier manual creation; adopt it for this category.
	genre, err = r.catalog.GenreByName(ctx, category.CategoryName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up genre %q: %w", category.CategoryName, err)
	}
	if genre == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		if category.CopiedToStore {
			return nil, fmt.Errorf("category %d: %w", categoryID, ErrCopiedRowMissing)
		}
		genre = &models.Genre{
			Name:             category.CategoryName,
			LegacyCategoryID: &category.CategoryID,
		}
		if err := r.catalog.CreateGenre(ctx, genre); err != nil {
			if errors.Is(err, ErrDuplicateKey) {
				genre, err = r.catalog.GenreByName(ctx, category.CategoryName)
				if err != nil {
					return nil, fmt.Errorf("failed to re-read genre %q: %w", category.CategoryName, err)
				}
			} else {
				return nil, fmt.Errorf("failed to create genre %q: %w", category.CategoryName, err)
			}
		}
	}

	if err := r.legacy.MarkCategoryCopied(ctx, categoryID); err != nil {
		r.logger.WithError(err).WithField("category_id", categoryID).
			Warn("failed to mark legacy category as copied")
	}

	return genre, nil
}

// ensurePublisher mirrors ensureGenre for legacy suppliers.
func (r *Reconciler) ensurePublisher(ctx context.Context, supplierID int) (*models.Publisher, error) {
	if supplierID == 0 {
		return nil, nil
	}

	publisher, err := r.catalog.PublisherByLegacySupplier(ctx, supplierID)
	if err == nil {
		return publisher, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up publisher for supplier %d: %w", supplierID, err)
	}

	supplier, err := r.legacy.SupplierByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, legacy.ErrNotFound) {
			r.logger.WithField("supplier_id", supplierID).
				Warn("legacy supplier missing, copying product without publisher")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read legacy supplier %d: %w", supplierID, err)
	}

	publisher, err = r.catalog.PublisherByName(ctx, supplier.CompanyName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up publisher %q: %w", supplier.CompanyName, err)
	}
	if publisher == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		if supplier.CopiedToStore {
			return nil, fmt.Errorf("supplier %d: %w", supplierID, ErrCopiedRowMissing)
		}
		publisher = &models.Publisher{
			CompanyName:      supplier.CompanyName,
			HomePage:         supplier.HomePage,
			LegacySupplierID: &supplier.SupplierID,
		}
		if err := r.catalog.CreatePublisher(ctx, publisher); err != nil {
			if errors.Is(err, ErrDuplicateKey) {
				publisher, err = r.catalog.PublisherByName(ctx, supplier.CompanyName)
				if err != nil {
					return nil, fmt.Errorf("failed to re-read publisher %q: %w", supplier.CompanyName, err)
				}
			} else {
				return nil, fmt.Errorf("failed to create publisher %q: %w", supplier.CompanyName, err)
			}
		}
	}

	if err := r.legacy.MarkSupplierCopied(ctx, supplierID); err != nil {
		r.logger.WithError(err).WithField("supplier_id", supplierID).
			Warn("failed to mark legacy supplier as copied")
	}

	return publisher, nil
}

// gormCatalog adapts *gorm.DB to the primaryCatalog interface.
type gormCatalog struct {
	db *gorm.DB
}

func (g *gormCatalog) GameByKey(ctx context.Context, key string) (*models.Game, error) {
	var game models.Game
	if err := g.db.WithContext(ctx).
		Preload("Genres").Preload("Platforms").Preload("Publisher").
		Where("key = ?", key).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (g *gormCatalog) CreateGame(ctx context.Context, game *models.Game) error {
	return translateDuplicate(g.db.WithContext(ctx).Create(game).Error)
}

func (g *gormCatalog) GenreByLegacyCategory(ctx context.Context, categoryID int) (*models.Genre, error) {
	var genre models.Genre
	if err := g.db.WithContext(ctx).
		Where("legacy_category_id = ?", categoryID).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (g *gormCatalog) GenreByName(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	if err := g.db.WithContext(ctx).
		Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (g *gormCatalog) CreateGenre(ctx context.Context, genre *models.Genre) error {
	return translateDuplicate(g.db.WithContext(ctx).Create(genre).Error)
}

func (g *gormCatalog) PublisherByLegacySupplier(ctx context.Context, supplierID int) (*models.Publisher, error) {
	var publisher models.Publisher
	if err := g.db.WithContext(ctx).
		Where("legacy_supplier_id = ?", supplierID).First(&publisher).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (g *gormCatalog) PublisherByName(ctx context.Context, name string) (*models.Publisher, error) {
	var publisher models.Publisher
	if err := g.db.WithContext(ctx).
		Where("company_name = ?", name).First(&publisher).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (g *gormCatalog) CreatePublisher(ctx context.Context, publisher *models.Publisher) error {
	return translateDuplicate(g.db.WithContext(ctx).Create(publisher).Error)
}

func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint") {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
