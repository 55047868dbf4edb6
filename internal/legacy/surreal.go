// internal/legacy/surreal.go
package legacy

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/gamevault/gamestore-backend/internal/config"
)

// SurrealStore reads the Northwind mirror from a SurrealDB instance. The
// client is synchronous over a websocket; ctx is honored only for the
// cancellation checks before each call.
type SurrealStore struct {
	db *surrealdb.DB
}

func NewSurrealStore(cfg config.LegacyConfig) (*SurrealStore, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to legacy store: %w", err)
	}

	if _, err := db.Signin(map[string]interface{}{
		"user": cfg.Username,
		"pass": cfg.Password,
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to sign in to legacy store: %w", err)
	}

	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to select legacy namespace: %w", err)
	}

	return &SurrealStore{db: db}, nil
}

func (s *SurrealStore) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	err := s.query(ctx, "SELECT * FROM product WHERE copied_to_store = false", nil, &products)
	return products, err
}

func (s *SurrealStore) ProductByKey(ctx context.Context, key string) (*Product, error) {
	var products []Product
	err := s.query(ctx, "SELECT * FROM product WHERE key = $key LIMIT 1",
		map[string]interface{}{"key": key}, &products)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNotFound
	}
	return &products[0], nil
}

func (s *SurrealStore) CategoryByID(ctx context.Context, categoryID int) (*Category, error) {
	var categories []Category
	err := s.query(ctx, "SELECT * FROM category WHERE category_id = $id LIMIT 1",
		map[string]interface{}{"id": categoryID}, &categories)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return &categories[0], nil
}

func (s *SurrealStore) SupplierByID(ctx context.Context, supplierID int) (*Supplier, error) {
	var suppliers []Supplier
	err := s.query(ctx, "SELECT * FROM supplier WHERE supplier_id = $id LIMIT 1",
		map[string]interface{}{"id": supplierID}, &suppliers)
	if err != nil {
		return nil, err
	}
	if len(suppliers) == 0 {
		return nil, ErrNotFound
	}
	return &suppliers[0], nil
}

func (s *SurrealStore) Shippers(ctx context.Context) ([]Shipper, error) {
	var shippers []Shipper
	err := s.query(ctx, "SELECT * FROM shipper", nil, &shippers)
	return shippers, err
}

func (s *SurrealStore) MarkProductCopied(ctx context.Context, productID int) error {
	return s.exec(ctx, "UPDATE product SET copied_to_store = true WHERE product_id = $id",
		map[string]interface{}{"id": productID})
}

func (s *SurrealStore) MarkCategoryCopied(ctx context.Context, categoryID int) error {
	return s.exec(ctx, "UPDATE category SET copied_to_store = true WHERE category_id = $id",
		map[string]interface{}{"id": categoryID})
}

func (s *SurrealStore) MarkSupplierCopied(ctx context.Context, supplierID int) error {
	return s.exec(ctx, "UPDATE supplier SET copied_to_store = true WHERE supplier_id = $id",
		map[string]interface{}{"id": supplierID})
}

func (s *SurrealStore) Close() error {
	s.db.Close()
	return nil
}

func (s *SurrealStore) query(ctx context.Context, sql string, vars map[string]interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := s.db.Query(sql, vars)
	if err != nil {
		return fmt.Errorf("legacy query failed: %w", err)
	}

	// ok = false means an empty result set; out keeps its zero value.
	if _, err := surrealdb.UnmarshalRaw(raw, out); err != nil {
		return fmt.Errorf("failed to decode legacy response: %w", err)
	}
	return nil
}

func (s *SurrealStore) exec(ctx context.Context, sql string, vars map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.db.Query(sql, vars); err != nil {
		return fmt.Errorf("legacy update failed: %w", err)
	}
	return nil
}
