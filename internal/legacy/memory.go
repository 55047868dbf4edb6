// internal/legacy/memory.go
package legacy

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used when the legacy mirror is disabled
// and as the test double for the reconciliation and merge paths.
type MemoryStore struct {
	mtx        sync.RWMutex
	products   map[int]Product
	categories map[int]Category
	suppliers  map[int]Supplier
	shippers   []Shipper
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[int]Product),
		categories: make(map[int]Category),
		suppliers:  make(map[int]Supplier),
	}
}

// Seed loads fixture records, replacing existing ones with the same id.
func (s *MemoryStore) Seed(products []Product, categories []Category, suppliers []Supplier) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, p := range products {
		s.products[p.ProductID] = p
	}
	for _, c := range categories {
		s.categories[c.CategoryID] = c
	}
	for _, sup := range suppliers {
		s.suppliers[sup.SupplierID] = sup
	}
}

func (s *MemoryStore) Products(ctx context.Context) ([]Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	products := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.CopiedToStore {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *MemoryStore) ProductByKey(ctx context.Context, key string) (*Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, p := range s.products {
		if p.Key == key {
			product := p
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CategoryByID(ctx context.Context, categoryID int) (*Category, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if c, ok := s.categories[categoryID]; ok {
		category := c
		return &category, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SupplierByID(ctx context.Context, supplierID int) (*Supplier, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if sup, ok := s.suppliers[supplierID]; ok {
		supplier := sup
		return &supplier, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Shippers(ctx context.Context) ([]Shipper, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return append([]Shipper(nil), s.shippers...), nil
}

func (s *MemoryStore) MarkProductCopied(ctx context.Context, productID int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return ErrNotFound
	}
	p.CopiedToStore = true
	s.products[productID] = p
	return nil
}

func (s *MemoryStore) MarkCategoryCopied(ctx context.Context, categoryID int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c, ok := s.categories[categoryID]
	if !ok {
		return ErrNotFound
	}
	c.CopiedToStore = true
	s.categories[categoryID] = c
	return nil
}

func (s *MemoryStore) MarkSupplierCopied(ctx context.Context, supplierID int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sup, ok := s.suppliers[supplierID]
	if !ok {
		return ErrNotFound
	}
	sup.CopiedToStore = true
	s.suppliers[supplierID] = sup
	return nil
}

func (s *MemoryStore) Close() error { return nil }
