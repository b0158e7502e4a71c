package repository

import (
	"context"
	"errors"

	"harvest-keeper/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Add(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

// memoryProductRepository keeps products in insertion order. It does no
// locking of its own; callers sharing it across goroutines must serialize
// access.
type memoryProductRepository struct {
	products []domain.Product
	index    map[string]int
	newID    func() string
}

// NewProductRepository creates an empty in-memory ProductRepository
func NewProductRepository() ProductRepository {
	return newMemoryProductRepository(func() string { return uuid.New().String() })
}

func newMemoryProductRepository(newID func() string) *memoryProductRepository {
	return &memoryProductRepository{
		index: make(map[string]int),
		newID: newID,
	}
}

// Add assigns a fresh ID to the draft and appends it
func (r *memoryProductRepository) Add(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	id := r.newID()
	for {
		if _, taken := r.index[id]; !taken {
			break
		}
		id = r.newID()
	}

	product := draft.WithID(id)
	r.index[id] = len(r.products)
	r.products = append(r.products, product)

	stored := product
	return &stored, nil
}

// Update replaces the product with the same ID in place
func (r *memoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	i, ok := r.index[product.ID]
	if !ok {
		return ErrProductNotFound
	}
	r.products[i] = *product
	return nil
}

// Remove deletes the product with the given ID, keeping the order of the rest
func (r *memoryProductRepository) Remove(ctx context.Context, id string) error {
	i, ok := r.index[id]
	if !ok {
		return ErrProductNotFound
	}

	r.products = append(r.products[:i], r.products[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.products); j++ {
		r.index[r.products[j].ID] = j
	}
	return nil
}

// FindByID returns a copy of the product with the given ID
func (r *memoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// List returns copies of all products in insertion order
func (r *memoryProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(r.products))
	for i := range r.products {
		product := r.products[i]
		products = append(products, &product)
	}
	return products, nil
}
