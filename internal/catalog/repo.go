package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DragonMart/internal/blob"
)

const (
	// New admin-entered products have no review history yet; they start at a
	// fixed placeholder rating with zero reviews.
	newProductRating = 4.4
)

var (
	ErrTitleRequired   = errors.New("title required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNegativePrice   = errors.New("price must be >= 0")
	ErrNegativeStock   = errors.New("stock must be >= 0")
)

// Repo owns the mutable product list, newest first, mirrored to the blob
// store after every mutation.
type Repo struct {
	mu       sync.RWMutex
	products []Product

	store blob.Store
	log   *zap.Logger
}

// SeedOrRestore builds a Repo from the stored catalog, dropping rows that
// fail validation. An absent or corrupt document yields the demo set.
func SeedOrRestore(ctx context.Context, store blob.Store, log *zap.Logger) *Repo {
	stored := blob.Load(ctx, store, log, blob.KeyCatalog, []Product(nil))

	kept := make([]Product, 0, len(stored))
	for _, p := range stored {
		if !p.valid() {
			if log != nil {
				log.Warn("dropping invalid stored product", zap.String("id", p.ID))
			}
			continue
		}
		kept = append(kept, p)
	}

	if len(kept) == 0 {
		kept = DemoProducts()
	}

	return &Repo{products: kept, store: store, log: log}
}

type CreateInput struct {
	Title       string
	Category    Category
	Price       float64
	Stock       int
	Prime       bool
	Image       string
	ExtraImages []string
	Videos      []string
	Description string
}

// Create assigns a fresh id, applies new-product defaults, and prepends the
// product to the catalog.
func (r *Repo) Create(ctx context.Context, in CreateInput) (Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Product{}, ErrTitleRequired
	}
	if !ValidCategory(in.Category) {
		return Product{}, ErrUnknownCategory
	}
	if in.Price < 0 {
		return Product{}, ErrNegativePrice
	}
	if in.Stock < 0 {
		return Product{}, ErrNegativeStock
	}

	p := Product{
		ID:          "p_" + uuid.NewString(),
		Title:       title,
		Category:    in.Category,
		Price:       in.Price,
		Rating:      newProductRating,
		Reviews:     0,
		Prime:       in.Prime,
		Stock:       in.Stock,
		Image:       strings.TrimSpace(in.Image),
		Images:      cleanList(append([]string{in.Image}, in.ExtraImages...)),
		Videos:      cleanList(in.Videos),
		Description: strings.TrimSpace(in.Description),
	}

	r.mu.Lock()
	r.products = append([]Product{p}, r.products...)
	snapshot := r.copyLocked()
	r.mu.Unlock()

	blob.Save(ctx, r.store, r.log, blob.KeyCatalog, snapshot)
	return p, nil
}

// Delete removes the product with the given id. Deleting an unknown id is a
// no-op, keeping the operation idempotent under repeated UI events.
func (r *Repo) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	kept := r.products[:0:0]
	for _, p := range r.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	changed := len(kept) != len(r.products)
	r.products = kept
	snapshot := r.copyLocked()
	r.mu.Unlock()

	if changed {
		blob.Save(ctx, r.store, r.log, blob.KeyCatalog, snapshot)
	}
}

// List returns a snapshot copy, newest first.
func (r *Repo) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyLocked()
}

func (r *Repo) Get(id string) (Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (r *Repo) copyLocked() []Product {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// cleanList trims every entry and drops the empty ones.
func cleanList(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if t := strings.TrimSpace(x); t != "" {
			out = append(out, t)
		}
	}
	return out
}
