package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// Fetcher is the read-only contract of the remote catalog API.
type Fetcher interface {
	FetchAllItems(ctx context.Context) ([]Item, error)
	FetchCategories(ctx context.Context) ([]string, error)
	FetchByCategory(ctx context.Context, name string) ([]Item, error)
}

var ErrInvalidProduct = errors.New("invalid product")

// Service serves catalog reads through a cache and owns product creation.
type Service struct {
	fetcher Fetcher
	cache   Cache
	repo    Repository
}

func NewService(fetcher Fetcher, cache Cache, repo Repository) *Service {
	return &Service{fetcher: fetcher, cache: cache, repo: repo}
}

func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if s.cached(ctx, "products", &items) {
		return items, nil
	}

	items, err := s.fetcher.FetchAllItems(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, "products", items)
	return items, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.cached(ctx, "categories", &categories) {
		return categories, nil
	}

	categories, err := s.fetcher.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, "categories", categories)
	return categories, nil
}

func (s *Service) ListByCategory(ctx context.Context, name string) ([]Item, error) {
	key := "category:" + name
	var items []Item
	if s.cached(ctx, key, &items) {
		return items, nil
	}

	items, err := s.fetcher.FetchByCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, items)
	return items, nil
}

// CreateItem stores a new product with the next free id. Ids continue from
// whichever is higher: the remote catalog's max id or the stored counter.
func (s *Service) CreateItem(ctx context.Context, item Item) (Item, error) {
	if item.Title == "" || item.Price.IsNegative() {
		return Item{}, ErrInvalidProduct
	}

	remote, err := s.fetcher.FetchAllItems(ctx)
	if err != nil {
		return Item{}, err
	}
	maxID := 0
	for _, it := range remote {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	if stored, err := s.repo.MaxProductID(ctx); err == nil && stored > maxID {
		maxID = stored
	}

	item.ID = maxID + 1
	if err := s.repo.Insert(ctx, item); err != nil {
		return Item{}, err
	}
	if err := s.repo.SetMaxProductID(ctx, item.ID); err != nil {
		log.Printf("catalog: could not advance product counter: %v", err)
	}
	return item, nil
}

// cached loads a cache entry into out; misses and cache errors both report
// false so the caller falls through to the remote catalog.
func (s *Service) cached(ctx context.Context, key string, out interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("catalog: cache read failed for %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("catalog: discarding bad cache entry %s: %v", key, err)
		return false
	}
	return true
}

func (s *Service) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		log.Printf("catalog: cache write failed for %s: %v", key, err)
	}
}
