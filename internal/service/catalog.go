package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beggab/storechina/internal/cache"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/search"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	searchCacheTTL     = time.Hour
)

// CatalogService fronts the marketplace oracle: it searches via the
// configured provider, persists what it saw, and records a session so the
// chat layer can resolve follow-up callbacks. Search is advisory; provider
// trouble falls back to the demo inventory instead of failing the user.
type CatalogService struct {
	Repo     *repo.GormRepo
	Provider search.Provider
	Fallback search.Provider
	Cache    cache.Cache
}

func (s *CatalogService) Search(ctx context.Context, telegramID int64, query string, limit int) ([]models.Product, error) {
	l := logging.FromContext(ctx)

	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.Cache != nil {
		key := s.Cache.GenerateKey("search", query)
		if cached, err := s.Cache.Get(ctx, key); err != nil {
			l.Warn("search cache read failed", "error", err)
		} else if cached != "" {
			var products []models.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				// cached results still open a session, the chat layer
				// resolves callbacks against it either way
				if telegramID != 0 {
					if _, err := s.Repo.SaveSearchSession(ctx, telegramID, query, cached); err != nil {
						l.Warn("search session save failed", "error", err)
					}
				}
				return products, nil
			}
		}
	}

	products, err := s.Provider.Search(ctx, query, limit)
	if err != nil && s.Fallback != nil {
		l.Warn("search provider failed, using fallback inventory", "query", query, "error", err)
		products, err = s.Fallback.Search(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrPersistence, query, err)
	}

	if err := s.Repo.UpsertProducts(ctx, products); err != nil {
		l.Warn("catalog ingest failed", "query", query, "error", err)
	} else {
		itemIDs := make([]string, len(products))
		for i, p := range products {
			itemIDs[i] = p.TaobaoItemID
		}
		if stored, err := s.Repo.ProductsByItemIDs(ctx, itemIDs); err == nil {
			products = stored
		}
	}

	payload, err := json.Marshal(products)
	if err == nil {
		if telegramID != 0 {
			if _, err := s.Repo.SaveSearchSession(ctx, telegramID, query, string(payload)); err != nil {
				l.Warn("search session save failed", "error", err)
			}
		}
		if s.Cache != nil {
			key := s.Cache.GenerateKey("search", query)
			if err := s.Cache.Set(ctx, key, string(payload), searchCacheTTL); err != nil {
				l.Warn("search cache write failed", "error", err)
			}
		}
	}

	return products, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit < 1 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}
	if offset < 0 {
		offset = 0
	}
	products, err := s.Repo.ListProducts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", ErrPersistence, err)
	}
	return products, nil
}

func (s *CatalogService) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return product, nil
}
