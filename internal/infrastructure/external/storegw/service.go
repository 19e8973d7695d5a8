package storegw

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
	"github.com/raceday/pro-upgrade/internal/infrastructure/cache"
)

// Service is a per-user store.Service backed by the gateway client. It
// publishes the observable fields under a lock; the screen re-reads them
// on every render.
type Service struct {
	client  *Client
	catalog *cache.CatalogCache // may be nil
	userID  string
	logger  *zap.Logger

	mu        sync.RWMutex
	products  []entity.Product
	pro       bool
	loading   bool
	lastState *entity.TransactionState
}

// NewService creates a store session for one user. catalog may be nil.
func NewService(client *Client, catalog *cache.CatalogCache, userID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		catalog: catalog,
		userID:  userID,
		logger:  logger.With(zap.String("user_id", userID)),
	}
}

func (s *Service) IsProUser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pro
}

func (s *Service) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Service) TransactionState() *entity.TransactionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastState
}

// LoadProducts populates the catalog, preferring the shared cache, and
// refreshes the entitlement alongside it. An entitlement failure is not
// fatal to the catalog load.
func (s *Service) LoadProducts(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if pro, err := s.client.FetchEntitlement(ctx, s.userID); err == nil {
		s.mu.Lock()
		s.pro = pro
		s.mu.Unlock()
	} else {
		s.logger.Warn("entitlement refresh failed", zap.Error(err))
	}

	if s.catalog != nil {
		if products, err := s.catalog.Get(ctx); err == nil && len(products) > 0 {
			s.setProducts(products)
			return nil
		}
	}

	products, err := s.client.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	s.setProducts(products)

	if s.catalog != nil {
		if err := s.catalog.Set(ctx, products); err != nil {
			s.logger.Warn("catalog cache update failed", zap.Error(err))
		}
	}
	return nil
}

// Purchase forwards the purchase to the gateway and publishes the resulting
// transaction state. A successful purchase grants the entitlement.
func (s *Service) Purchase(ctx context.Context, product entity.Product) (entity.PurchaseResult, error) {
	result, tx, err := s.client.Purchase(ctx, s.userID, product.ID)
	if err != nil {
		return entity.PurchaseResult{}, err
	}

	s.mu.Lock()
	if tx != nil {
		s.lastState = tx
	}
	if result.Outcome == entity.PurchaseSuccess {
		s.pro = true
	}
	s.mu.Unlock()

	return result, nil
}

// RestorePurchases asks the gateway to restore completed purchases and
// mirrors the entitlement it reports.
func (s *Service) RestorePurchases(ctx context.Context) error {
	pro, tx, err := s.client.Restore(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pro = pro
	if tx != nil {
		s.lastState = tx
	}
	s.mu.Unlock()
	return nil
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Service) setProducts(products []entity.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}
