package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/cache"
	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
)

const tenantCacheTTL = 10 * time.Minute

// EndCustomerUpdate is the patch payload for an end customer profile.
type EndCustomerUpdate struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	Latitude   *float32 `json:"latitude"`
	Longitude  *float32 `json:"longitude"`
	IsVerified bool     `json:"is_verified"`
}

// TenantService carries tenant lookup and end-customer operations.
type TenantService struct {
	tenants repositories.TenantRepository
	cache   *cache.RedisCache
}

func NewTenantService(tenants repositories.TenantRepository, redisCache *cache.RedisCache) *TenantService {
	return &TenantService{tenants: tenants, cache: redisCache}
}

// SearchTenants matches tenants whose name contains the query. A blank query
// matches nothing.
func (s *TenantService) SearchTenants(ctx context.Context, query string) ([]models.Tenant, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Tenant{}, nil
	}
	return s.tenants.SearchByName(ctx, query)
}

// GetTenant looks a tenant up by id, serving repeats from cache.
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	key := cache.GetTenantCacheKey(id)
	if s.cache.Enabled() {
		var tenant models.Tenant
		if err := s.cache.Get(ctx, key, &tenant); err == nil {
			return &tenant, nil
		}
	}
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, tenant, tenantCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache tenant")
		}
	}
	return tenant, nil
}

// SearchEndCustomers lists a tenant's end customers. A phone filter wins over
// a name filter and always yields exactly one element, the match or an empty
// placeholder. With both filters absent the full table is returned.
func (s *TenantService) SearchEndCustomers(ctx context.Context, tenantID, phone, name string) ([]models.EndCustomer, error) {
	if phone != "" {
		match, err := s.tenants.FindEndCustomerByPhone(ctx, tenantID, phone)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return []models.EndCustomer{{}}, nil
			}
			return nil, err
		}
		return []models.EndCustomer{*match}, nil
	}
	if name != "" {
		return s.tenants.SearchEndCustomersByName(ctx, tenantID, name)
	}
	return s.tenants.ListEndCustomers(ctx)
}

// GetEndCustomer fetches one end customer scoped to a tenant. Both ids must
// be well formed guids.
func (s *TenantService) GetEndCustomer(ctx context.Context, tenantID, customerID string) (*models.EndCustomer, error) {
	tid, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, ErrInvalidGUID
	}
	cid, err := uuid.Parse(customerID)
	if err != nil {
		return nil, ErrInvalidGUID
	}
	return s.tenants.GetEndCustomer(ctx, tid, cid)
}

// UpdateEndCustomer overwrites the mutable profile fields of an end customer.
func (s *TenantService) UpdateEndCustomer(ctx context.Context, tenantID, customerID string, update EndCustomerUpdate) (*models.EndCustomer, error) {
	existing, err := s.GetEndCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	existing.Name = update.Name
	existing.Phone = update.Phone
	existing.Address = update.Address
	existing.Latitude = update.Latitude
	existing.Longitude = update.Longitude
	existing.IsVerified = update.IsVerified
	if err := s.tenants.SaveEndCustomer(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
