package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/services"
)

// TenantHandler handles tenant and end-customer HTTP requests
type TenantHandler struct {
	tenantService *services.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// HandleSearchTenants returns tenants whose name contains the search query
func (h *TenantHandler) HandleSearchTenants(c *gin.Context) {
	tenants, err := h.tenantService.SearchTenants(c.Request.Context(), c.Query("search"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to search tenants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tenants"})
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// HandleGetTenant returns one tenant by id
func (h *TenantHandler) HandleGetTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant ID"})
		return
	}
	tenant, err := h.tenantService.GetTenant(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		log.Error().Err(err).Str("tenant_id", c.Param("tenantId")).Msg("Failed to get tenant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tenant"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// HandleSearchEndCustomers lists a tenant's end customers, filtered by phone
// or name
func (h *TenantHandler) HandleSearchEndCustomers(c *gin.Context) {
	customers, err := h.tenantService.SearchEndCustomers(
		c.Request.Context(), c.Param("tenantId"), c.Query("phone"), c.Query("search"))
	if err != nil {
		log.Error().Err(err).Str("tenant_id", c.Param("tenantId")).Msg("Failed to search end customers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// HandleGetEndCustomer returns one end customer scoped to a tenant
func (h *TenantHandler) HandleGetEndCustomer(c *gin.Context) {
	customer, err := h.tenantService.GetEndCustomer(
		c.Request.Context(), c.Param("tenantId"), c.Param("customerId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidGUID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant or customer ID"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		default:
			log.Error().Err(err).Str("customer_id", c.Param("customerId")).Msg("Failed to get end customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// HandleUpdateEndCustomer overwrites the profile fields of an end customer
func (h *TenantHandler) HandleUpdateEndCustomer(c *gin.Context) {
	var update services.EndCustomerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Error().Err(err).Msg("Invalid end customer request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.tenantService.UpdateEndCustomer(
		c.Request.Context(), c.Param("tenantId"), c.Param("customerId"), update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidGUID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant or customer ID"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		default:
			log.Error().Err(err).Str("customer_id", c.Param("customerId")).Msg("Failed to update end customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// RegisterRoutes registers the handler's routes
func (h *TenantHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/tenants")
	group.GET("", h.HandleSearchTenants)
	group.GET("/:tenantId", h.HandleGetTenant)
	group.GET("/:tenantId/customers", h.HandleSearchEndCustomers)
	group.GET("/:tenantId/customers/:customerId", h.HandleGetEndCustomer)
	group.PATCH("/:tenantId/customers/:customerId", h.HandleUpdateEndCustomer)
}
