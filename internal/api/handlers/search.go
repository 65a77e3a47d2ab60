package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/search"
)

// SearchHandler serves full-text order search backed by Elasticsearch
type SearchHandler struct {
	elastic *search.ElasticClient
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(elastic *search.ElasticClient) *SearchHandler {
	return &SearchHandler{elastic: elastic}
}

// HandleSearchOrders queries the order index. Without a q parameter every
// indexed order matches.
func (h *SearchHandler) HandleSearchOrders(c *gin.Context) {
	var query map[string]interface{}
	if q := c.Query("q"); q != "" {
		query = map[string]interface{}{
			"query": map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  q,
					"fields": []string{"order_id", "customer_id", "customer_name", "vehicle_id", "milk_type", "status"},
				},
			},
		}
	} else {
		query = map[string]interface{}{
			"query": map[string]interface{}{
				"match_all": map[string]interface{}{},
			},
		}
	}

	docs, err := h.elastic.SearchOrders(c.Request.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search orders"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// RegisterRoutes registers the handler's routes
func (h *SearchHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/orders/search", h.HandleSearchOrders)
}
