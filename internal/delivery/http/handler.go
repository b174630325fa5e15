package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labstock/inventory/internal/domain"
	"github.com/labstock/inventory/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	inventory *usecase.InventoryService
}

// NewHandler creates a new HTTP handler
func NewHandler(inventory *usecase.InventoryService) *Handler {
	return &Handler{inventory: inventory}
}

// ExtractSpecsRequest is the body of an extract-specs call
type ExtractSpecsRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "inventory-backend",
		"version": "1.0.0",
	})
}

// ExtractSpecs parses a description into category, specs and tags
func (h *Handler) ExtractSpecs(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req ExtractSpecsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	spec, err := h.inventory.ExtractSpecs(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, spec)
}

// CheckDuplicates lists stored items similar to a prospective new item
func (h *Handler) CheckDuplicates(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req domain.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.inventory.CheckDuplicates(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SuggestLocations ranks storage locations for an item described by query parameters
func (h *Handler) SuggestLocations(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	req, err := suggestionRequestFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	suggestions, err := h.inventory.SuggestLocations(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []domain.LocationSuggestion{}
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

func suggestionRequestFromQuery(c *gin.Context) (domain.SuggestionRequest, error) {
	req := domain.SuggestionRequest{
		Category: c.Query("category"),
		ItemType: c.Query("item_type"),
	}
	if tags := c.Query("tags"); tags != "" {
		req.Tags = strings.Split(tags, ",")
	}

	dims := []struct {
		param string
		dest  *float64
	}{
		{"width_mm", &req.WidthMM},
		{"height_mm", &req.HeightMM},
		{"depth_mm", &req.DepthMM},
	}
	for _, d := range dims {
		raw := c.Query(d.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidRequest, d.param)
		}
		*d.dest = v
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return req, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidRequest)
		}
		req.Limit = limit
	}

	return req, nil
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.inventory == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Inventory service not configured",
		})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
