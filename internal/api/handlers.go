// Package api exposes the verification service over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime399/packmate/internal/core"
	"github.com/prime399/packmate/internal/logging"
	"github.com/prime399/packmate/internal/script"
	"github.com/prime399/packmate/internal/service"
	"github.com/prime399/packmate/internal/store"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	svc *service.Service
	log *logging.Logger
}

// NewHandlers creates a handler set.
func NewHandlers(svc *service.Service, log *logging.Logger) *Handlers {
	return &Handlers{svc: svc, log: log}
}

// Health reports service and circuit breaker status.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"breakers": h.svc.BreakerStates(),
		"catalog":  h.svc.Catalog().Len(),
	})
}

type verifyRequest struct {
	AppID            string `json:"appId" binding:"required"`
	PackageManagerID string `json:"packageManagerId" binding:"required"`
	PackageName      string `json:"packageName" binding:"required"`
	SkipStorage      bool   `json:"skipStorage"`
}

// VerifyPackage checks a single (app, manager) pairing.
func (h *Handlers) VerifyPackage(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opts []service.VerifyOption
	if req.SkipStorage {
		opts = append(opts, service.SkipStorage())
	}

	result, err := h.svc.VerifyPackage(c.Request.Context(), req.AppID, req.PackageManagerID, req.PackageName, opts...)
	if err != nil {
		// Retries exhausted: no definitive answer, as opposed to a failed
		// result which is a definitive negative.
		status := http.StatusBadGateway
		var rl *core.RateLimitError
		if errors.As(err, &rl) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyAll runs a full catalog sweep and returns the summary.
func (h *Handlers) VerifyAll(c *gin.Context) {
	summary, err := h.svc.VerifyAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "partial": summary})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListFlagged returns results awaiting manual review.
func (h *Handlers) ListFlagged(c *gin.Context) {
	q := store.FlaggedQuery{
		PackageManagerID: c.Query("packageManagerId"),
		SortBy:           c.Query("sortBy"),
	}

	flagged, err := h.svc.Flagged(c.Request.Context(), q)
	if err != nil {
		h.log.Error("review queue listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list flagged results"})
		return
	}
	if flagged == nil {
		flagged = []core.VerificationResult{}
	}

	c.JSON(http.StatusOK, gin.H{"flagged": flagged, "count": len(flagged)})
}

type clearFlagRequest struct {
	AppID            string `json:"appId" binding:"required"`
	PackageManagerID string `json:"packageManagerId" binding:"required"`
}

// ClearFlag acknowledges a flagged regression.
func (h *Handlers) ClearFlag(c *gin.Context) {
	var req clearFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.ClearReviewFlag(c.Request.Context(), req.AppID, req.PackageManagerID); err != nil {
		h.log.Error("clearing review flag failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear review flag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

type scriptRequest struct {
	PackageManagerID string   `json:"packageManagerId" binding:"required"`
	AppIDs           []string `json:"appIds" binding:"required"`
}

// GenerateScript renders an installation script for selected catalog apps.
func (h *Handlers) GenerateScript(c *gin.Context) {
	var req scriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var packages []string
	for _, appID := range req.AppIDs {
		app, ok := h.svc.Catalog().App(appID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown app: " + appID})
			return
		}
		name, ok := app.Packages[req.PackageManagerID]
		if !ok || name == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "app " + appID + " has no package for " + req.PackageManagerID,
			})
			return
		}
		packages = append(packages, name)
	}

	out, err := script.Generate(req.PackageManagerID, packages)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"script": out})
}

// ListApps returns the catalog.
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": h.svc.Catalog().Apps()})
}
