package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sengkeat-dex/Tokenize/ledger"
	"github.com/sengkeat-dex/Tokenize/metrics"
	"github.com/sengkeat-dex/Tokenize/models"
)

type AssetHandler struct {
	ledger  *ledger.Ledger
	metrics *metrics.Registry
}

func NewAssetHandler(l *ledger.Ledger, m *metrics.Registry) *AssetHandler {
	return &AssetHandler{
		ledger:  l,
		metrics: m,
	}
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		badRequest(c, err)
		return
	}

	// Fill in what the caller may leave out
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	if asset.ComplianceStatus == "" {
		asset.ComplianceStatus = models.Pending
	}
	if asset.CreatedAt == 0 {
		asset.CreatedAt = time.Now().Unix()
	}
	if asset.UpdatedAt == 0 {
		asset.UpdatedAt = asset.CreatedAt
	}
	if err := asset.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	_, err := h.ledger.CreateAsset(asset)
	observe(h.metrics, "create_asset", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OK(asset))
}

// ListAssets returns every asset, or only those of ?type= when given.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var (
		assets []models.Asset
		err    error
	)
	if assetType, ok := c.GetQuery("type"); ok {
		assets, err = h.ledger.ListAssetsByType(models.ParseAssetType(assetType))
		observe(h.metrics, "list_assets_by_type", err)
	} else {
		assets, err = h.ledger.ListAssets()
		observe(h.metrics, "list_assets", err)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(assets))
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.ledger.GetAsset(c.Param("id"))
	observe(h.metrics, "get_asset", err)
	if err != nil {
		respondError(c, err)
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, models.Fail("asset not found"))
		return
	}
	c.JSON(http.StatusOK, models.OK(asset))
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id := c.Param("id")

	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		badRequest(c, err)
		return
	}
	if asset.ID == "" {
		asset.ID = id
	}
	if asset.ID != id {
		badRequest(c, errors.New("asset id in body does not match path"))
		return
	}
	if asset.ComplianceStatus == "" {
		asset.ComplianceStatus = models.Pending
	}
	if err := asset.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	err := h.ledger.UpdateAsset(id, asset)
	observe(h.metrics, "update_asset", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(asset))
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	err := h.ledger.DeleteAsset(c.Param("id"))
	observe(h.metrics, "delete_asset", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKWithMessage[any](nil, "asset deleted"))
}

func (h *AssetHandler) CheckCompliance(c *gin.Context) {
	id := c.Param("id")

	status, err := h.ledger.PerformComplianceCheck(id)
	observe(h.metrics, "perform_compliance_check", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(gin.H{
		"asset_id":          id,
		"compliance_status": status,
	}))
}
