package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sengkeat-dex/Tokenize/ledger"
	"github.com/sengkeat-dex/Tokenize/metrics"
	"github.com/sengkeat-dex/Tokenize/models"
)

type WalletHandler struct {
	ledger  *ledger.Ledger
	metrics *metrics.Registry
}

func NewWalletHandler(l *ledger.Ledger, m *metrics.Registry) *WalletHandler {
	return &WalletHandler{
		ledger:  l,
		metrics: m,
	}
}

func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var wallet models.Wallet
	if err := c.ShouldBindJSON(&wallet); err != nil {
		badRequest(c, err)
		return
	}

	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if wallet.WalletType == "" {
		wallet.WalletType = models.Custodial
	}
	if wallet.Assets == nil {
		wallet.Assets = []string{}
	}
	if wallet.CreatedAt == 0 {
		wallet.CreatedAt = time.Now().Unix()
	}
	if wallet.UpdatedAt == 0 {
		wallet.UpdatedAt = wallet.CreatedAt
	}
	if err := wallet.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.ledger.CreateWallet(wallet)
	observe(h.metrics, "create_wallet", err)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWallet(c, http.StatusCreated, id)
}

func (h *WalletHandler) ListWallets(c *gin.Context) {
	wallets, err := h.ledger.ListWallets()
	observe(h.metrics, "list_wallets", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(wallets))
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	h.respondWallet(c, http.StatusOK, c.Param("id"))
}

func (h *WalletHandler) AddAsset(c *gin.Context) {
	var request struct {
		AssetID string `json:"asset_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}

	walletID := c.Param("id")
	err := h.ledger.AddAssetToWallet(walletID, request.AssetID)
	observe(h.metrics, "add_asset_to_wallet", err)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWallet(c, http.StatusOK, walletID)
}

func (h *WalletHandler) RemoveAsset(c *gin.Context) {
	walletID := c.Param("id")
	err := h.ledger.RemoveAssetFromWallet(walletID, c.Param("assetId"))
	observe(h.metrics, "remove_asset_from_wallet", err)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWallet(c, http.StatusOK, walletID)
}

func (h *WalletHandler) GetValue(c *gin.Context) {
	walletID := c.Param("id")
	value, err := h.ledger.GetWalletValue(walletID)
	observe(h.metrics, "get_wallet_value", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(gin.H{
		"wallet_id": walletID,
		"value":     value,
	}))
}

// respondWallet answers with the wallet as currently stored.
func (h *WalletHandler) respondWallet(c *gin.Context, status int, walletID string) {
	wallet, err := h.ledger.GetWallet(walletID)
	observe(h.metrics, "get_wallet", err)
	if err != nil {
		respondError(c, err)
		return
	}
	if wallet == nil {
		c.JSON(http.StatusNotFound, models.Fail("wallet not found"))
		return
	}
	c.JSON(status, models.OK(wallet))
}
