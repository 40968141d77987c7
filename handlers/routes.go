package handlers

import "github.com/gin-gonic/gin"

// Register mounts the components API and the ledger API under api.
func Register(api *gin.RouterGroup, components *ComponentHandler, assets *AssetHandler, wallets *WalletHandler) {
	api.GET("/components", components.GetAll)
	api.GET("/components/:mainType", components.GetByType)
	api.GET("/components/:mainType/:subType", components.GetBySubType)

	core := api.Group("/core")
	core.POST("/assets", assets.CreateAsset)
	core.GET("/assets", assets.ListAssets)
	core.GET("/assets/:id", assets.GetAsset)
	core.PUT("/assets/:id", assets.UpdateAsset)
	core.DELETE("/assets/:id", assets.DeleteAsset)
	core.POST("/assets/:id/compliance", assets.CheckCompliance)

	core.POST("/wallets", wallets.CreateWallet)
	core.GET("/wallets", wallets.ListWallets)
	core.GET("/wallets/:id", wallets.GetWallet)
	core.POST("/wallets/:id/assets", wallets.AddAsset)
	core.DELETE("/wallets/:id/assets/:assetId", wallets.RemoveAsset)
	core.GET("/wallets/:id/value", wallets.GetValue)
}
