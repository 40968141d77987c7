package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sengkeat-dex/Tokenize/ledger"
	"github.com/sengkeat-dex/Tokenize/models"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk an in-memory ledger through a sample asset lifecycle",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	l := ledger.New(ledger.WithLogger(log.With().Str("component", "ledger").Logger()))

	if _, err := l.CreateAsset(models.Asset{
		ID:               "asset_001",
		Name:             "Tech Company Equity Shares",
		AssetType:        models.Equity,
		Value:            50000,
		Owner:            "user_001",
		Metadata:         map[string]string{"issuer": "Example Corp", "country": "USA"},
		ComplianceStatus: models.Pending,
		CreatedAt:        1000,
		UpdatedAt:        1000,
	}); err != nil {
		return err
	}
	log.Info().Str("asset", "asset_001").Msg("asset created")

	if _, err := l.CreateWallet(models.Wallet{
		ID:         "wallet_001",
		Owner:      "user_001",
		WalletType: models.Custodial,
		Assets:     []string{},
		CreatedAt:  1000,
		UpdatedAt:  1000,
	}); err != nil {
		return err
	}
	log.Info().Str("wallet", "wallet_001").Msg("wallet created")

	if err := l.AddAssetToWallet("wallet_001", "asset_001"); err != nil {
		return err
	}
	w, err := l.GetWallet("wallet_001")
	if err != nil {
		return err
	}
	log.Info().Strs("assets", w.Assets).Float64("balance", w.Balance).Msg("asset added to wallet")

	value, err := l.GetWalletValue("wallet_001")
	if err != nil {
		return err
	}
	log.Info().Float64("value", value).Msg("wallet valued")

	status, err := l.PerformComplianceCheck("asset_001")
	if err != nil {
		return err
	}
	log.Info().Str("status", string(status)).Msg("compliance check done")

	if err := l.RemoveAssetFromWallet("wallet_001", "asset_001"); err != nil {
		return err
	}
	w, err = l.GetWallet("wallet_001")
	if err != nil {
		return err
	}
	log.Info().Strs("assets", w.Assets).Float64("balance", w.Balance).Msg("asset removed from wallet")

	if w.Balance != 0 {
		return fmt.Errorf("unexpected balance %v after removal", w.Balance)
	}
	return nil
}
