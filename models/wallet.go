package models

import (
	"github.com/sengkeat-dex/Tokenize/fault"
)

type WalletType string

const (
	Custodial    WalletType = "custodial"
	NonCustodial WalletType = "non_custodial"
	Hybrid       WalletType = "hybrid"
)

var walletTypes = foldIndex(Custodial, NonCustodial, Hybrid)

func ParseWalletType(s string) (WalletType, error) {
	if wt, ok := walletTypes[foldCode(s)]; ok {
		return wt, nil
	}
	return "", fault.ErrInvalidWalletType
}

// UnmarshalText accepts empty text as the zero wallet type.
func (t *WalletType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = ""
		return nil
	}
	wt, err := ParseWalletType(string(text))
	if err != nil {
		return err
	}
	*t = wt
	return nil
}

type Wallet struct {
	ID         string     `json:"id"`
	Owner      string     `json:"owner"`
	WalletType WalletType `json:"wallet_type"`
	Assets     []string   `json:"assets"` // asset ids, in the order they were added
	Balance    float64    `json:"balance"`
	CreatedAt  int64      `json:"created_at"`
	UpdatedAt  int64      `json:"updated_at"`
}

// Clone returns a copy whose holdings slice is not shared with w.
func (w Wallet) Clone() Wallet {
	if w.Assets != nil {
		assets := make([]string, len(w.Assets))
		copy(assets, w.Assets)
		w.Assets = assets
	}
	return w
}

// Holds reports the position of assetID in the holdings, or -1.
func (w Wallet) Holds(assetID string) int {
	for i, id := range w.Assets {
		if id == assetID {
			return i
		}
	}
	return -1
}

func (w Wallet) Validate() error {
	if w.UpdatedAt < w.CreatedAt {
		return fault.ErrInvalidTimestamps
	}
	return nil
}
