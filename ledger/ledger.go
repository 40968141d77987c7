package ledger

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sengkeat-dex/Tokenize/fault"
	"github.com/sengkeat-dex/Tokenize/models"
)

type assetStore struct {
	sync.RWMutex
	items map[string]models.Asset
}

type walletStore struct {
	sync.RWMutex
	items map[string]models.Wallet
}

// Ledger is safe for concurrent use.
type Ledger struct {
	wallets  walletStore
	assets   assetStore
	poisoned atomic.Bool
	log      zerolog.Logger
	now      func() time.Time
}

type Option func(*Ledger)

func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithClock replaces the time source used for compliance checks and
// wallet update stamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		wallets: walletStore{items: make(map[string]models.Wallet)},
		assets:  assetStore{items: make(map[string]models.Asset)},
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// guard runs fn as a critical section. fn must release its locks with
// defer; a panic inside fn poisons the ledger and every later call fails
// with fault.ErrLockFailure.
func (l *Ledger) guard(op string, fn func() error) (err error) {
	if l.poisoned.Load() {
		return fault.ErrLockFailure
	}
	defer func() {
		if r := recover(); r != nil {
			l.poisoned.Store(true)
			l.log.Error().Str("op", op).Interface("panic", r).Msg("ledger poisoned")
			err = fault.ErrLockFailure
		}
	}()
	return fn()
}

// stamp returns the current time in seconds, never earlier than floor.
func (l *Ledger) stamp(floor int64) int64 {
	return max(l.now().Unix(), floor)
}

// CreateAsset stores asset under its id, replacing any asset already
// stored there.
func (l *Ledger) CreateAsset(asset models.Asset) (string, error) {
	err := l.guard("create_asset", func() error {
		l.assets.Lock()
		defer l.assets.Unlock()

		if _, ok := l.assets.items[asset.ID]; ok {
			l.log.Warn().Str("asset", asset.ID).Msg("overwriting existing asset")
		}
		l.assets.items[asset.ID] = asset.Clone()
		return nil
	})
	if err != nil {
		return "", err
	}
	l.log.Debug().Str("asset", asset.ID).Str("type", asset.AssetType.String()).Msg("asset created")
	return asset.ID, nil
}

// GetAsset returns a copy of the asset, or nil if there is none.
func (l *Ledger) GetAsset(id string) (*models.Asset, error) {
	var found *models.Asset
	err := l.guard("get_asset", func() error {
		l.assets.RLock()
		defer l.assets.RUnlock()

		if a, ok := l.assets.items[id]; ok {
			c := a.Clone()
			found = &c
		}
		return nil
	})
	return found, err
}

// UpdateAsset replaces an existing asset wholesale. UpdatedAt is stored
// exactly as given.
func (l *Ledger) UpdateAsset(id string, asset models.Asset) error {
	return l.guard("update_asset", func() error {
		l.assets.Lock()
		defer l.assets.Unlock()

		if _, ok := l.assets.items[id]; !ok {
			return fault.ErrAssetNotFound
		}
		l.assets.items[id] = asset.Clone()
		l.log.Debug().Str("asset", id).Msg("asset updated")
		return nil
	})
}

// DeleteAsset removes the asset. Wallets holding it keep the id.
func (l *Ledger) DeleteAsset(id string) error {
	return l.guard("delete_asset", func() error {
		l.assets.Lock()
		defer l.assets.Unlock()

		if _, ok := l.assets.items[id]; !ok {
			return fault.ErrAssetNotFound
		}
		delete(l.assets.items, id)
		l.log.Debug().Str("asset", id).Msg("asset deleted")
		return nil
	})
}

// ListAssetsByType returns copies of every asset of type t, ordered by id.
func (l *Ledger) ListAssetsByType(t models.AssetType) ([]models.Asset, error) {
	return l.listAssets("list_assets_by_type", func(a models.Asset) bool {
		return a.AssetType == t
	})
}

// ListAssets returns copies of every asset, ordered by id.
func (l *Ledger) ListAssets() ([]models.Asset, error) {
	return l.listAssets("list_assets", func(models.Asset) bool { return true })
}

func (l *Ledger) listAssets(op string, keep func(models.Asset) bool) ([]models.Asset, error) {
	result := []models.Asset{}
	err := l.guard(op, func() error {
		l.assets.RLock()
		defer l.assets.RUnlock()

		for _, a := range l.assets.items {
			if keep(a) {
				result = append(result, a.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(result, func(a, b models.Asset) int { return strings.Compare(a.ID, b.ID) })
	return result, nil
}

// PerformComplianceCheck approves the asset whatever its current status.
func (l *Ledger) PerformComplianceCheck(id string) (models.ComplianceStatus, error) {
	err := l.guard("perform_compliance_check", func() error {
		l.assets.Lock()
		defer l.assets.Unlock()

		a, ok := l.assets.items[id]
		if !ok {
			return fault.ErrAssetNotFound
		}
		previous := a.ComplianceStatus
		a.ComplianceStatus = models.Approved
		a.UpdatedAt = l.stamp(max(a.CreatedAt, a.UpdatedAt))
		l.assets.items[id] = a
		l.log.Debug().Str("asset", id).Str("from", string(previous)).Msg("asset approved")
		return nil
	})
	if err != nil {
		return "", err
	}
	return models.Approved, nil
}

// CreateWallet stores wallet under its id, replacing any wallet already
// stored there. Unlike CreateAsset it is not a plain insert: every listed
// holding must be an existing asset and appear once, and the balance is
// recomputed from those assets with the supplied Balance ignored.
func (l *Ledger) CreateWallet(wallet models.Wallet) (string, error) {
	err := l.guard("create_wallet", func() error {
		l.wallets.Lock()
		defer l.wallets.Unlock()
		l.assets.RLock()
		defer l.assets.RUnlock()

		w := wallet.Clone()
		balance := decimal.Zero
		seen := make(map[string]struct{}, len(w.Assets))
		for _, id := range w.Assets {
			a, ok := l.assets.items[id]
			if !ok {
				return fault.ErrAssetNotFound
			}
			if _, dup := seen[id]; dup {
				return fault.ErrDuplicateHolding
			}
			seen[id] = struct{}{}
			balance = balance.Add(decimal.NewFromFloat(a.Value))
		}
		w.Balance = balance.InexactFloat64()

		if _, ok := l.wallets.items[w.ID]; ok {
			l.log.Warn().Str("wallet", w.ID).Msg("overwriting existing wallet")
		}
		l.wallets.items[w.ID] = w
		return nil
	})
	if err != nil {
		return "", err
	}
	l.log.Debug().Str("wallet", wallet.ID).Str("type", string(wallet.WalletType)).Msg("wallet created")
	return wallet.ID, nil
}

// GetWallet returns a copy of the wallet, or nil if there is none.
func (l *Ledger) GetWallet(id string) (*models.Wallet, error) {
	var found *models.Wallet
	err := l.guard("get_wallet", func() error {
		l.wallets.RLock()
		defer l.wallets.RUnlock()

		if w, ok := l.wallets.items[id]; ok {
			c := w.Clone()
			found = &c
		}
		return nil
	})
	return found, err
}

// ListWallets returns copies of every wallet, ordered by id.
func (l *Ledger) ListWallets() ([]models.Wallet, error) {
	result := []models.Wallet{}
	err := l.guard("list_wallets", func() error {
		l.wallets.RLock()
		defer l.wallets.RUnlock()

		for _, w := range l.wallets.items {
			result = append(result, w.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(result, func(a, b models.Wallet) int { return strings.Compare(a.ID, b.ID) })
	return result, nil
}

// AddAssetToWallet links an asset to a wallet and adds the asset's
// current value to the wallet balance.
func (l *Ledger) AddAssetToWallet(walletID, assetID string) error {
	return l.guard("add_asset_to_wallet", func() error {
		l.wallets.Lock()
		defer l.wallets.Unlock()
		l.assets.Lock()
		defer l.assets.Unlock()

		w, ok := l.wallets.items[walletID]
		if !ok {
			return fault.ErrWalletNotFound
		}
		a, ok := l.assets.items[assetID]
		if !ok {
			return fault.ErrAssetNotFound
		}
		if w.Holds(assetID) >= 0 {
			return fault.ErrDuplicateHolding
		}

		w = w.Clone()
		w.Assets = append(w.Assets, assetID)
		w.Balance = addValue(w.Balance, a.Value)
		w.UpdatedAt = l.stamp(max(w.CreatedAt, w.UpdatedAt))
		l.wallets.items[walletID] = w

		l.log.Debug().Str("wallet", walletID).Str("asset", assetID).Float64("balance", w.Balance).Msg("asset added to wallet")
		return nil
	})
}

// RemoveAssetFromWallet unlinks an asset and subtracts the asset's value
// as currently stored; nothing is subtracted if the asset was deleted.
func (l *Ledger) RemoveAssetFromWallet(walletID, assetID string) error {
	return l.guard("remove_asset_from_wallet", func() error {
		l.wallets.Lock()
		defer l.wallets.Unlock()
		l.assets.Lock()
		defer l.assets.Unlock()

		w, ok := l.wallets.items[walletID]
		if !ok {
			return fault.ErrWalletNotFound
		}
		index := w.Holds(assetID)
		if index < 0 {
			return fault.ErrAssetNotHeld
		}

		w = w.Clone()
		w.Assets = slices.Delete(w.Assets, index, index+1)
		if a, ok := l.assets.items[assetID]; ok {
			w.Balance = addValue(w.Balance, -a.Value)
		}
		w.UpdatedAt = l.stamp(max(w.CreatedAt, w.UpdatedAt))
		l.wallets.items[walletID] = w

		l.log.Debug().Str("wallet", walletID).Str("asset", assetID).Float64("balance", w.Balance).Msg("asset removed from wallet")
		return nil
	})
}

// GetWalletValue sums the current values of the wallet's assets, skipping
// ids that no longer resolve.
func (l *Ledger) GetWalletValue(walletID string) (float64, error) {
	total := decimal.Zero
	err := l.guard("get_wallet_value", func() error {
		l.wallets.RLock()
		defer l.wallets.RUnlock()
		l.assets.RLock()
		defer l.assets.RUnlock()

		w, ok := l.wallets.items[walletID]
		if !ok {
			return fault.ErrWalletNotFound
		}
		for _, id := range w.Assets {
			if a, ok := l.assets.items[id]; ok {
				total = total.Add(decimal.NewFromFloat(a.Value))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total.InexactFloat64(), nil
}

// AssetCount and WalletCount feed metrics gauges.
func (l *Ledger) AssetCount() int {
	l.assets.RLock()
	defer l.assets.RUnlock()
	return len(l.assets.items)
}

func (l *Ledger) WalletCount() int {
	l.wallets.RLock()
	defer l.wallets.RUnlock()
	return len(l.wallets.items)
}

func addValue(balance, value float64) float64 {
	return decimal.NewFromFloat(balance).Add(decimal.NewFromFloat(value)).InexactFloat64()
}
