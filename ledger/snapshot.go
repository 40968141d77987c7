package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio"

	"github.com/sengkeat-dex/Tokenize/models"
)

// Snapshot is a point-in-time copy of both tables.
type Snapshot struct {
	Assets  map[string]models.Asset  `json:"assets"`
	Wallets map[string]models.Wallet `json:"wallets"`
}

// Snapshot copies both tables under their read locks, so the copy never
// shows a holding linked without its balance or the other way round.
func (l *Ledger) Snapshot() (Snapshot, error) {
	s := Snapshot{
		Assets:  make(map[string]models.Asset),
		Wallets: make(map[string]models.Wallet),
	}
	err := l.guard("snapshot", func() error {
		l.wallets.RLock()
		defer l.wallets.RUnlock()
		l.assets.RLock()
		defer l.assets.RUnlock()

		for id, w := range l.wallets.items {
			s.Wallets[id] = w.Clone()
		}
		for id, a := range l.assets.items {
			s.Assets[id] = a.Clone()
		}
		return nil
	})
	return s, err
}

// Restore replaces the contents of both tables with the snapshot.
// Records are stored as given.
func (l *Ledger) Restore(s Snapshot) error {
	return l.guard("restore", func() error {
		l.wallets.Lock()
		defer l.wallets.Unlock()
		l.assets.Lock()
		defer l.assets.Unlock()

		wallets := make(map[string]models.Wallet, len(s.Wallets))
		for id, w := range s.Wallets {
			wallets[id] = w.Clone()
		}
		assets := make(map[string]models.Asset, len(s.Assets))
		for id, a := range s.Assets {
			assets[id] = a.Clone()
		}
		l.wallets.items = wallets
		l.assets.items = assets

		l.log.Info().Int("assets", len(assets)).Int("wallets", len(wallets)).Msg("ledger restored")
		return nil
	})
}

// LoadFile restores the ledger from a JSON snapshot file. A missing file
// leaves the ledger empty and is not an error.
func (l *Ledger) LoadFile(path string) error {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Info().Str("path", path).Msg("no snapshot to load")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return l.Restore(s)
}

// SaveFile writes a JSON snapshot, replacing path atomically.
func (l *Ledger) SaveFile(path string) error {
	s, err := l.Snapshot()
	if err != nil {
		return err
	}
	buf, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := renameio.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	l.log.Info().Str("path", path).Int("assets", len(s.Assets)).Int("wallets", len(s.Wallets)).Msg("snapshot saved")
	return nil
}
