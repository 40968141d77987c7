// Package ledger - in-memory store of tokenized assets and the wallets
// holding them
//
// The ledger owns two tables, each behind its own read-write lock:
//
//	assets   asset id  -> models.Asset
//	wallets  wallet id -> models.Wallet
//
// Operations that must keep the two tables consistent (linking and
// unlinking holdings, creating wallets, reading wallet values, snapshots)
// always lock the wallet table before the asset table.
//
// A wallet's cached balance is the sum of the values of the assets it
// holds at the time they were linked.  Changing an asset's value with
// UpdateAsset does not revisit wallets, and RemoveAssetFromWallet
// subtracts the asset's value at removal time, so the cache can drift
// from GetWalletValue, which always recomputes from current values.
// Deleting an asset does not unlink it from wallets either.
package ledger
