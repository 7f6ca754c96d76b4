// Package modkit provides module wiring and core deps
package modkit

import (
	"lingo/internal/modkit/repokit"
	"lingo/internal/platform/cache"
	"lingo/internal/platform/config"
	"lingo/internal/platform/logger"
	"lingo/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Cache cache.TagCache
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
