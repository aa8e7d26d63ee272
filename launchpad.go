package launchpad

import (
	bc "github.com/krazyTry/launchpad-go/bonding_curve"
	"github.com/krazyTry/launchpad-go/cpamm"
	"github.com/krazyTry/launchpad-go/runtime"
	"github.com/krazyTry/launchpad-go/store"
)

// NewClient creates a launchpad client on top of a ledger runtime.
//
// Example:
//
// rt := NewRuntime(store.NewMemoryStore(), logger)
//
// amm, _ := NewCpAmmClient(rt, 25, logger)
//
// config, _ := cpamm.DeriveConfigAddress(0)
//
// client := NewClient(rt, bc.WithDestination(amm, config), bc.WithAutoMigrate(true))
//
// client.Pool.QuoteForMeme(ctx, params)
var NewClient = bc.NewLaunchpadClient

// NewCpAmmClient creates the constant-product venue that graduated pools
// migrate into.
var NewCpAmmClient = cpamm.NewCpAmm

// NewRuntime creates the ledger runtime every client executes against.
var NewRuntime = runtime.New

// OpenStore opens a ledger store backend, optionally behind a record cache.
var OpenStore = store.Open
