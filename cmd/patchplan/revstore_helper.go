package main

import "github.com/newtron-network/patchplan/pkg/revstore"

// newRevStore creates a revision-store client against app.revStoreAddr,
// which PersistentPreRunE resolves (flag > settings > default). The
// revision subcommands use it; plan --save and render --revision call
// revstore.NewStore with the same address directly.
func newRevStore() *revstore.Store {
	return revstore.NewStore(app.revStoreAddr)
}
