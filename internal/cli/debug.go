package cli

import (
	"fmt"

	"github.com/mattmelloy/rotation-app/internal/storage"
)

// DebugCmd dumps the raw persisted records for the active namespace.
type DebugCmd struct{}

func (c *DebugCmd) Run(ctx *Context) error {
	identity := ctx.Manager.Identity()
	keys := storage.KeysFor(identity)

	fmt.Printf("Store: %s\n", ctx.DataPath)
	fmt.Printf("Namespace: %s\n\n", identity.Namespace())

	for _, key := range []string{keys.Meals, keys.Week, keys.Shop} {
		value, found, err := ctx.Store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !found {
			fmt.Printf("%s: (missing)\n", key)
			continue
		}
		fmt.Printf("%s (%d bytes):\n%s\n\n", key, len(value), value)
	}
	return nil
}
