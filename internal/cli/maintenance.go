package cli

import "fmt"

type CleanupCmd struct{}

func (c *CleanupCmd) Run(ctx *Context) error {
	touched := ctx.Manager.CleanupSourceImages()
	if touched == 0 {
		fmt.Println("No stored scans to clean up.")
		return nil
	}
	fmt.Printf("Removed stored scans from %d meals\n", touched)
	return nil
}

type SeedRemoveCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SeedRemoveCmd) Run(ctx *Context) error {
	ok, err := confirm("Remove the built-in example meals?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	removed := ctx.Manager.RemoveSeedMeals()
	if removed == 0 {
		fmt.Println("No example meals left to remove.")
		return nil
	}
	fmt.Printf("Removed %d example meals\n", removed)
	return nil
}
