package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mattmelloy/rotation-app/internal/backup"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
	}

	if err := checkDataConsistency(ctx); err != nil {
		fmt.Printf("❌ Data consistency: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data consistency: OK\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if n, err := otherInstances(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n   could not inspect processes: %v\n", err)
	} else if n > 0 {
		fmt.Printf("⚠ Single instance: WARNING\n   %d other rotation processes are running; concurrent writes can race\n", n)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock sanity: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock sanity: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	// Any read exercises the connection; a missing key is fine.
	if _, _, err := ctx.Store.Get("guest:meals"); err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	return nil
}

func checkDataConsistency(ctx *Context) error {
	meals := ctx.Manager.Meals()
	ids := make(map[string]bool, len(meals))
	for _, meal := range meals {
		if ids[meal.ID] {
			return fmt.Errorf("duplicate meal ID found: %s", meal.ID)
		}
		ids[meal.ID] = true
	}

	week := ctx.Manager.Week()
	if len(week) != 7 {
		return fmt.Errorf("week has %d slots, expected 7", len(week))
	}
	for i, slot := range week {
		for _, id := range slot.MealIDs {
			if !ids[id] {
				return fmt.Errorf("day %d references unknown meal %s", i, id)
			}
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := backup.NewManager(ctx.DataPath).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'rotation backup create'")
	}
	return nil
}

// otherInstances counts running rotation processes besides this one.
func otherInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}

	self := os.Getpid()
	count := 0
	for _, proc := range procs {
		if proc.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(proc.Executable(), ".exe")
		if name == "rotation" {
			count++
		}
	}
	return count, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
