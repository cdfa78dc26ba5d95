// Package cli implements the rotation command tree.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mattmelloy/rotation-app/internal/ai"
	"github.com/mattmelloy/rotation-app/internal/cloudsync"
	"github.com/mattmelloy/rotation-app/internal/config"
	"github.com/mattmelloy/rotation-app/internal/state"
	"github.com/mattmelloy/rotation-app/internal/storage"
)

type Context struct {
	Manager *state.Manager
	Store   storage.Provider
	Sync    *cloudsync.Coordinator // nil when cloud sync is not configured
	AI      ai.RecipeService       // nil when no API key is set
	Config  *config.Config
	// DataPath is the store file the app opened, used by backup commands.
	DataPath string
}

func (ctx *Context) requireSync() (*cloudsync.Coordinator, error) {
	if ctx.Sync == nil {
		return nil, fmt.Errorf("cloud sync is not configured; set ROTATION_SUPABASE_URL and ROTATION_SUPABASE_ANON_KEY")
	}
	return ctx.Sync, nil
}

func (ctx *Context) requireAI() (ai.RecipeService, error) {
	if ctx.AI == nil {
		return nil, fmt.Errorf("recipe import is not configured; set GEMINI_API_KEY")
	}
	return ctx.AI, nil
}

// parseDay maps a day name or index to a week slot index (0 = Monday).
func parseDay(s string) (int, error) {
	dayMap := map[string]int{
		"mon": 0, "monday": 0,
		"tue": 1, "tuesday": 1,
		"wed": 2, "wednesday": 2,
		"thu": 3, "thursday": 3,
		"fri": 4, "friday": 4,
		"sat": 5, "saturday": 5,
		"sun": 6, "sunday": 6,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if day, ok := dayMap[key]; ok {
		return day, nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 0 && num <= 6 {
		return num, nil
	}
	return 0, fmt.Errorf("invalid day: %q (use mon..sun or 0..6)", s)
}

// confirm prompts the user before a destructive action. A --yes flag
// bypasses the prompt for scripting.
func confirm(title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func promptPassword(title string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if len(s) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}
