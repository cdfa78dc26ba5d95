// Package remote talks to the hosted account and record store. One row per
// user holds the full meal/week/checklist snapshot; sync is fetch-one and
// full-replace upsert, last writer wins.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/mattmelloy/rotation-app/internal/models"
)

var (
	ErrNoSession  = errors.New("no active session")
	ErrAuthFailed = errors.New("authentication failed")
)

// Snapshot is the remote row payload. Field names match the hosted table
// columns so rows written by the web client load unchanged.
type Snapshot struct {
	Meals     []models.Meal    `json:"meals"`
	WeekSlots []models.DaySlot `json:"week_slots"`
	Checked   []string         `json:"shopping_list"`
	UpdatedAt time.Time        `json:"updated_at,omitzero"`
}

// Session is an authenticated remote identity.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Client is the remote store surface the sync coordinator consumes.
// Not-found on fetch is a normal outcome, reported via found=false.
type Client interface {
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	Refresh(ctx context.Context, session Session) (Session, error)

	// UseSession installs the session whose token authorizes row access;
	// ClearSession drops it.
	UseSession(Session)
	ClearSession()

	FetchSnapshot(ctx context.Context, userID string) (Snapshot, bool, error)
	UpsertSnapshot(ctx context.Context, userID string, snap Snapshot) error
}
