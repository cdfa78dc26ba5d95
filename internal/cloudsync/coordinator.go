// Package cloudsync reconciles local state with the remote store: one pull of
// the authoritative snapshot at session start, then full-replace pushes of
// every local mutation. Last writer wins across devices.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/mattmelloy/rotation-app/internal/logger"
	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/remote"
	"github.com/mattmelloy/rotation-app/internal/state"
)

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Pulling
	Synced
	Guest
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Pulling:
		return "pulling"
	case Synced:
		return "synced"
	case Guest:
		return "guest"
	default:
		return "unauthenticated"
	}
}

// ErrPullInFlight is returned when a second pull is requested while one is
// already running for the same identity.
var ErrPullInFlight = errors.New("pull already in flight")

// SessionStore persists sessions across restarts. Satisfied by
// remote.SessionStore (OS keyring).
type SessionStore interface {
	Load() (remote.Session, error)
	Save(remote.Session) error
	Clear() error
}

type Coordinator struct {
	client   remote.Client
	manager  *state.Manager
	sessions SessionStore
	warn     func(msg string)

	mu           sync.Mutex
	state        State
	session      remote.Session
	pullInFlight bool

	// lastHash is the hash of the most recently pulled or pushed snapshot.
	// A change notification whose snapshot hashes the same is an echo of
	// our own pull/push, not a user mutation, and must not re-push.
	lastHash uint64
}

func NewCoordinator(client remote.Client, manager *state.Manager, sessions SessionStore, warn func(string)) *Coordinator {
	if warn == nil {
		warn = func(string) {}
	}
	c := &Coordinator{
		client:   client,
		manager:  manager,
		sessions: sessions,
		warn:     warn,
		state:    Unauthenticated,
	}
	manager.Subscribe(c.onChange)
	return c
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) Session() (remote.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, c.session.UserID != ""
}

// Start resumes a stored session if one exists, pulling the remote
// snapshot before local mutations are allowed to push. Without a stored
// session the coordinator stays unauthenticated and the caller decides
// between sign-in and guest mode.
func (c *Coordinator) Start(ctx context.Context) error {
	c.setState(Authenticating)

	session, err := c.sessions.Load()
	if err != nil {
		if !errors.Is(err, remote.ErrNoSession) {
			logger.Warn("session restore failed", "error", err)
		}
		c.setState(Unauthenticated)
		return err
	}

	if session.Expired(time.Now()) {
		session, err = c.client.Refresh(ctx, session)
		if err != nil {
			logger.Warn("session refresh failed", "error", err)
			c.sessions.Clear()
			c.setState(Unauthenticated)
			return fmt.Errorf("stored session expired: %w", err)
		}
		if err := c.sessions.Save(session); err != nil {
			logger.Warn("failed to persist refreshed session", "error", err)
		}
	}

	return c.establish(ctx, session)
}

// StartGuest runs the app without any remote identity. No remote calls are
// made for the rest of the session.
func (c *Coordinator) StartGuest() error {
	c.setState(Guest)
	return c.manager.SetIdentity(models.Guest())
}

func (c *Coordinator) SignUp(ctx context.Context, email, password string) error {
	c.setState(Authenticating)
	session, err := c.client.SignUp(ctx, email, password)
	if err != nil {
		c.setState(Unauthenticated)
		return err
	}
	return c.adopt(ctx, session)
}

func (c *Coordinator) SignIn(ctx context.Context, email, password string) error {
	c.setState(Authenticating)
	session, err := c.client.SignIn(ctx, email, password)
	if err != nil {
		c.setState(Unauthenticated)
		return err
	}
	return c.adopt(ctx, session)
}

func (c *Coordinator) adopt(ctx context.Context, session remote.Session) error {
	if err := c.sessions.Save(session); err != nil {
		logger.Warn("failed to persist session", "error", err)
	}
	return c.establish(ctx, session)
}

// Logout drops the local session. Remote data is kept.
func (c *Coordinator) Logout() error {
	c.mu.Lock()
	c.session = remote.Session{}
	c.state = Unauthenticated
	c.lastHash = 0
	c.mu.Unlock()

	c.client.ClearSession()
	return c.sessions.Clear()
}

func (c *Coordinator) establish(ctx context.Context, session remote.Session) error {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.client.UseSession(session)

	if err := c.manager.SetIdentity(models.User(session.UserID)); err != nil {
		logger.Error("local reload failed on sign-in", "error", err)
	}

	return c.Pull(ctx)
}

// Pull fetches the authoritative remote snapshot and applies it over local
// state. Deduplicated: duplicate session events close together result in a
// single fetch. After the pull resolves either way, the coordinator waits
// for the state manager's initialization barrier and then enters Synced.
func (c *Coordinator) Pull(ctx context.Context) error {
	c.mu.Lock()
	if c.pullInFlight {
		c.mu.Unlock()
		return ErrPullInFlight
	}
	c.pullInFlight = true
	c.state = Pulling
	session := c.session
	c.mu.Unlock()

	snap, found, err := c.client.FetchSnapshot(ctx, session.UserID)

	c.mu.Lock()
	c.pullInFlight = false
	current := c.session
	c.mu.Unlock()

	if current.UserID != session.UserID {
		// Identity changed while the fetch was in flight. Discard the
		// response and pull again for whoever owns the session now; a
		// cleared session has nothing left to pull.
		logger.Info("discarding stale pull", "for", session.UserID)
		if current.UserID == "" {
			return nil
		}
		return c.Pull(ctx)
	}

	switch {
	case err != nil:
		// Transient failure: local state stays authoritative.
		logger.Error("cloud fetch failed", "error", err)
		c.warn("Could not fetch your data from the cloud; working from the local copy.")
	case found:
		local := fromRemote(snap)
		c.manager.ApplyRemoteSnapshot(local)
		c.rememberHash(local)
		logger.Info("applied cloud snapshot", "meals", len(local.Meals))
	default:
		// First sign-in from this account: nothing to pull, push will
		// seed the remote row.
		logger.Info("no cloud snapshot yet", "user", session.UserID)
	}

	// Do not start pushing until the local reload barrier has passed, so a
	// concurrent initialization can't be stomped by a premature push.
	select {
	case <-c.manager.Ready():
	case <-ctx.Done():
		c.setState(Unauthenticated)
		return ctx.Err()
	}

	c.setState(Synced)
	return err
}

// onChange pushes the full current snapshot after every local mutation
// while synced. Failures warn and are retried naturally by the next
// mutation; local state is never rolled back.
func (c *Coordinator) onChange(snap state.Snapshot) {
	c.mu.Lock()
	if c.state != Synced {
		c.mu.Unlock()
		return
	}
	session := c.session
	last := c.lastHash
	c.mu.Unlock()

	hash := snapshotHash(snap)
	if hash != 0 && hash == last {
		// Echo of our own pull or push.
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.client.UpsertSnapshot(ctx, session.UserID, toRemote(snap)); err != nil {
		logger.Error("cloud push failed", "error", err)
		c.warn("Sync failed; your changes are saved locally and will sync later.")
		return
	}

	c.mu.Lock()
	c.lastHash = hash
	c.mu.Unlock()
	logger.Debug("pushed snapshot", "hash", hash)
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Coordinator) rememberHash(snap state.Snapshot) {
	hash := snapshotHash(snap)
	c.mu.Lock()
	c.lastHash = hash
	c.mu.Unlock()
}

func snapshotHash(snap state.Snapshot) uint64 {
	hash, err := hashstructure.Hash(snap, hashstructure.FormatV2, nil)
	if err != nil {
		logger.Warn("snapshot hash failed", "error", err)
		return 0
	}
	return hash
}

// The remote row and the local snapshot carry the same three collections
// under different field names. Origin scans are stripped from pushes, as
// they are from local persistence.
func toRemote(snap state.Snapshot) remote.Snapshot {
	meals := make([]models.Meal, len(snap.Meals))
	for i, meal := range snap.Meals {
		meals[i] = meal
		meals[i].SourceImage = ""
	}
	return remote.Snapshot{
		Meals:     meals,
		WeekSlots: snap.Week,
		Checked:   snap.Checked,
	}
}

func fromRemote(snap remote.Snapshot) state.Snapshot {
	return state.Snapshot{
		Meals:   snap.Meals,
		Week:    models.NormalizeWeek(snap.WeekSlots),
		Checked: snap.Checked,
	}
}
