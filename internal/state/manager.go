// Package state owns the in-memory meal library, week plan, and shopping
// checklist, and writes every mutation through to the local store.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mattmelloy/rotation-app/internal/logger"
	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/planner"
	"github.com/mattmelloy/rotation-app/internal/recipe"
	"github.com/mattmelloy/rotation-app/internal/seed"
	"github.com/mattmelloy/rotation-app/internal/storage"
)

var ErrEmptyTitle = errors.New("meal title cannot be empty")

// Snapshot is a deep copy of the three owned collections. Checked is sorted
// for deterministic serialization.
type Snapshot struct {
	Meals   []models.Meal    `json:"meals"`
	Week    []models.DaySlot `json:"week_slots"`
	Checked []string         `json:"shopping_list"`
}

// Warner surfaces degraded-persistence conditions to the user without
// interrupting the session.
type Warner func(msg string)

// ChangeListener observes committed mutations. Listeners run outside the
// manager's lock and receive their own snapshot copy.
type ChangeListener func(Snapshot)

type Manager struct {
	mu       sync.Mutex
	store    storage.Provider
	identity models.Identity
	now      func() time.Time
	warn     Warner

	meals   []models.Meal
	week    []models.DaySlot
	checked map[string]struct{}

	listeners []ChangeListener

	// ready is the initialization barrier: closed once the identity's
	// records have loaded. Write-through and sync push activation wait on
	// it so a cloud pull can't race a half-finished local load.
	ready   chan struct{}
	readyMu sync.Mutex
}

func NewManager(store storage.Provider, warn Warner) *Manager {
	if warn == nil {
		warn = func(string) {}
	}
	return &Manager{
		store:   store,
		now:     time.Now,
		warn:    warn,
		week:    models.EmptyWeek(),
		checked: make(map[string]struct{}),
		ready:   make(chan struct{}),
	}
}

// SetClock overrides the time source for tests.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// Subscribe registers a listener for committed mutations.
func (m *Manager) Subscribe(fn ChangeListener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Ready returns a channel closed once the active identity's records have
// finished loading.
func (m *Manager) Ready() <-chan struct{} {
	m.readyMu.Lock()
	defer m.readyMu.Unlock()
	return m.ready
}

// SetIdentity switches the active storage namespace and reloads all three
// records from it. State from the prior namespace never leaks: collections
// are replaced wholesale before the new load.
//
// Load order: structured record under the namespace keys; else the legacy
// flat-keyed record (migrated forward); else the seed library for guests,
// or empty for authenticated users whose data the cloud pull will supply.
func (m *Manager) SetIdentity(id models.Identity) error {
	m.readyMu.Lock()
	select {
	case <-m.ready:
		// Re-arm the barrier for the new namespace.
		m.ready = make(chan struct{})
	default:
	}
	ready := m.ready
	m.readyMu.Unlock()

	m.mu.Lock()
	m.identity = id
	m.meals = nil
	m.week = models.EmptyWeek()
	m.checked = make(map[string]struct{})

	err := m.loadLocked()
	m.mu.Unlock()

	close(ready)
	return err
}

func (m *Manager) loadLocked() error {
	keys := storage.KeysFor(m.identity)

	loaded, err := m.loadRecordsLocked(keys)
	if err != nil {
		return err
	}
	if loaded {
		return nil
	}

	// Legacy flat store: migrate forward into the namespace.
	migrated, err := m.loadRecordsLocked(storage.LegacyKeys())
	if err != nil {
		return err
	}
	if migrated {
		logger.Info("migrated legacy records", "namespace", m.identity.Namespace())
		m.persistAllLocked()
		return nil
	}

	if m.identity.IsGuest() {
		m.meals = seed.Meals(m.now())
		m.persistAllLocked()
	}
	// Authenticated with no local cache: start empty, cloud pull populates.
	return nil
}

// loadRecordsLocked reads the three records under the given keys. The meals
// record decides presence; week and checklist default when absent.
func (m *Manager) loadRecordsLocked(keys storage.Keys) (bool, error) {
	raw, found, err := m.store.Get(keys.Meals)
	if err != nil {
		return false, fmt.Errorf("failed to load meals: %w", err)
	}
	if !found {
		return false, nil
	}

	var meals []models.Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		return false, fmt.Errorf("failed to parse meals record: %w", err)
	}
	m.meals = meals

	// Week and checklist degrade to their defaults when unreadable, but a
	// failed read must not look like an absent record in the logs.
	switch raw, found, err = m.store.Get(keys.Week); {
	case err != nil:
		logger.Warn("failed to load week record", "key", keys.Week, "error", err)
	case found:
		var week []models.DaySlot
		if err := json.Unmarshal([]byte(raw), &week); err != nil {
			return false, fmt.Errorf("failed to parse week record: %w", err)
		}
		m.week = models.NormalizeWeek(week)
	}

	switch raw, found, err = m.store.Get(keys.Shop); {
	case err != nil:
		logger.Warn("failed to load checklist record", "key", keys.Shop, "error", err)
	case found:
		var checked []string
		if err := json.Unmarshal([]byte(raw), &checked); err != nil {
			return false, fmt.Errorf("failed to parse checklist record: %w", err)
		}
		for _, key := range checked {
			m.checked[key] = struct{}{}
		}
	}

	return true, nil
}

// --- Accessors ---

func (m *Manager) Identity() models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *Manager) Meals() []models.Meal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMeals(m.meals)
}

func (m *Manager) Week() []models.DaySlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneWeek(m.week)
}

func (m *Manager) CheckedItems() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.checked)
}

func (m *Manager) MealByID(id string) (models.Meal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, meal := range m.meals {
		if meal.ID == id {
			return meal.Clone(), true
		}
	}
	return models.Meal{}, false
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Meals:   cloneMeals(m.meals),
		Week:    cloneWeek(m.week),
		Checked: sortedKeys(m.checked),
	}
}

// Search matches a query against title, protein, tags, ingredients, and
// keywords, case-insensitively, most-voted first.
func (m *Manager) Search(query string) []models.Meal {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []models.Meal
	for _, meal := range m.meals {
		if mealMatches(meal, q) {
			matches = append(matches, meal.Clone())
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Votes > matches[j].Votes
	})
	return matches
}

func mealMatches(meal models.Meal, q string) bool {
	if strings.Contains(strings.ToLower(meal.Title), q) ||
		strings.Contains(strings.ToLower(meal.Protein), q) {
		return true
	}
	for _, group := range [][]string{meal.Tags, meal.Ingredients, meal.Keywords} {
		for _, entry := range group {
			if strings.Contains(strings.ToLower(entry), q) {
				return true
			}
		}
	}
	return false
}

// --- Mutations ---

// AddOrUpdateMeal saves a meal record. New records are prepended and
// auto-assigned into the week for instant feedback; the returned day index
// is -1 when the week was already full (the meal is still saved). Updates
// replace the matching record in place, preserving collection order.
func (m *Manager) AddOrUpdateMeal(meal models.Meal, isNew bool) (int, error) {
	if strings.TrimSpace(meal.Title) == "" {
		return -1, ErrEmptyTitle
	}

	m.mu.Lock()
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.Protein == "" {
		meal.Protein = recipe.DeriveProtein(meal.Title)
	}
	if len(meal.Keywords) == 0 {
		meal.Keywords = recipe.DeriveKeywords(meal.Title)
	}
	if meal.Image == "" {
		meal.Image = recipe.DeriveImageURL(meal.Title)
	}

	day := -1
	if idx := m.indexOfLocked(meal.ID); idx >= 0 {
		// Updating, or a new record reusing an existing id: replace in
		// place so ids stay unique.
		m.meals[idx] = meal
	} else if isNew {
		m.meals = append([]models.Meal{meal}, m.meals...)
		if assigned, err := planner.AutoAssign(m.week, meal.ID); err == nil {
			day = assigned
		}
	} else {
		// Update for an id we no longer hold. Nothing to replace.
		m.mu.Unlock()
		return -1, nil
	}

	m.persistMealsLocked()
	if day >= 0 {
		m.persistWeekLocked()
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return day, nil
}

// DeleteMeal removes a meal and every week-slot reference to it.
// Idempotent: unknown ids are a no-op.
func (m *Manager) DeleteMeal(id string) {
	m.mu.Lock()
	idx := m.indexOfLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return
	}

	m.meals = append(m.meals[:idx], m.meals[idx+1:]...)
	planner.PurgeMeal(m.week, id)

	m.persistMealsLocked()
	m.persistWeekLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
}

// RemoveSeedMeals deletes the built-in example meals and purges them from
// the week. Callers confirm with the user first; this does not.
func (m *Manager) RemoveSeedMeals() int {
	m.mu.Lock()
	kept := m.meals[:0]
	removed := 0
	for _, meal := range m.meals {
		if seed.IsSeed(meal.ID) {
			planner.PurgeMeal(m.week, meal.ID)
			removed++
			continue
		}
		kept = append(kept, meal)
	}
	m.meals = kept

	if removed == 0 {
		m.mu.Unlock()
		return 0
	}

	m.persistMealsLocked()
	m.persistWeekLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return removed
}

// ClearWeek resets the 7 slots, zeroes every meal's votes, and empties the
// shopping checklist. Destructive and irreversible; callers confirm first.
func (m *Manager) ClearWeek() {
	m.mu.Lock()
	m.week = models.EmptyWeek()
	for i := range m.meals {
		m.meals[i].Votes = 0
	}
	m.checked = make(map[string]struct{})

	m.persistAllLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
}

// ToggleShopItem flips one shopping-list line item, keyed mealID-index.
func (m *Manager) ToggleShopItem(compositeKey string) {
	m.mu.Lock()
	if _, ok := m.checked[compositeKey]; ok {
		delete(m.checked, compositeKey)
	} else {
		m.checked[compositeKey] = struct{}{}
	}

	m.persistShopLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
}

// CleanupSourceImages strips the stored origin scans to reclaim space and
// reports how many records were touched.
func (m *Manager) CleanupSourceImages() int {
	m.mu.Lock()
	touched := 0
	for i := range m.meals {
		if m.meals[i].SourceImage != "" {
			m.meals[i].SourceImage = ""
			touched++
		}
	}
	if touched == 0 {
		m.mu.Unlock()
		return 0
	}

	m.persistMealsLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return touched
}

// AddToWeek auto-assigns an existing meal into the least-full day.
func (m *Manager) AddToWeek(mealID string) (int, error) {
	m.mu.Lock()
	day, err := planner.AutoAssign(m.week, mealID)
	if err != nil {
		m.mu.Unlock()
		return -1, err
	}

	m.persistWeekLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return day, nil
}

// AssignToDay places an existing meal into a specific day slot.
func (m *Manager) AssignToDay(mealID string, dayIndex int) error {
	m.mu.Lock()
	if err := planner.Place(m.week, mealID, dayIndex); err != nil {
		m.mu.Unlock()
		return err
	}

	m.persistWeekLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

// RemoveFromDay removes a meal from a day slot, or clears the slot when
// mealID is empty.
func (m *Manager) RemoveFromDay(dayIndex int, mealID string) error {
	m.mu.Lock()
	if err := planner.Remove(m.week, dayIndex, mealID); err != nil {
		m.mu.Unlock()
		return err
	}

	m.persistWeekLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

// CompleteVoting increments votes for the selected meals and distributes
// them across the week. Returns how many found a slot.
func (m *Manager) CompleteVoting(selectedIDs []string) int {
	m.mu.Lock()
	for _, id := range selectedIDs {
		if idx := m.indexOfLocked(id); idx >= 0 {
			m.meals[idx].Votes++
		}
	}
	placed := planner.DistributeVotes(m.week, selectedIDs)

	m.persistMealsLocked()
	m.persistWeekLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return len(placed)
}

// ApplyRemoteSnapshot overwrites local state with the authoritative cloud
// snapshot and caches it under the active namespace. Used by the sync
// coordinator after a pull; the cloud unconditionally wins.
func (m *Manager) ApplyRemoteSnapshot(snap Snapshot) {
	m.mu.Lock()
	m.meals = cloneMeals(snap.Meals)
	m.week = models.NormalizeWeek(cloneWeek(snap.Week))
	m.checked = make(map[string]struct{})
	for _, key := range snap.Checked {
		m.checked[key] = struct{}{}
	}

	m.persistAllLocked()
	applied := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(applied)
}

// --- Persistence ---

// Write-through is warn-only: a full disk degrades persistence but the
// in-memory state stays authoritative for the session.
func (m *Manager) persistMealsLocked() {
	m.setRecord(storage.KeysFor(m.identity).Meals, marshalMeals(m.meals))
}

func (m *Manager) persistWeekLocked() {
	m.setRecord(storage.KeysFor(m.identity).Week, mustMarshal(m.week))
}

func (m *Manager) persistShopLocked() {
	m.setRecord(storage.KeysFor(m.identity).Shop, mustMarshal(sortedKeys(m.checked)))
}

func (m *Manager) persistAllLocked() {
	m.persistMealsLocked()
	m.persistWeekLocked()
	m.persistShopLocked()
}

func (m *Manager) setRecord(key, value string) {
	if err := m.store.Set(key, value); err != nil {
		logger.Error("local write failed", "key", key, "error", err)
		if errors.Is(err, storage.ErrQuotaExceeded) {
			m.warn("Storage full! Delete some meals or use smaller images.")
		} else {
			m.warn("Could not save changes locally; they may not survive a restart.")
		}
	}
}

// marshalMeals drops the sourceImage field from the serialized form. The
// origin scans are large and only matter for the session that imported
// them; persisting them is how the old client hit storage quotas.
func marshalMeals(meals []models.Meal) string {
	stripped := make([]models.Meal, len(meals))
	for i, meal := range meals {
		stripped[i] = meal
		stripped[i].SourceImage = ""
	}
	return mustMarshal(stripped)
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable with an unmarshalable type, which the record
		// shapes are not.
		logger.Error("record marshal failed", "error", err)
		return "null"
	}
	return string(data)
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.Lock()
	listeners := append([]ChangeListener(nil), m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

func (m *Manager) indexOfLocked(id string) int {
	for i := range m.meals {
		if m.meals[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneMeals(meals []models.Meal) []models.Meal {
	out := make([]models.Meal, len(meals))
	for i, meal := range meals {
		out[i] = meal.Clone()
	}
	return out
}

func cloneWeek(week []models.DaySlot) []models.DaySlot {
	out := make([]models.DaySlot, len(week))
	for i, slot := range week {
		out[i] = models.DaySlot{
			Label:   slot.Label,
			MealIDs: append([]string{}, slot.MealIDs...),
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
