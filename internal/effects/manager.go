package effects

import (
	"log"
	"sync"

	"github.com/KirkDiggler/stat-engine/internal/errors"
	"github.com/KirkDiggler/stat-engine/internal/events"
	"github.com/KirkDiggler/stat-engine/internal/stats"
	"github.com/KirkDiggler/stat-engine/internal/uuid"
)

// ManagerConfig holds the manager's collaborators. Every field is optional.
type ManagerConfig struct {
	UUIDGenerator uuid.Generator
	Bus           *events.Bus
	Verbose       bool
}

// Manager tracks the active contributors of one entity.
//
// Stats are not synchronized themselves; the manager's lock is the per-entity
// lock for every stat its contributors touch. Callers on other goroutines
// read those stats through Do. Bus listeners must not call back into the
// manager that emitted the event.
type Manager struct {
	mu            sync.Mutex
	contributors  []*Contributor
	uuidGenerator uuid.Generator
	bus           *events.Bus
	verbose       bool
}

// NewManager creates a new contributor manager
func NewManager(cfg *ManagerConfig) *Manager {
	m := &Manager{}
	if cfg != nil {
		m.uuidGenerator = cfg.UUIDGenerator
		m.bus = cfg.Bus
		m.verbose = cfg.Verbose
	}
	if m.uuidGenerator == nil {
		m.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return m
}

// Apply activates c and starts tracking it.
//
// Stacking is resolved against active contributors with the same name and
// kind. A listener may veto the application by cancelling the
// contributor.applying event.
func (m *Manager) Apply(c *Contributor) error {
	if c == nil {
		return errors.InvalidArgument("contributor is required")
	}

	m.mu.Lock()
	if c.ID == "" {
		c.ID = m.uuidGenerator.New()
	}
	if err := m.admissible(c); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	applying := events.NewContributorEvent(events.EventTypeContributorApplying, c.ID, c.Name, string(c.Kind), c.Stats())
	if err := m.emit(applying); err != nil {
		return errors.Wrapf(err, "applying contributor %s", c.Name)
	}
	if applying.IsCancelled() {
		return errors.Newf(errors.CodeCancelled, "application of %s was cancelled", c.Name).
			WithMeta("contributor_id", c.ID)
	}

	m.mu.Lock()
	// another Apply may have run while the lock was released for the event
	if err := m.admissible(c); err != nil {
		m.mu.Unlock()
		return err
	}
	var replaced []*Contributor
	if c.StackingRule == StackingReplace {
		for existing := m.findStackable(c); existing != nil; existing = m.findStackable(c) {
			existing.Deactivate()
			m.untrack(existing.ID)
			replaced = append(replaced, existing)
		}
	}
	if err := c.Activate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.contributors = append(m.contributors, c)
	m.mu.Unlock()

	for _, old := range replaced {
		m.logf("EffectManager: %s replaced %s (%s)", c.ID, old.Name, old.ID)
		m.emitQuietly(events.NewContributorEvent(events.EventTypeContributorRemoved, old.ID, old.Name, string(old.Kind), old.Stats()))
	}
	m.logf("EffectManager: applied %s %s (%s) to %d stats", c.Kind, c.Name, c.ID, len(c.Stats()))
	m.emitQuietly(events.NewContributorEvent(events.EventTypeContributorApplied, c.ID, c.Name, string(c.Kind), c.Stats()))

	return nil
}

// Remove deactivates the contributor with the given ID
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return errors.NotFoundf("contributor %s not found", id)
	}
	c := m.contributors[i]
	removed := c.Deactivate()
	m.untrack(id)
	m.mu.Unlock()

	m.logf("EffectManager: removed %s (%s), %d modifiers retracted", c.Name, id, removed)
	m.emitQuietly(events.NewContributorEvent(events.EventTypeContributorRemoved, c.ID, c.Name, string(c.Kind), c.Stats()))
	return nil
}

// RemoveByKind deactivates every contributor of the given kind and returns how many were removed
func (m *Manager) RemoveByKind(kind Kind) int {
	return m.removeWhere(events.EventTypeContributorRemoved, func(c *Contributor) bool {
		return c.Kind == kind
	})
}

// RemoveByName deactivates every contributor with the given name
func (m *Manager) RemoveByName(name string) int {
	return m.removeWhere(events.EventTypeContributorRemoved, func(c *Contributor) bool {
		return c.Name == name
	})
}

// ProcessRoundEnd counts down round-based contributors and retracts the expired ones
func (m *Manager) ProcessRoundEnd() []*Contributor {
	m.mu.Lock()
	var expired []*Contributor
	kept := m.contributors[:0]
	for _, c := range m.contributors {
		if c.tick() {
			c.Deactivate()
			expired = append(expired, c)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(m.contributors); i++ {
		m.contributors[i] = nil
	}
	m.contributors = kept
	m.mu.Unlock()

	for _, c := range expired {
		m.logf("EffectManager: %s (%s) expired", c.Name, c.ID)
		m.emitQuietly(events.NewContributorEvent(events.EventTypeContributorExpired, c.ID, c.Name, string(c.Kind), c.Stats()))
	}
	return expired
}

// Clear deactivates every contributor
func (m *Manager) Clear() int {
	return m.removeWhere(events.EventTypeContributorRemoved, func(*Contributor) bool { return true })
}

// Commit folds stat's current modifiers into its base value.
// Contributors that had modifiers on it stay active but no longer affect it.
func (m *Manager) Commit(stat *stats.Stat) {
	if stat == nil {
		return
	}

	m.mu.Lock()
	previous := stat.BaseValue()
	dropped := stat.Len()
	stat.CommitAndClear()
	committed := stat.BaseValue()
	m.mu.Unlock()

	m.logf("EffectManager: committed stat %v -> %v, %d modifiers folded", previous, committed, dropped)
	m.emitQuietly(&events.StatCommittedEvent{
		BaseEvent:     events.BaseEvent{Type: events.EventTypeStatCommitted},
		Stat:          stat,
		PreviousBase:  previous,
		CommittedBase: committed,
		Dropped:       dropped,
	})
}

// Do runs fn while holding the manager's lock, for reading or mutating its stats
func (m *Manager) Do(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// Get returns the active contributor with the given ID
func (m *Manager) Get(id string) (*Contributor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		return m.contributors[i], true
	}
	return nil, false
}

// Active returns the active contributors in application order
func (m *Manager) Active() []*Contributor {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Contributor, len(m.contributors))
	copy(out, m.contributors)
	return out
}

func (m *Manager) removeWhere(eventType events.EventType, match func(*Contributor) bool) int {
	m.mu.Lock()
	var removed []*Contributor
	kept := m.contributors[:0]
	for _, c := range m.contributors {
		if match(c) {
			c.Deactivate()
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(m.contributors); i++ {
		m.contributors[i] = nil
	}
	m.contributors = kept
	m.mu.Unlock()

	for _, c := range removed {
		m.logf("EffectManager: removed %s (%s)", c.Name, c.ID)
		m.emitQuietly(events.NewContributorEvent(eventType, c.ID, c.Name, string(c.Kind), c.Stats()))
	}
	return len(removed)
}

// admissible rejects c when it is already active or blocked by a
// keep_existing contributor. Caller holds mu.
func (m *Manager) admissible(c *Contributor) error {
	if m.indexOf(c.ID) >= 0 || c.active {
		return errors.AlreadyExistsf("contributor %s (%s) is already active", c.Name, c.ID).
			WithMeta("contributor_id", c.ID)
	}
	if c.StackingRule == StackingKeepExisting {
		if existing := m.findStackable(c); existing != nil {
			return errors.AlreadyExistsf("contributor %s is already active as %s", c.Name, existing.ID).
				WithMeta("contributor_id", existing.ID).
				WithMeta("stacking", string(StackingKeepExisting))
		}
	}
	return nil
}

// findStackable returns an active contributor sharing c's name and kind. Caller holds mu.
func (m *Manager) findStackable(c *Contributor) *Contributor {
	for _, existing := range m.contributors {
		if existing != c && existing.Name == c.Name && existing.Kind == c.Kind {
			return existing
		}
	}
	return nil
}

// indexOf returns the position of id or -1. Caller holds mu.
func (m *Manager) indexOf(id string) int {
	for i, c := range m.contributors {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// untrack drops id from the registry. Caller holds mu.
func (m *Manager) untrack(id string) {
	if i := m.indexOf(id); i >= 0 {
		m.contributors = append(m.contributors[:i], m.contributors[i+1:]...)
	}
}

func (m *Manager) emit(event events.Event) error {
	if m.bus == nil {
		return nil
	}
	return m.bus.Emit(event)
}

// emitQuietly emits events that report a change that already happened
func (m *Manager) emitQuietly(event events.Event) {
	if err := m.emit(event); err != nil {
		log.Printf("EffectManager: listener error on %s: %v", event.GetType(), err)
	}
}

func (m *Manager) logf(format string, args ...any) {
	if m.verbose {
		log.Printf(format, args...)
	}
}
