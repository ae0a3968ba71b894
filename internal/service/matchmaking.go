package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"

	"golang.org/x/sync/singleflight"
)

// QueueState reports where a character stands with the matchmaker.
type QueueState string

const (
	QueueStateMatched QueueState = "matched"
	QueueStateWaiting QueueState = "waiting"
	QueueStateIdle    QueueState = "idle"
)

// QueueStatus is returned by every matchmaker operation. Result is set
// only when State is matched.
type QueueStatus struct {
	State      QueueState         `json:"state"`
	Position   int                `json:"position,omitempty"`
	EnqueuedAt time.Time          `json:"enqueued_at,omitempty"`
	Result     *game.BattleResult `json:"result,omitempty"`
}

type queueEntry struct {
	characterID uint
	ownerID     string
	enqueuedAt  time.Time
}

// Matchmaker pairs waiting characters into battles. It is a single
// process-wide service constructed at startup; the mutex serializes the
// whole pair-simulate-persist sequence because combatant state is mutated
// in place with no reentrancy point. Delivered results are guaranteed: a
// pending result survives a queue leave and stays claimable until a
// status or join call consumes it.
type Matchmaker struct {
	mu      sync.Mutex
	waiting []queueEntry
	pending map[uint]*game.BattleResult
	battles *BattleService
	flight  singleflight.Group
}

func NewMatchmaker(battles *BattleService) *Matchmaker {
	return &Matchmaker{
		pending: make(map[uint]*game.BattleResult),
		battles: battles,
	}
}

func flightKey(characterID uint) string {
	return strconv.FormatUint(uint64(characterID), 10)
}

// Enqueue adds the character to the waiting list and attempts a pairing.
// A pending result from an earlier pairing is consumed and returned
// immediately; re-joining while queued only refreshes the timestamp.
func (m *Matchmaker) Enqueue(characterID uint, ownerID string) (*QueueStatus, error) {
	v, err, _ := m.flight.Do(flightKey(characterID), func() (interface{}, error) {
		return m.enqueue(characterID, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*QueueStatus), nil
}

func (m *Matchmaker) enqueue(characterID uint, ownerID string) (*QueueStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res, ok := m.pending[characterID]; ok {
		delete(m.pending, characterID)
		return &QueueStatus{State: QueueStateMatched, Result: res}, nil
	}
	if pos := m.positionLocked(characterID); pos > 0 {
		m.waiting[pos-1].enqueuedAt = time.Now()
		return &QueueStatus{State: QueueStateWaiting, Position: pos, EnqueuedAt: m.waiting[pos-1].enqueuedAt}, nil
	}
	m.waiting = append(m.waiting, queueEntry{characterID: characterID, ownerID: ownerID, enqueuedAt: time.Now()})
	return m.pairLocked(characterID, ownerID)
}

// Status consumes a pending result when one exists; otherwise a queued
// character retries pairing once, so polling can itself trigger a match.
func (m *Matchmaker) Status(characterID uint, ownerID string) (*QueueStatus, error) {
	v, err, _ := m.flight.Do(flightKey(characterID), func() (interface{}, error) {
		return m.status(characterID, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*QueueStatus), nil
}

func (m *Matchmaker) status(characterID uint, ownerID string) (*QueueStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res, ok := m.pending[characterID]; ok {
		delete(m.pending, characterID)
		return &QueueStatus{State: QueueStateMatched, Result: res}, nil
	}
	if m.positionLocked(characterID) == 0 {
		return &QueueStatus{State: QueueStateIdle}, nil
	}
	return m.pairLocked(characterID, ownerID)
}

// Dequeue removes the character's waiting entry. An already-produced match
// result is NOT discarded; it stays pending until claimed.
func (m *Matchmaker) Dequeue(characterID uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(characterID)
}

// pairLocked scans for the first compatible opponent: a different
// character belonging to a different owner. Self-matches across one
// player's characters are forbidden.
func (m *Matchmaker) pairLocked(characterID uint, ownerID string) (*QueueStatus, error) {
	oppIdx := -1
	for i, e := range m.waiting {
		if e.characterID != characterID && e.ownerID != ownerID {
			oppIdx = i
			break
		}
	}
	if oppIdx < 0 {
		pos := m.positionLocked(characterID)
		var at time.Time
		if pos > 0 {
			at = m.waiting[pos-1].enqueuedAt
		}
		return &QueueStatus{State: QueueStateWaiting, Position: pos, EnqueuedAt: at}, nil
	}

	opp := m.waiting[oppIdx]
	entry := m.waiting[m.positionLocked(characterID)-1]
	m.removeLocked(opp.characterID)
	m.removeLocked(characterID)

	result, err := m.battles.Run(characterID, opp.characterID, true)
	if err != nil {
		// A failed battle must not eat the queue entries; both sides go
		// back to waiting so a later attempt can pair them again.
		m.waiting = append(m.waiting, opp, entry)
		return nil, err
	}
	// The caller gets the result directly; the side that did not trigger
	// the pairing collects it on its next status or join call.
	m.pending[opp.characterID] = result
	return &QueueStatus{State: QueueStateMatched, Result: result}, nil
}

func (m *Matchmaker) positionLocked(characterID uint) int {
	for i, e := range m.waiting {
		if e.characterID == characterID {
			return i + 1
		}
	}
	return 0
}

func (m *Matchmaker) removeLocked(characterID uint) bool {
	for i, e := range m.waiting {
		if e.characterID == characterID {
			m.waiting = append(m.waiting[:i], m.waiting[i+1:]...)
			return true
		}
	}
	return false
}
