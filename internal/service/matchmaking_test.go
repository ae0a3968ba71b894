package service

import (
	"errors"
	"testing"
)

func newTestMatchmaker() (*Matchmaker, *mockRepo) {
	repo := newMockRepo()
	repo.addCharacter(1, "Strong", "owner-a", 100, 10, 1)
	repo.addCharacter(2, "Weak", "owner-b", 20, 1, 300)
	repo.addCharacter(3, "Sibling", "owner-a", 100, 10, 2)
	return NewMatchmaker(newTestService(repo)), repo
}

func TestMatchmaker_PairsDistinctOwners(t *testing.T) {
	m, _ := newTestMatchmaker()

	st, err := m.Enqueue(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != QueueStateWaiting || st.Position != 1 {
		t.Fatalf("expected first joiner waiting at position 1, got %+v", st)
	}

	st2, err := m.Enqueue(2, "owner-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st2.State != QueueStateMatched || st2.Result == nil {
		t.Fatalf("expected second joiner matched with a result, got %+v", st2)
	}
	if !st2.Result.IsMatchmade {
		t.Fatalf("queue battles must be matchmade")
	}

	st3, err := m.Status(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st3.State != QueueStateMatched || st3.Result == nil {
		t.Fatalf("expected first joiner to collect the result, got %+v", st3)
	}
	if st3.Result.ID != st2.Result.ID {
		t.Fatalf("both sides must see the same battle")
	}

	st4, err := m.Status(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st4.State != QueueStateIdle {
		t.Fatalf("result delivery must be one-shot, got %+v", st4)
	}
}

func TestMatchmaker_SameOwnerNeverPaired(t *testing.T) {
	m, _ := newTestMatchmaker()

	if _, err := m.Enqueue(1, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, err := m.Enqueue(3, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != QueueStateWaiting || st.Position != 2 {
		t.Fatalf("expected same-owner characters to keep waiting, got %+v", st)
	}
}

func TestMatchmaker_RejoinRefreshesInsteadOfDuplicating(t *testing.T) {
	m, _ := newTestMatchmaker()

	if _, err := m.Enqueue(1, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, err := m.Enqueue(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != QueueStateWaiting || st.Position != 1 {
		t.Fatalf("expected rejoin to keep position 1, got %+v", st)
	}

	st2, err := m.Enqueue(3, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st2.Position != 2 {
		t.Fatalf("expected no duplicate entry for the rejoined character, got position %d", st2.Position)
	}
}

func TestMatchmaker_DequeueRemovesWaitingEntry(t *testing.T) {
	m, _ := newTestMatchmaker()

	if _, err := m.Enqueue(1, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Dequeue(1) {
		t.Fatalf("expected dequeue to remove the waiting entry")
	}
	st, err := m.Status(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != QueueStateIdle {
		t.Fatalf("expected idle after leaving, got %+v", st)
	}
}

func TestMatchmaker_DequeueKeepsPendingResult(t *testing.T) {
	m, _ := newTestMatchmaker()

	if _, err := m.Enqueue(1, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Enqueue(2, "owner-b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Character 1 was already paired, so there is no waiting entry left.
	if m.Dequeue(1) {
		t.Fatalf("expected no waiting entry to remove after pairing")
	}

	st, err := m.Status(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != QueueStateMatched || st.Result == nil {
		t.Fatalf("leaving the queue must not discard a finished match, got %+v", st)
	}
}

func TestMatchmaker_FailedBattleRestoresQueueEntries(t *testing.T) {
	m, repo := newTestMatchmaker()
	repo.saveBattleErr = errors.New("disk full")

	if _, err := m.Enqueue(1, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Enqueue(2, "owner-b"); err == nil {
		t.Fatalf("expected the pairing to fail on a persistence error")
	}

	// Both entries went back to waiting, so once persistence recovers a
	// status poll pairs them again instead of reporting idle.
	repo.saveBattleErr = nil
	st1, err := m.Status(1, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st1.State != QueueStateMatched || st1.Result == nil {
		t.Fatalf("expected a match after recovery, got %+v", st1)
	}
	st2, err := m.Status(2, "owner-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st2.State != QueueStateMatched || st2.Result == nil || st2.Result.ID != st1.Result.ID {
		t.Fatalf("expected the opponent to collect the same battle, got %+v", st2)
	}
}

func TestMatchmaker_StatusCanTriggerPairing(t *testing.T) {
	m, _ := newTestMatchmaker()

	if _, err := m.Enqueue(1, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Enqueue(3, "owner-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A compatible opponent joins but pairing happened against character 1.
	st, err := m.Enqueue(2, "owner-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != QueueStateMatched {
		t.Fatalf("expected the new joiner matched against the first waiter, got %+v", st)
	}

	// Character 3 is still waiting with no opponent available.
	st3, err := m.Status(3, "owner-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st3.State != QueueStateWaiting || st3.Position != 1 {
		t.Fatalf("expected character 3 promoted to position 1, got %+v", st3)
	}
}
