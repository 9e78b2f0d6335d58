package services

import "sync"

// SwipeSessionStore holds per-viewer swipe session state: the pending
// candidate queue and a single-slot undo history. It is a capability
// injected into SwipeService so core logic carries no global state; the
// default implementation is in-memory, a storage-backed one can be swapped
// in behind the same interface.
type SwipeSessionStore interface {
	// Queue returns a copy of the viewer's pending candidate queue.
	Queue(viewerID int64) []int64
	// SetQueue replaces the viewer's pending queue.
	SetQueue(viewerID int64, candidateIDs []int64)
	// PopCandidate removes candidateID from the viewer's queue and records
	// it as the last removed candidate (the one-slot undo history).
	PopCandidate(viewerID, candidateID int64)
	// RestoreLast pushes the last removed candidate back to the queue front
	// and clears the undo slot. Returns false when there is nothing to undo.
	RestoreLast(viewerID int64) (int64, bool)
	// Clear drops all session state for the viewer.
	Clear(viewerID int64)
}

type swipeSession struct {
	queue       []int64
	lastRemoved *int64
}

// InMemorySessionStore is the default SwipeSessionStore, a mutex-guarded
// map keyed by viewer ID.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*swipeSession
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[int64]*swipeSession)}
}

func (s *InMemorySessionStore) session(viewerID int64) *swipeSession {
	sess, ok := s.sessions[viewerID]
	if !ok {
		sess = &swipeSession{}
		s.sessions[viewerID] = sess
	}
	return sess
}

func (s *InMemorySessionStore) Queue(viewerID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[viewerID]
	if !ok {
		return nil
	}
	out := make([]int64, len(sess.queue))
	copy(out, sess.queue)
	return out
}

func (s *InMemorySessionStore) SetQueue(viewerID int64, candidateIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(viewerID)
	sess.queue = make([]int64, len(candidateIDs))
	copy(sess.queue, candidateIDs)
}

func (s *InMemorySessionStore) PopCandidate(viewerID, candidateID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(viewerID)
	for i, id := range sess.queue {
		if id == candidateID {
			sess.queue = append(sess.queue[:i], sess.queue[i+1:]...)
			break
		}
	}
	removed := candidateID
	sess.lastRemoved = &removed
}

func (s *InMemorySessionStore) RestoreLast(viewerID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[viewerID]
	if !ok || sess.lastRemoved == nil {
		return 0, false
	}
	id := *sess.lastRemoved
	sess.lastRemoved = nil
	sess.queue = append([]int64{id}, sess.queue...)
	return id, true
}

func (s *InMemorySessionStore) Clear(viewerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, viewerID)
}
