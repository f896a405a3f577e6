package receiving

import (
	"sync"
	"sync/atomic"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Session binds one operator's in-flight receiving operation to its
// workflow state machine. The inFlight flag serializes every mutating
// call on the session, item edits included: a second call arriving
// while one is still running is rejected instead of interleaved.
type Session struct {
	ID       uuid.UUID
	Workflow *receiving.ReceivingWorkflow

	inFlight atomic.Bool
}

// BeginOperation claims the session for one mutating call.
// Returns ErrOperationInFlight if another call holds the claim.
func (s *Session) BeginOperation() error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return shared.ErrOperationInFlight
	}
	return nil
}

// EndOperation releases the claim
func (s *Session) EndOperation() {
	s.inFlight.Store(false)
}

// SessionManager owns the live sessions. Sessions are in-memory only:
// the durable rows written at each stage commit are the record, the
// session is just the working set between commits.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a fresh session for a tenant and operator
func (m *SessionManager) Create(tenantID, actorID uuid.UUID) *Session {
	session := &Session{
		ID:       uuid.New(),
		Workflow: receiving.NewReceivingWorkflow(tenantID, actorID),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns a session by ID
func (m *SessionManager) Get(sessionID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, shared.NewDomainError("SESSION_NOT_FOUND", "Receiving session not found")
	}
	return session, nil
}

// Remove drops a session
func (m *SessionManager) Remove(sessionID uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
