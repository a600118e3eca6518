package presence

import "sync"

// Conn is the delivery handle the registry hands out. Implementations must not
// block in SendMessage; the websocket client drops frames when its buffer is full.
type Conn interface {
	SendMessage(payload []byte)
}

// Registry maps a logical user id to its single live connection.
//
// One mutex guards both the forward (user -> conn) and reverse (conn -> user)
// maps so register, lookup and unregister never interleave into a torn state.
// The reverse index is what lets Unregister run in O(1) and makes a stale
// disconnect a no-op: when a reconnect overwrites the forward entry, the old
// connection's reverse entry is removed in the same critical section, so a
// late Unregister for it no longer resolves to a user.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Conn
	byConn map[Conn]string
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]Conn),
		byConn: make(map[Conn]string),
	}
}

// Register installs conn as the delivery target for userID. Last writer wins:
// a second connection for the same user silently supersedes the first.
func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A connection switching owners must release the old user's forward
	// entry, or that user would stay reachable through a conn it no longer owns.
	if oldUser, ok := r.byConn[conn]; ok && oldUser != userID && r.byUser[oldUser] == conn {
		delete(r.byUser, oldUser)
	}
	if old, ok := r.byUser[userID]; ok && old != conn {
		delete(r.byConn, old)
	}
	r.byUser[userID] = conn
	r.byConn[conn] = userID
}

// Lookup returns the live connection for userID. Absence is a valid result,
// not an error.
func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.byUser[userID]
	return conn, ok
}

// Unregister removes whichever user entry currently maps to exactly this
// connection. If the user has reconnected elsewhere in the meantime this is
// a no-op.
func (r *Registry) Unregister(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[conn]
	if !ok {
		return
	}
	delete(r.byConn, conn)
	if r.byUser[userID] == conn {
		delete(r.byUser, userID)
	}
}

// Online reports whether userID currently has a live connection.
func (r *Registry) Online(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUser[userID]
	return ok
}

// Count returns the number of registered users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
