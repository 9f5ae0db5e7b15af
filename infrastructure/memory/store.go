// Package memory is an in-process store used by DB_DRIVER=memory and by tests.
// Transactions hold the store lock for their whole duration and restore a
// snapshot on failure, so they are serializable.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

type txKey struct{}

type Store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*models.User
	tasks         map[uuid.UUID]*models.Task
	notifications map[uuid.UUID]*models.Notification

	faults map[string]error
}

func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]*models.User),
		tasks:         make(map[uuid.UUID]*models.Task),
		notifications: make(map[uuid.UUID]*models.Notification),
		faults:        make(map[string]error),
	}
}

// FailOn makes the named operation (e.g. "users.AddTaskRef") return err until cleared
// with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Counts reports how many records of each kind are stored.
func (s *Store) Counts() (users, tasks, notifications int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.tasks), len(s.notifications)
}

// lock takes the store lock unless ctx belongs to a transaction on this store,
// in which case the lock is already held.
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

type snapshot struct {
	users         map[uuid.UUID]*models.User
	tasks         map[uuid.UUID]*models.Task
	notifications map[uuid.UUID]*models.Notification
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		users:         make(map[uuid.UUID]*models.User, len(s.users)),
		tasks:         make(map[uuid.UUID]*models.Task, len(s.tasks)),
		notifications: make(map[uuid.UUID]*models.Notification, len(s.notifications)),
	}
	for id, u := range s.users {
		snap.users[id] = u.Clone()
	}
	for id, t := range s.tasks {
		snap.tasks[id] = t.Clone()
	}
	for id, n := range s.notifications {
		snap.notifications[id] = n.Clone()
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.tasks = snap.tasks
	s.notifications = snap.notifications
}
