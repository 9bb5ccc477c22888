package handlers_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/biosecret/go-taskmanager/database"
	"github.com/biosecret/go-taskmanager/models"
)

// memDB backs the in-memory stores used by the handler tests. Ownership
// rules mirror the SQL stores: a foreign row behaves like a missing one.
type memDB struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]models.User
	clients map[int64]models.Client
	tasks   map[int64]models.Task
	pingErr error
	// pingDeadline records whether the last health ping carried a deadline.
	pingDeadline bool
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[int64]models.User{},
		clients: map[int64]models.Client{},
		tasks:   map[int64]models.Task{},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) PingContext(ctx context.Context) error {
	_, m.pingDeadline = ctx.Deadline()
	return m.pingErr
}

func (m *memDB) userByName(username string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *memDB) taskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

type memUsers struct{ db *memDB }

func (s memUsers) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return nil, database.ErrDuplicate
		}
	}
	u := models.User{ID: s.db.id(), Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.db.users[u.ID] = u
	return &u, nil
}

func (s memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := s.db.userByName(username)
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

type memClients struct{ db *memDB }

func (s memClients) Create(ctx context.Context, userID int64, name string, contactEmail *string) (*models.Client, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c := models.Client{ID: s.db.id(), UserID: userID, Name: name, ContactEmail: contactEmail, CreatedAt: time.Now()}
	s.db.clients[c.ID] = c
	return &c, nil
}

func (s memClients) List(ctx context.Context, userID int64) ([]models.Client, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Client{}
	for _, c := range s.db.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memClients) Owns(ctx context.Context, userID, clientID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[clientID]
	return ok && c.UserID == userID, nil
}

func (s memClients) Update(ctx context.Context, userID, clientID int64, in models.ClientUpdate) (*models.Client, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[clientID]
	if !ok || c.UserID != userID {
		return nil, database.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if email := in.ContactEmailValue(); email != nil {
		c.ContactEmail = email
	}
	s.db.clients[clientID] = c
	return &c, nil
}

func (s memClients) Delete(ctx context.Context, userID, clientID int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[clientID]
	if !ok || c.UserID != userID {
		return 0, database.ErrNotFound
	}
	var deleted int64
	for id, t := range s.db.tasks {
		if t.ClientID == clientID {
			delete(s.db.tasks, id)
			deleted++
		}
	}
	delete(s.db.clients, clientID)
	return deleted, nil
}

type memTasks struct{ db *memDB }

func (s memTasks) Create(ctx context.Context, userID int64, in models.TaskInput) (*models.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.clients[int64(in.ClientID)]
	if !ok || c.UserID != userID {
		return nil, database.ErrNotFound
	}
	t := models.Task{
		ID:          s.db.id(),
		UserID:      userID,
		ClientID:    c.ID,
		Title:       in.Title,
		Description: *in.Description,
		Status:      models.StatusPending,
		Priority:    *in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now(),
	}
	s.db.tasks[t.ID] = t
	return &t, nil
}

func (s memTasks) List(ctx context.Context, userID int64, clientID *int64) ([]models.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Task{}
	for _, t := range s.db.tasks {
		if t.UserID != userID || (clientID != nil && t.ClientID != *clientID) {
			continue
		}
		t.ClientName = s.db.clients[t.ClientID].Name
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memTasks) Update(ctx context.Context, userID, taskID int64, in models.TaskUpdate) (*models.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, database.ErrNotFound
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	s.db.tasks[taskID] = t
	return &t, nil
}

func (s memTasks) Delete(ctx context.Context, userID, taskID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tasks[taskID]
	if !ok || t.UserID != userID {
		return database.ErrNotFound
	}
	delete(s.db.tasks, taskID)
	return nil
}

var errBroken = errors.New("store is broken")

// brokenClients fails every call, for error-path tests.
type brokenClients struct{ err error }

func (s brokenClients) Create(context.Context, int64, string, *string) (*models.Client, error) {
	return nil, s.err
}

func (s brokenClients) List(context.Context, int64) ([]models.Client, error) {
	return nil, s.err
}

func (s brokenClients) Owns(context.Context, int64, int64) (bool, error) {
	return false, s.err
}

func (s brokenClients) Update(context.Context, int64, int64, models.ClientUpdate) (*models.Client, error) {
	return nil, s.err
}

func (s brokenClients) Delete(context.Context, int64, int64) (int64, error) {
	return 0, s.err
}
