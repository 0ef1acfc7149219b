package handler

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// Sessions keeps the open wizards of this process, keyed by a random id.
// Sessions live in memory only; a restart discards unfinished wizards.
type Sessions struct {
	mu        sync.RWMutex
	wizards   map[uuid.UUID]*service.Wizard
	newWizard func() *service.Wizard
}

// NewSessions returns an empty registry. Every wizard it creates is built
// with opts.
func NewSessions(opts ...service.WizardOption) *Sessions {
	return &Sessions{
		wizards:   make(map[uuid.UUID]*service.Wizard),
		newWizard: func() *service.Wizard { return service.NewWizard(opts...) },
	}
}

// Create opens a fresh wizard and returns it with its id.
func (s *Sessions) Create() (uuid.UUID, *service.Wizard) {
	id := uuid.New()
	w := s.newWizard()

	s.mu.Lock()
	s.wizards[id] = w
	s.mu.Unlock()
	return id, w
}

// Get returns the wizard stored under id, or domain.ErrNotFound.
func (s *Sessions) Get(id uuid.UUID) (*service.Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wizards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// Delete drops the wizard stored under id.
// Returns domain.ErrNotFound if there was none.
func (s *Sessions) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wizards[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.wizards, id)
	return nil
}

// Len reports how many wizards are open.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wizards)
}
