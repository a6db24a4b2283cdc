// Package identity holds the already-established user the portal core acts
// for. It never authenticates anybody; it only caches and exposes who the
// session belongs to.
package identity

import (
	"errors"
	"sync"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
)

var ErrNoIdentity = errors.New("identity: no session")

type Identity struct {
	ID        int64
	Name      string
	Role      string
	HRID      *int64
	ManagerID *int64
}

func FromUser(u directory.User) Identity {
	return Identity{ID: u.ID, Name: u.Name, Role: u.Role, HRID: copyID(u.HRID), ManagerID: copyID(u.ManagerID)}
}

func FromUserContext(u auth.UserContext) Identity {
	return Identity{ID: u.UserID, Name: u.Name, Role: u.Role, HRID: copyID(u.HRID), ManagerID: copyID(u.ManagerID)}
}

func (i Identity) UserContext() auth.UserContext {
	return auth.UserContext{UserID: i.ID, Name: i.Name, Role: i.Role, HRID: copyID(i.HRID), ManagerID: copyID(i.ManagerID)}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Store persists the cached identity between process runs.
type Store interface {
	Load() (Identity, error)
	Save(Identity) error
	Clear() error
}

// Tokener is implemented by stores that can present the cached identity as a
// bearer token.
type Tokener interface {
	Token() (string, error)
}

type Provider struct {
	store Store

	mu      sync.RWMutex
	current *Identity
	token   string
}

func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// Load reads the cached identity once. Later calls return the loaded value
// without touching the store.
func (p *Provider) Load() (Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		return *p.current, nil
	}
	id, err := p.store.Load()
	if err != nil {
		return Identity{}, err
	}
	p.set(id)
	return id, nil
}

// Start caches id as the session identity.
func (p *Provider) Start(id Identity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Save(id); err != nil {
		return err
	}
	p.set(id)
	return nil
}

func (p *Provider) set(id Identity) {
	p.current = &id
	p.token = ""
	if t, ok := p.store.(Tokener); ok {
		if token, err := t.Token(); err == nil {
			p.token = token
		}
	}
}

func (p *Provider) Current() (Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return Identity{}, false
	}
	return *p.current, true
}

// Token returns the bearer token for the current identity, or "" when the
// store cannot produce one.
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// Clear ends the session locally and removes the cached identity.
func (p *Provider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
	p.token = ""
	return p.store.Clear()
}
