// Package endpoint holds the catalog of named remote endpoint profiles and
// its persisted store. The registry is an explicit object with a defined
// lifecycle: constructed at startup, optionally subscribed to store change
// events, closed at shutdown.
package endpoint

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nvara/traverse/internal/domain"
)

// Registry is the in-memory catalog of endpoint profiles keyed by name
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]domain.EndpointProfile
	subs     map[int]chan struct{}
	nextSub  int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]domain.EndpointProfile),
		subs:     make(map[int]chan struct{}),
	}
}

// Register adds a profile. A duplicate name is rejected with
// domain.ErrAlreadyExists; the existing profile is untouched.
func (r *Registry) Register(profile domain.EndpointProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.Name]; ok {
		return fmt.Errorf("%w: endpoint %s", domain.ErrAlreadyExists, profile.Name)
	}
	r.profiles[profile.Name] = profile
	return nil
}

// Remove deletes a profile by name. Removing an absent name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, name)
}

// Lookup resolves a name to its profile
// Returns domain.ErrUnknownEndpoint if the name is not registered
func (r *Registry) Lookup(name string) (domain.EndpointProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[name]
	if !ok {
		if name == "" {
			return domain.EndpointProfile{}, fmt.Errorf("%w: empty endpoint name", domain.ErrUnknownEndpoint)
		}
		return domain.EndpointProfile{}, fmt.Errorf("%w: %s", domain.ErrUnknownEndpoint, name)
	}
	return profile, nil
}

// List returns all profiles ordered by name
func (r *Registry) List() []domain.EndpointProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.EndpointProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ReplaceAll swaps the full profile set, as happens when the persisted
// store changes out-of-band, and notifies subscribers. Invalid profiles
// in the incoming set are dropped rather than failing the whole reload.
func (r *Registry) ReplaceAll(profiles []domain.EndpointProfile) {
	next := make(map[string]domain.EndpointProfile, len(profiles))
	for _, p := range profiles {
		if p.Validate() != nil {
			continue
		}
		next[p.Name] = p
	}

	r.mu.Lock()
	r.profiles = next
	r.mu.Unlock()

	r.notify()
}

// Subscribe returns a channel that receives a tick whenever the profile
// set is replaced, plus a cancel func that releases the subscription.
// Ticks are coalesced: a slow subscriber sees at least one tick, not all.
func (r *Registry) Subscribe() (<-chan struct{}, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan struct{}, 1)
	r.subs[id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
	return ch, cancel
}

func (r *Registry) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
