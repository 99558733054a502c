// FILE: internal/actor/registry.go
// Registry is the keyed dispatch table: entity id -> its one actor instance.
// Routing every write for id X through the single actor for X is the entire
// consistency mechanism; nothing else locks the mirror rows.
package actor

import (
	"sync"

	"ad-marketplace-be/internal/pkg/logger"
	"ad-marketplace-be/internal/repository/unitofwork"
	"ad-marketplace-be/pkg/lifecycle"

	"github.com/google/uuid"
)

type Registry struct {
	mu            sync.Mutex
	subscriptions map[uuid.UUID]*SubscriptionActor
	addons        map[uuid.UUID]*AddonActor

	uowFactory unitofwork.RepositoryFactory
	catalog    ProductCatalog
	publisher  lifecycle.Publisher
	logger     logger.ILogger
}

func NewRegistry(
	uowFactory unitofwork.RepositoryFactory,
	catalog ProductCatalog,
	publisher lifecycle.Publisher,
	logger logger.ILogger,
) *Registry {
	return &Registry{
		subscriptions: make(map[uuid.UUID]*SubscriptionActor),
		addons:        make(map[uuid.UUID]*AddonActor),
		uowFactory:    uowFactory,
		catalog:       catalog,
		publisher:     publisher,
		logger:        logger,
	}
}

// Subscription returns the one actor for the given id, starting it lazily.
func (r *Registry) Subscription(id uuid.UUID) *SubscriptionActor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.subscriptions[id]; ok {
		return a
	}
	a := NewSubscriptionActor(id, r.uowFactory, r.catalog, r.publisher, r.logger)
	r.subscriptions[id] = a
	return a
}

// Addon returns the one actor for the given addon id, starting it lazily.
func (r *Registry) Addon(id uuid.UUID) *AddonActor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.addons[id]; ok {
		return a
	}
	a := NewAddonActor(id, r.uowFactory, r.catalog, r.publisher, r.logger)
	r.addons[id] = a
	return a
}

// Shutdown stops all mailboxes. Pending tasks already queued still run.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.subscriptions {
		a.mailbox.close()
	}
	for _, a := range r.addons {
		a.mailbox.close()
	}
	r.subscriptions = make(map[uuid.UUID]*SubscriptionActor)
	r.addons = make(map[uuid.UUID]*AddonActor)
}
