package llm

import (
	"log"
	"sync"
)

// RegistryConfig is the filtering and ordering policy for the registry.
type RegistryConfig struct {
	// Blacklist names are discarded outright.
	Blacklist []string `json:"blacklist,omitempty"`
	// Backup names are ordered before the remainder when eligible.
	Backup []string `json:"backup,omitempty"`
	// Fallback is one well-known provider name used when the scan
	// produces nothing. An empty active list is legitimate if the
	// fallback itself is blacklisted or absent from the catalog.
	Fallback string `json:"fallback,omitempty"`
}

// Registry builds and caches the active provider set for the process
// lifetime. Initialization is idempotent: the scan runs once and later
// calls return the cached list.
type Registry struct {
	mu      sync.Mutex
	catalog Catalog
	cfg     RegistryConfig

	initialized bool
	active      []Provider
	byName      map[string]Provider
}

// NewRegistry creates a registry over the given catalog. The catalog is
// scanned lazily on first use.
func NewRegistry(catalog Catalog, cfg RegistryConfig) *Registry {
	return &Registry{catalog: catalog, cfg: cfg}
}

// Init builds the active provider list, or returns the cached one.
// The scan is total over the catalog: a broken entry is logged and
// skipped, never aborts. No error is ever returned; an empty list is
// the degraded outcome and the caller reacts to it.
func (r *Registry) Init() []Provider {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return r.active
	}

	log.Println("[registry] initializing providers...")

	blacklist := nameSet(r.cfg.Blacklist)
	backup := nameSet(r.cfg.Backup)

	r.active = nil
	r.byName = make(map[string]Provider)

	// Backup providers first, in discovery order.
	for _, entry := range r.catalog {
		if backup[entry.Name] && !blacklist[entry.Name] {
			r.add(entry, "backup")
		}
	}
	// Then everything else, in discovery order.
	for _, entry := range r.catalog {
		if blacklist[entry.Name] || backup[entry.Name] {
			continue
		}
		r.add(entry, "provider")
	}

	if len(r.active) == 0 && r.cfg.Fallback != "" && !blacklist[r.cfg.Fallback] {
		for _, entry := range r.catalog {
			if entry.Name == r.cfg.Fallback {
				r.add(entry, "fallback provider")
				break
			}
		}
	}

	if len(r.active) == 0 {
		log.Println("[registry] no providers available")
	}
	log.Printf("[registry] active providers: %d", len(r.active))

	r.initialized = true
	return r.active
}

// add constructs a catalog entry and appends it to the active list.
// Must be called with r.mu held.
func (r *Registry) add(entry Entry, kind string) {
	if _, dup := r.byName[entry.Name]; dup {
		return
	}
	if !entry.Working {
		log.Printf("[registry] skipping non-working %s: %s", kind, entry.Name)
		return
	}
	p, err := entry.New()
	if err != nil {
		log.Printf("[registry] %s error %s: %v", kind, entry.Name, err)
		return
	}
	r.active = append(r.active, p)
	r.byName[entry.Name] = p
	log.Printf("[registry] added %s: %s", kind, entry.Name)
}

// Active returns the active provider list, initializing on first use.
func (r *Registry) Active() []Provider {
	return r.Init()
}

// Get returns an active provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.Init()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byName[name]
	return p, ok
}

// Names returns the active provider names in registry order.
func (r *Registry) Names() []string {
	providers := r.Init()
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}

// Reset drops the cached scan so the next Init re-scans the catalog.
// Not used in normal operation; exists for explicit re-initialization.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = false
	r.active = nil
	r.byName = nil
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
