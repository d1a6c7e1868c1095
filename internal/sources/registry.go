package sources

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/vrsandeep/mango-downloads/internal/models"
)

// Store is the part of the data store the registry loads from.
type Store interface {
	ListSources() ([]*models.Source, error)
}

// Registry keeps the known sources in memory, keyed by id.
type Registry struct {
	mu      sync.RWMutex
	sources map[int64]*models.Source
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[int64]*models.Source)}
}

// Register adds a source, replacing any previous source with the same id.
func (r *Registry) Register(s *models.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.ID] = s
}

// Get returns a source by its ID.
func (r *Registry) Get(id int64) (*models.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[id]
	return s, ok
}

// GetAll returns every registered source ordered by id.
func (r *Registry) GetAll() []*models.Source {
	r.mu.RLock()
	all := make([]*models.Source, 0, len(r.sources))
	for _, s := range r.sources {
		all = append(all, s)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// LoadFromStore registers every source found in the store.
func (r *Registry) LoadFromStore(st Store) error {
	list, err := st.ListSources()
	if err != nil {
		return fmt.Errorf("could not load sources: %w", err)
	}
	for _, s := range list {
		r.Register(s)
	}
	log.Printf("Loaded %d source(s)", len(list))
	return nil
}
