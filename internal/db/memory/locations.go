package memory

import (
	"context"
	"fmt"
	"sort"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/locations"
)

// LocationRepo — локации в памяти.
type LocationRepo struct{ s *Store }

// Create сохраняет копию локации с новым id.
func (r *LocationRepo) Create(_ context.Context, l *locations.Location) (*locations.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertLocation(l), nil
}

// insertLocation вызывать под s.mu.
func (s *Store) insertLocation(l *locations.Location) *locations.Location {
	stored := *l
	stored.ID = s.nextID("locations")
	s.locations[stored.ID] = &stored
	out := stored
	return &out
}

// GetByID возвращает копию локации.
func (r *LocationRepo) GetByID(_ context.Context, id int64) (*locations.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, fmt.Errorf("локация %d: %w", id, common.ErrLocationNotFound)
	}
	out := *l
	return &out, nil
}

// List возвращает локации под фильтр по возрастанию id.
func (r *LocationRepo) List(_ context.Context, f locations.Filter) ([]*locations.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*locations.Location{}
	for _, l := range r.s.locations {
		if f.Match(l) {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
