package ecs

// entityStore tracks entity generations and free ids. Ids start at 1 so the
// zero Entity is never alive.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 1)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.alive[idx] = false
	s.gen[idx]++
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) list() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.alive {
		if ok {
			out = append(out, makeEntity(entityID(i+1), s.gen[i]))
		}
	}
	return out
}

// componentStore is a sparse set keyed by entity id. Removal keeps insertion
// order so iteration follows spawn order.
type componentStore struct {
	sparse   map[entityID]int
	entities []Entity
	values   []any
}

func newComponentStore() *componentStore {
	return &componentStore{sparse: make(map[entityID]int)}
}

func (s *componentStore) set(e Entity, v any) {
	if idx, ok := s.sparse[e.id()]; ok {
		s.entities[idx] = e
		s.values[idx] = v
		return
	}
	s.sparse[e.id()] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
}

func (s *componentStore) get(e Entity) (any, bool) {
	idx, ok := s.sparse[e.id()]
	if !ok || s.entities[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *componentStore) remove(e Entity) bool {
	idx, ok := s.sparse[e.id()]
	if !ok || s.entities[idx] != e {
		return false
	}
	delete(s.sparse, e.id())
	copy(s.entities[idx:], s.entities[idx+1:])
	copy(s.values[idx:], s.values[idx+1:])
	s.entities = s.entities[:len(s.entities)-1]
	s.values[len(s.values)-1] = nil
	s.values = s.values[:len(s.values)-1]
	for i := idx; i < len(s.entities); i++ {
		s.sparse[s.entities[i].id()] = i
	}
	return true
}

func (s *componentStore) snapshot() []Entity {
	return append([]Entity(nil), s.entities...)
}

func (s *componentStore) len() int {
	return len(s.entities)
}
