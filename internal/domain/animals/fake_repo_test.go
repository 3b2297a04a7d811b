package animals

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// -------------------------
// Test repo (in-memory, cuenta llamadas)
// -------------------------

type testRepo struct {
	mu     sync.Mutex
	byID   map[int64]Animal
	lastID int64
	calls  map[string]int

	// failWith hace fallar toda operación (error de persistencia genérico).
	failWith error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Animal{}, calls: map[string]int{}}
}

func (r *testRepo) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *testRepo) hit(op string) error {
	r.calls[op]++
	return r.failWith
}

func (r *testRepo) List(ctx context.Context) ([]Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("list"); err != nil {
		return nil, err
	}
	out := make([]Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("get"); err != nil {
		return Animal{}, err
	}
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) Create(ctx context.Context, a Animal) (Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("create"); err != nil {
		return Animal{}, err
	}
	r.lastID++
	a.ID = r.lastID
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRepo) Update(ctx context.Context, a Animal, setName bool) (Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("update"); err != nil {
		return Animal{}, err
	}
	cur, ok := r.byID[a.ID]
	if !ok {
		return Animal{}, ErrNotFound
	}
	cur.Breed, cur.Weight = a.Breed, a.Weight
	if setName {
		cur.Name = a.Name
	}
	cur.UpdatedAt, cur.UpdatedBy = a.UpdatedAt, a.UpdatedBy
	r.byID[a.ID] = cur
	return cur, nil
}

func (r *testRepo) SetPhoto(ctx context.Context, id int64, filename, updatedBy string, at time.Time) (Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("set-photo"); err != nil {
		return Animal{}, err
	}
	cur, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	cur.PhotoFilename = &filename
	cur.UpdatedBy = &updatedBy
	cur.UpdatedAt = at
	r.byID[id] = cur
	return cur, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.hit("delete"); err != nil {
		return err
	}
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var errBoom = errors.New("connection reset")
