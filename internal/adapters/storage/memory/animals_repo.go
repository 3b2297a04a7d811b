package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"animals-api/internal/domain/animals"
)

type animalRepo struct {
	mu     sync.RWMutex
	byID   map[int64]animals.Animal
	lastID int64
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[int64]animals.Animal),
	}
}

func (r *animalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	// Orden estable por id asc, igual que el ORDER BY de postgres
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *animalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

// Create asigna el id; los ids no se reutilizan aunque se borren registros.
func (r *animalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	a.ID = r.lastID
	r.byID[a.ID] = a
	return a, nil
}

// Update reemplaza los campos editables. createdAt/createdBy y la foto se conservan.
func (r *animalRepo) Update(ctx context.Context, a animals.Animal, setName bool) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[a.ID]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}

	cur.Breed = a.Breed
	cur.Weight = a.Weight
	if setName {
		cur.Name = a.Name
	}
	cur.UpdatedAt = a.UpdatedAt
	cur.UpdatedBy = a.UpdatedBy
	r.byID[cur.ID] = cur
	return cur, nil
}

func (r *animalRepo) SetPhoto(ctx context.Context, id int64, filename, updatedBy string, at time.Time) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}

	cur.PhotoFilename = &filename
	cur.UpdatedBy = &updatedBy
	cur.UpdatedAt = at
	r.byID[id] = cur
	return cur, nil
}

func (r *animalRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return animals.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
