package animals

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound es el resultado explícito de "no existe" que devuelven los repos.
// Cualquier otro error es una falla de infraestructura.
var ErrNotFound = errors.New("animal not found")

type Repository interface {
	List(ctx context.Context) ([]Animal, error)
	GetByID(ctx context.Context, id int64) (Animal, error)

	// Create asigna ID y devuelve el registro guardado.
	Create(ctx context.Context, a Animal) (Animal, error)

	// Update reemplaza breed/weight y la auditoría de modificación.
	// name solo se escribe si setName; createdAt/createdBy y la foto se conservan.
	Update(ctx context.Context, a Animal, setName bool) (Animal, error)
	SetPhoto(ctx context.Context, id int64, filename, updatedBy string, at time.Time) (Animal, error)
	Delete(ctx context.Context, id int64) error
}
