package animals

import "time"

// Animal es el recurso administrado. ID, timestamps y auditoría los asigna el sistema.
type Animal struct {
	ID     int64
	Breed  string
	Weight float64
	Name   *string

	// Solo se setea vía la subida de foto.
	PhotoFilename *string

	CreatedAt time.Time
	CreatedBy *string
	UpdatedAt time.Time
	UpdatedBy *string
}

// AnimalInput es el schema "animal" del body de create/update.
// createdBy/updatedBy/photoFilename no están: si vienen en el body se descartan.
type AnimalInput struct {
	Breed  *string  `json:"breed" validate:"required,min=1,max=255"`
	Weight *float64 `json:"weight" validate:"required,gt=0"`
	Name   *string  `json:"name" validate:"omitempty,max=255"`

	// NameSet distingue "name" ausente (no se toca) de "name": null (se borra).
	NameSet bool `json:"-"`
}

func (in *AnimalInput) MarkPresent(key string) {
	if key == "name" {
		in.NameSet = true
	}
}
