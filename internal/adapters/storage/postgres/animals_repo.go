package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"animals-api/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

var _ animals.Repository = (*AnimalsRepo)(nil)

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, breed, weight, name, photo_filename,
	created_at, created_by, updated_at, updated_by
`

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	return one(row)
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO animals (
			breed, weight, name,
			created_at, created_by, updated_at, updated_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+animalColumns,
		a.Breed,
		a.Weight,
		a.Name,
		a.CreatedAt,
		a.CreatedBy,
		a.UpdatedAt,
		a.UpdatedBy,
	)
	return one(row)
}

// Update no toca created_* ni photo_filename; name solo si setName.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal, setName bool) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE animals
		SET
			breed = $2,
			weight = $3,
			name = CASE WHEN $7::boolean THEN $4::varchar ELSE name END,
			updated_at = $5,
			updated_by = $6
		WHERE id = $1
		RETURNING `+animalColumns,
		a.ID,
		a.Breed,
		a.Weight,
		a.Name,
		a.UpdatedAt,
		a.UpdatedBy,
		setName,
	)
	return one(row)
}

func (r *AnimalsRepo) SetPhoto(ctx context.Context, id int64, filename, updatedBy string, at time.Time) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE animals
		SET photo_filename = $2, updated_by = $3, updated_at = $4
		WHERE id = $1
		RETURNING `+animalColumns,
		id, filename, updatedBy, at,
	)
	return one(row)
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func one(row *sql.Row) (animals.Animal, error) {
	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var (
		a                               animals.Animal
		name, photo, createdBy, updater sql.NullString
	)
	if err := s.Scan(
		&a.ID,
		&a.Breed,
		&a.Weight,
		&name,
		&photo,
		&a.CreatedAt,
		&createdBy,
		&a.UpdatedAt,
		&updater,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Name = fromNullString(name)
	a.PhotoFilename = fromNullString(photo)
	a.CreatedBy = fromNullString(createdBy)
	a.UpdatedBy = fromNullString(updater)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
