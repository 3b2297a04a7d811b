package animals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"animals-api/internal/errs"
	"animals-api/internal/platform/logger"
	"animals-api/internal/upload"

	"github.com/go-chi/chi/v5"
)

const basePath = "/animals"

type Deps struct {
	Uploads   *upload.Interceptor
	Responder *errs.Responder
	Logger    logger.Logger

	// Photos sirve GET /animals/photos/{filename}; nil = no se registra.
	Photos http.HandlerFunc
}

type handler struct {
	svc     *Service
	uploads *upload.Interceptor
	errs    *errs.Responder
	log     logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, deps Deps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	rs := deps.Responder
	if rs == nil {
		rs = errs.NewResponder(log)
	}
	h := &handler{svc: svc, uploads: deps.Uploads, errs: rs, log: log}

	r.Route(basePath, func(ar chi.Router) {
		ar.Get("/", h.run("list", nil, h.list))
		ar.Post("/", h.run("create", []Stage{requireAuth(), validateBody()}, h.create))

		if deps.Photos != nil {
			ar.Get("/photos/{filename}", deps.Photos)
		}

		ar.Get("/{id}", h.run("get", []Stage{parseID()}, h.get))
		ar.Put("/{id}", h.run("update", []Stage{parseID(), requireAuth(), validateBody()}, h.update))
		ar.Delete("/{id}", h.run("delete", []Stage{parseID(), requireAuth()}, h.delete))

		if h.uploads != nil {
			ar.Post("/{id}/photo", h.run("set-photo", []Stage{parseID(), requireAuth(), interceptPhoto(h.uploads)}, h.setPhoto))
		}
	})
}

type animalResponse struct {
	ID            int64     `json:"id"`
	Breed         string    `json:"breed"`
	Weight        float64   `json:"weight"`
	Name          *string   `json:"name"`
	PhotoFilename *string   `json:"photoFilename"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     *string   `json:"createdBy"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UpdatedBy     *string   `json:"updatedBy"`
}

type photoResponse struct {
	PhotoFilename string `json:"photoFilename"`
}

// list godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Router /animals [get]
func (h *handler) list(c Call) error {
	items, err := h.svc.List(c.R.Context())
	if err != nil {
		return errs.Internal(err)
	}

	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a))
	}
	writeJSON(c.W, http.StatusOK, out)
	return nil
}

// get godoc
// @Summary Obtener un animal
// @Tags animals
// @Produce json
// @Param id path int true "ID del animal (solo dígitos)"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "Cannot GET /animals/{id}"
// @Router /animals/{id} [get]
func (h *handler) get(c Call) error {
	a, err := h.svc.GetByID(c.R.Context(), c.ID)
	if err != nil {
		return notFoundOr(err, http.MethodGet, idPath(c.ID))
	}
	writeJSON(c.W, http.StatusOK, toAnimalResponse(a))
	return nil
}

// create godoc
// @Summary Crear animal
// @Description createdBy/updatedBy se toman del usuario autenticado.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body AnimalInput true "breed, weight, name opcional"
// @Success 201 {object} animalResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 422 {object} object "errors.body con los problemas por campo"
// @Router /animals [post]
func (h *handler) create(c Call) error {
	a, err := h.svc.Create(c.R.Context(), c.Claims.Username, c.Input)
	if err != nil {
		return errs.Internal(err)
	}
	writeJSON(c.W, http.StatusCreated, toAnimalResponse(a))
	return nil
}

// update godoc
// @Summary Reemplazar animal
// @Tags animals
// @Accept json
// @Produce json
// @Param id path int true "ID del animal"
// @Param payload body AnimalInput true "breed, weight, name opcional"
// @Success 200 {object} animalResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Cannot PUT /animals/{id}"
// @Failure 422 {object} object "errors.body con los problemas por campo"
// @Router /animals/{id} [put]
func (h *handler) update(c Call) error {
	a, err := h.svc.Update(c.R.Context(), c.ID, c.Claims.Username, c.Input)
	if err != nil {
		return notFoundOr(err, http.MethodPut, idPath(c.ID))
	}
	writeJSON(c.W, http.StatusOK, toAnimalResponse(a))
	return nil
}

// delete godoc
// @Summary Borrar animal
// @Tags animals
// @Param id path int true "ID del animal"
// @Success 204
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Cannot DELETE /animals/{id}"
// @Router /animals/{id} [delete]
func (h *handler) delete(c Call) error {
	if err := h.svc.Delete(c.R.Context(), c.ID); err != nil {
		return notFoundOr(err, http.MethodDelete, idPath(c.ID))
	}
	c.W.WriteHeader(http.StatusNoContent)
	return nil
}

// setPhoto godoc
// @Summary Subir foto del animal
// @Tags animals
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID del animal"
// @Param photo formData file true "JPEG o PNG"
// @Success 201 {object} photoResponse
// @Failure 400 {string} string "No photo file uploaded."
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Cannot POST /animals/{id}/photo"
// @Failure 500 {string} string "Error: The uploaded file must be a JPEG or a PNG image."
// @Router /animals/{id}/photo [post]
func (h *handler) setPhoto(c Call) error {
	filename := c.Photo.Filename

	if _, err := h.svc.SetPhoto(c.R.Context(), c.ID, c.Claims.Username, filename); err != nil {
		// el archivo ya quedó guardado: si no se asocia, se borra
		if rmErr := h.uploads.Store.Remove(context.WithoutCancel(c.R.Context()), filename); rmErr != nil {
			h.log.Warn("could not remove orphan photo", map[string]any{"file": filename, "error": rmErr})
		}
		return notFoundOr(err, http.MethodPost, idPath(c.ID)+"/photo")
	}

	writeJSON(c.W, http.StatusCreated, photoResponse{PhotoFilename: filename})
	return nil
}

func notFoundOr(err error, method, path string) error {
	if errors.Is(err, ErrNotFound) {
		return errs.NotFound(method, path)
	}
	return errs.Internal(err)
}

func idPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:            a.ID,
		Breed:         a.Breed,
		Weight:        a.Weight,
		Name:          a.Name,
		PhotoFilename: a.PhotoFilename,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		UpdatedAt:     a.UpdatedAt,
		UpdatedBy:     a.UpdatedBy,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
