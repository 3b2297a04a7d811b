// Package upload acepta un único archivo de un request multipart, valida su
// Content-Type contra una allow-list y lo guarda con un nombre generado.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// UnsupportedTypeMessage es el texto que ve el cliente cuando el tipo no está permitido.
const UnsupportedTypeMessage = "The uploaded file must be a JPEG or a PNG image."

var (
	ErrNoFile          = errors.New("upload: no file uploaded")
	ErrUnsupportedType = errors.New("upload: unsupported content type")
	ErrTooLarge        = errors.New("upload: file too large")
)

// Store guarda el contenido subido. Save no debe dejar archivos parciales si falla.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Remove(ctx context.Context, name string) error
}

// File describe el archivo aceptado. Filename es el nombre generado, nunca el del cliente.
type File struct {
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
}

type Interceptor struct {
	Field    string
	Store    Store
	MaxBytes int64

	// Allowed mapea media type -> extensión del archivo guardado.
	Allowed map[string]string

	NewName func() string
}

// NewPhotoInterceptor acepta JPEG y PNG bajo el campo "photo".
func NewPhotoInterceptor(store Store, maxBytes int64) *Interceptor {
	return &Interceptor{
		Field:    "photo",
		Store:    store,
		MaxBytes: maxBytes,
		Allowed: map[string]string{
			"image/jpeg": ".jpeg",
			"image/png":  ".png",
		},
		NewName: uuid.NewString,
	}
}

// Intercept procesa solo el primer archivo bajo Field; las partes siguientes se ignoran.
func (i *Interceptor) Intercept(w http.ResponseWriter, r *http.Request) (File, error) {
	if i.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, i.MaxBytes)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		// no multipart (o sin boundary): para el cliente es "no hay archivo"
		return File{}, ErrNoFile
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return File{}, ErrNoFile
		}
		if err != nil {
			return File{}, classify(err)
		}

		if part.FormName() != i.Field || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		ct := mediaType(part.Header.Get("Content-Type"))
		ext, ok := i.Allowed[ct]
		if !ok {
			_ = part.Close()
			return File{}, fmt.Errorf("%w: %q", ErrUnsupportedType, ct)
		}

		name := i.NewName() + ext
		n, err := i.Store.Save(r.Context(), name, part)
		_ = part.Close()
		if err != nil {
			return File{}, classify(err)
		}

		return File{
			Filename:     name,
			OriginalName: part.FileName(),
			ContentType:  ct,
			Size:         n,
		}, nil
	}
}

func classify(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return ErrTooLarge
	}
	return fmt.Errorf("upload: %w", err)
}

func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}
