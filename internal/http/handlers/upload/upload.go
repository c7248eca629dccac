// Package upload implements the multipart file upload endpoint.
//
// The handler accepts the text fields "loginuser" and "feature" plus an
// optional file field "data". The feature text is echoed back verbatim;
// it is not parsed as JSON at this layer. Uploaded files are stored
// under a fixed directory with a timestamp-prefixed name to avoid
// collisions. The file write is independent of any database state.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/frolovda/user-registry/internal/http/response"
	"github.com/frolovda/user-registry/internal/lib/sl"
)

// maxUploadMemory bounds the in-memory part of multipart parsing;
// larger files spill to temporary storage.
const maxUploadMemory = 32 << 20

type Handler struct {
	log *slog.Logger
	dir string
}

// Result is the JSON body returned after an upload. Filename is nil
// when no file was submitted.
type Result struct {
	LoginUser *string `json:"loginuser"`
	Feature   *string `json:"feature"`
	Filename  *string `json:"filename"`
}

// New creates a Handler storing files under dir.
func New(log *slog.Logger, dir string) *Handler {
	return &Handler{
		log: log,
		dir: dir,
	}
}

// ServeHTTP godoc
// @Summary Upload a file with metadata
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Param loginuser formData string false "Submitting user"
// @Param feature formData string false "Opaque feature text"
// @Param data formData file false "File to store"
// @Success 201 {object} upload.Result
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to parse form"))
		return
	}

	res := Result{
		LoginUser: formValue(r, "loginuser"),
		Feature:   formValue(r, "feature"),
	}

	file, header, err := r.FormFile("data")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// No file submitted; metadata alone is a valid upload.
	case err != nil:
		log.Error("failed to read file field", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to parse form"))
		return
	default:
		defer file.Close()
		if header.Filename != "" {
			name, err := h.save(file, header.Filename)
			if err != nil {
				log.Error("failed to save file", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to save file"))
				return
			}
			res.Filename = &name
			log.Info("stored uploaded file", slog.String("filename", name))
		}
	}

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, res)
}

// save writes the uploaded bytes under the upload directory, creating it
// on first use. The storage name prefixes the original filename with a
// microsecond UTC timestamp.
func (h *Handler) save(src io.Reader, original string) (string, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := StorageName(time.Now().UTC(), original)
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// StorageName derives the collision-resistant name a file is stored
// under: YYYYMMDDHHMMSSffffff_<original>. Any path component in the
// submitted filename is discarded.
func StorageName(t time.Time, original string) string {
	stamp := t.Format("20060102150405") + fmt.Sprintf("%06d", t.Nanosecond()/1000)
	return stamp + "_" + filepath.Base(original)
}

// formValue distinguishes a missing form key from an empty value so the
// response can echo null for fields that were never submitted.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
