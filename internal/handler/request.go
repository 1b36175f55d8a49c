package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
)

// maxBodyBytes caps every JSON request body. News content is the largest
// payload the site takes.
const maxBodyBytes = 1 << 20

// errInvalidID is returned before any storage call when {id} is not an integer.
var errInvalidID = apperror.ValidationFailed("id", "Invalid ID format")

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// decode reads and validates the request body into dst, an input struct
// from the schema package.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return schema.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst)
}
