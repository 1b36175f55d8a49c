package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// The helpers below implement the request flow every record kind shares.
// Resource handlers pass in their repository methods and the messages to
// use when storage fails.
//
// ORDER OF CHECKS:
//  1. Path id must be an integer (400, storage untouched).
//  2. For updates, the record must exist (404) before the body is looked at.
//  3. The body must pass its insert schema (400 listing every bad field).
//  4. Storage runs; anything unexpected is a 500 with a generic message.

// input is an insert schema that converts into the record it describes.
type input[T any] interface {
	Model() T
}

func listAll[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger,
	list func(context.Context) ([]T, error), internalMsg string,
) {
	recs, err := list(r.Context())
	if err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func getOne[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger,
	get func(context.Context, int) (*T, error), internalMsg string,
) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	rec, err := get(r.Context(), id)
	if err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// createOne decodes In, stores the record and answers 201 with it.
func createOne[T any, In input[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger,
	create func(context.Context, *T) error, internalMsg string,
) (*T, bool) {
	var in In
	if err := decode(w, r, &in); err != nil {
		respondError(w, r, logger, err, internalMsg)
		return nil, false
	}

	rec := in.Model()
	if err := create(r.Context(), &rec); err != nil {
		respondError(w, r, logger, err, internalMsg)
		return nil, false
	}
	return &rec, true
}

// replaceOne is a full replace: the body must satisfy the whole insert
// schema, and the stored record keeps only its id.
func replaceOne[T any, In input[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger,
	get func(context.Context, int) (*T, error),
	update func(context.Context, *T) error,
	setID func(*T, int),
	internalMsg string,
) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	if _, err := get(r.Context(), id); err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}

	var in In
	if err := decode(w, r, &in); err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}

	rec := in.Model()
	setID(&rec, id)
	if err := update(r.Context(), &rec); err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func deleteOne(w http.ResponseWriter, r *http.Request, logger *slog.Logger,
	del func(context.Context, int) error, internalMsg string,
) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	if err := del(r.Context(), id); err != nil {
		respondError(w, r, logger, err, internalMsg)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
