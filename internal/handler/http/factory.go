package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

// resourceHandlers bundles the generic CRUD handlers for one document
// resource. Each catalog collection (tours, reviews, bookings, accounts)
// instantiates it with its repository and hooks; the HTTP semantics are
// identical across collections.
type resourceHandlers[T any] struct {
	handler *Handler
	repo    store.ResourceRepository[T]

	// validate checks domain invariants on a full document: before insert
	// and again after a patch has been applied.
	validate func(*T) error

	// prepare normalises a document before it is written, e.g. deriving
	// the slug from the name. Runs on insert and update.
	prepare func(*T)

	// beforeInsert fills server-controlled fields from the request (route
	// parameters, authenticated user) before validation.
	beforeInsert func(r *http.Request, doc *T) error

	// patchFields is the allow-list of JSON field names a PATCH body may
	// carry. Anything outside it is rejected, not silently dropped.
	patchFields []string

	// scope returns filter predicates pinned by the route itself, e.g.
	// the tour of a nested review collection. They apply before any
	// client-supplied filter and are outside client control.
	scope func(r *http.Request) ([]query.Predicate, error)

	// idParam overrides the route parameter naming the document id.
	// Defaults to "id"; the tours routes use "tourId" because chi requires
	// one wildcard name per position and the nested review routes hang off
	// the same segment.
	idParam string
}

// id parses the document id route parameter.
func (rh resourceHandlers[T]) id(r *http.Request) (int64, error) {
	name := rh.idParam
	if name == "" {
		name = "id"
	}

	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidResourceID, raw)
	}
	return id, nil
}

// createOne handles POST /{collection}.
func (rh resourceHandlers[T]) createOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var doc T
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		rh.handler.writeError(w, r, ErrInvalidJSON)
		return
	}

	if rh.beforeInsert != nil {
		if err := rh.beforeInsert(r, &doc); err != nil {
			rh.handler.writeError(w, r, err)
			return
		}
	}
	if rh.prepare != nil {
		rh.prepare(&doc)
	}
	if rh.validate != nil {
		if err := rh.validate(&doc); err != nil {
			rh.handler.writeError(w, r, err)
			return
		}
	}

	created, err := rh.repo.Insert(ctx, doc)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{Status: models.StatusSuccess, Data: created}, http.StatusCreated)
}

// getOne handles GET /{collection}/{id}.
func (rh resourceHandlers[T]) getOne(w http.ResponseWriter, r *http.Request) {
	id, err := rh.id(r)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	doc, err := rh.repo.FindByID(r.Context(), id)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{Status: models.StatusSuccess, Data: doc}, http.StatusOK)
}

// updateOne handles PATCH /{collection}/{id}.
//
// The current document is fetched first, the patch is applied on top of it,
// and the merged document is re-validated before it is written back. A patch
// naming a field outside the allow-list fails the whole request.
func (rh resourceHandlers[T]) updateOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := rh.id(r)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	doc, err := rh.repo.FindByID(ctx, id)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		rh.handler.writeError(w, r, ErrInvalidJSON)
		return
	}

	for field := range patch {
		if !slices.Contains(rh.patchFields, field) {
			rh.handler.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownUpdateField, field))
			return
		}
	}

	merged, err := json.Marshal(patch)
	if err != nil {
		rh.handler.writeError(w, r, ErrInvalidJSON)
		return
	}
	if err := json.Unmarshal(merged, &doc); err != nil {
		log.Err(err).Msg("patch does not fit the document shape")
		rh.handler.writeError(w, r, ErrInvalidJSON)
		return
	}

	if rh.prepare != nil {
		rh.prepare(&doc)
	}
	if rh.validate != nil {
		if err := rh.validate(&doc); err != nil {
			rh.handler.writeError(w, r, err)
			return
		}
	}

	updated, err := rh.repo.UpdateByID(ctx, id, doc)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{Status: models.StatusSuccess, Data: updated}, http.StatusOK)
}

// deleteOne handles DELETE /{collection}/{id}.
func (rh resourceHandlers[T]) deleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := rh.id(r)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	if err := rh.repo.DeleteByID(r.Context(), id); err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getAll handles GET /{collection} with filtering, sorting, projection, and
// pagination taken from the query string.
func (rh resourceHandlers[T]) getAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var scope []query.Predicate
	if rh.scope != nil {
		var err error
		if scope, err = rh.scope(r); err != nil {
			rh.handler.writeError(w, r, err)
			return
		}
	}

	spec, err := query.Parse(r.URL.Query(), rh.repo.Schema(), scope...)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	docs, err := rh.repo.FindAll(ctx, spec)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	total, err := rh.repo.Count(ctx, spec)
	if err != nil {
		rh.handler.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ListResponse{
		Status:  models.StatusSuccess,
		Results: len(docs),
		Total:   total,
		Data:    docs,
	}, http.StatusOK)
}
