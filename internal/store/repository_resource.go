package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/query"
)

// Resource describes how a document type maps onto its table: the query
// schema (table name plus client-visible column allow-list), the columns
// written on insert and update, and a field selector binding each column to
// the backing struct field.
//
// The selector doubles as the scan destination (pointer) and the statement
// argument (database/sql dereferences pointer arguments), so one mapping
// covers both directions.
type Resource[T any] struct {
	Schema        query.Schema
	InsertColumns []string
	UpdateColumns []string

	// Field returns a pointer to the struct field backing column.
	// Columns always come from the schema allow-list; anything else is
	// scanned into a discard destination.
	Field func(doc *T, column string) any
}

// resourceRepository is the PostgreSQL-backed implementation of
// [ResourceRepository]. Statements are built with squirrel; list queries
// execute the [query.Spec] handed down from the transport layer.
type resourceRepository[T any] struct {
	db       *DB
	resource Resource[T]
	logger   *logger.Logger
}

// NewResourceRepository constructs a [ResourceRepository] for one resource
// descriptor backed by the provided database connection and logger.
func NewResourceRepository[T any](db *DB, resource Resource[T], logger *logger.Logger) ResourceRepository[T] {
	logger.Debug().Str("table", resource.Schema.Table).Msg("creating resource repository")
	return &resourceRepository[T]{
		db:       db,
		resource: resource,
		logger:   logger,
	}
}

func (r *resourceRepository[T]) Schema() query.Schema {
	return r.resource.Schema
}

// fields resolves scan destinations for the given columns on doc.
func (r *resourceRepository[T]) fields(doc *T, columns []string) []any {
	dest := make([]any, len(columns))
	for i, column := range columns {
		if ptr := r.resource.Field(doc, column); ptr != nil {
			dest[i] = ptr
			continue
		}

		var discard any
		dest[i] = &discard
	}
	return dest
}

// classifyResourceError translates driver-level failures into the package's
// sentinel errors.
func classifyResourceError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrDuplicateValue
	case pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange, pgerrcode.DatetimeFieldOverflow:
		return ErrInvalidValue
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// Insert persists doc and returns the canonical database representation
// with server-assigned fields (id, created_at, defaults).
func (r *resourceRepository[T]) Insert(ctx context.Context, doc T) (T, error) {
	log := logger.FromContext(ctx)

	values := r.fields(&doc, r.resource.InsertColumns)
	sqlStr, args, err := sq.Insert(r.resource.Schema.Table).
		Columns(r.resource.InsertColumns...).
		Values(values...).
		Suffix("RETURNING " + strings.Join(r.resource.Schema.Columns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error building insert query")
		return doc, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created T
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(r.fields(&created, r.resource.Schema.Columns)...); err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error inserting document")
		return created, classifyResourceError(err)
	}

	return created, nil
}

// FindByID fetches one document by primary key. Returns [ErrNotFound] if
// the id does not resolve.
func (r *resourceRepository[T]) FindByID(ctx context.Context, id int64) (T, error) {
	log := logger.FromContext(ctx)

	var doc T
	sqlStr, args, err := sq.Select(r.resource.Schema.Columns...).
		From(r.resource.Schema.Table).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error building select query")
		return doc, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(r.fields(&doc, r.resource.Schema.Columns)...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("table", r.resource.Schema.Table).Int64("id", id).Msg("error scanning document")
		}
		return doc, classifyResourceError(err)
	}

	return doc, nil
}

// UpdateByID writes the resource's mutable columns from doc to the row with
// the given id and returns the updated document. Returns [ErrNotFound] if
// the id does not resolve.
func (r *resourceRepository[T]) UpdateByID(ctx context.Context, id int64, doc T) (T, error) {
	log := logger.FromContext(ctx)

	assignments := make(map[string]any, len(r.resource.UpdateColumns))
	for _, column := range r.resource.UpdateColumns {
		assignments[column] = r.resource.Field(&doc, column)
	}

	sqlStr, args, err := sq.Update(r.resource.Schema.Table).
		SetMap(assignments).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(r.resource.Schema.Columns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error building update query")
		return doc, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated T
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(r.fields(&updated, r.resource.Schema.Columns)...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("table", r.resource.Schema.Table).Int64("id", id).Msg("error updating document")
		}
		return updated, classifyResourceError(err)
	}

	return updated, nil
}

// DeleteByID removes the row with the given id. Returns [ErrNotFound] if
// nothing was deleted.
func (r *resourceRepository[T]) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	sqlStr, args, err := sq.Delete(r.resource.Schema.Table).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Int64("id", id).Msg("error deleting document")
		return classifyResourceError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindAll executes the list specification and returns the matching page of
// documents. A page past the end of the result set yields an empty slice,
// not an error.
func (r *resourceRepository[T]) FindAll(ctx context.Context, spec query.Spec) ([]T, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := spec.ToSelect().ToSql()
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error executing list query")
		return nil, classifyResourceError(err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var doc T
		if err := rows.Scan(r.fields(&doc, spec.Columns())...); err != nil {
			log.Err(err).Str("table", r.resource.Schema.Table).Msg("error scanning list row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyResourceError(err)
	}

	return docs, nil
}

// Count executes the COUNT companion of the list specification.
func (r *resourceRepository[T]) Count(ctx context.Context, spec query.Spec) (int64, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := spec.ToCount().ToSql()
	if err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error building count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Err(err).Str("table", r.resource.Schema.Table).Msg("error executing count query")
		return 0, classifyResourceError(err)
	}

	return count, nil
}
