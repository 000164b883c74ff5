// Package query translates raw list-request parameters into an executable
// filter/sort/projection/pagination specification.
//
// The package never touches storage: Parse produces an immutable [Spec]
// from url.Values, and the repositories render it into SQL through
// [Spec.ToSelect] and [Spec.ToCount]. Every field name that reaches SQL is
// checked against the resource's declared [Schema] first, so adversarial
// query parameters cannot splice arbitrary identifiers into a statement.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ErrInvalidQuery is returned by [Parse] when a request parameter cannot be
// turned into a predicate: an unknown field, an unrecognized comparison
// operator, or a malformed pagination value. Callers map it to HTTP 400.
var ErrInvalidQuery = errors.New("invalid query parameter")

// Reserved control keys that never become filter predicates.
const (
	keyPage   = "page"
	keySort   = "sort"
	keyLimit  = "limit"
	keyFields = "fields"
)

// Op is a relational comparison operator of a filter predicate.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpGt  Op = ">"
	OpLte Op = "<="
	OpLt  Op = "<"
)

// operatorSuffixes maps the bracketed suffix of a filter key
// (e.g. price[gte]) to its relational operator.
var operatorSuffixes = map[string]Op{
	"gte": OpGte,
	"gt":  OpGt,
	"lte": OpLte,
	"lt":  OpLt,
}

// Schema declares what a resource exposes to the query layer: the backing
// table, the set of columns a client may filter, sort, and project on, and
// the pagination bounds from configuration.
type Schema struct {
	// Table is the database table the resource lives in.
	Table string

	// Columns is the allow-list of client-visible columns. Anything a
	// request names outside this list is rejected.
	Columns []string

	// DefaultSortColumn orders results when the request carries no sort
	// parameter; it is applied descending, newest first.
	DefaultSortColumn string

	// DefaultLimit is the page size used when no limit parameter is given.
	DefaultLimit int

	// MaxLimit caps the limit parameter to bound result-set size.
	MaxLimit int
}

func (s Schema) hasColumn(name string) bool {
	return slices.Contains(s.Columns, name)
}

// Predicate is a single filter condition: column OP value.
type Predicate struct {
	Column string
	Op     Op
	Value  string
}

// SortKey is one element of the ordered sort list.
type SortKey struct {
	Column string
	Desc   bool
}

// Spec is the immutable result of parsing one list request. A fresh Spec is
// built per request and discarded with it.
type Spec struct {
	table      string
	predicates []Predicate
	sortKeys   []SortKey
	columns    []string
	skip       uint64
	limit      uint64
}

// Predicates returns the parsed filter conditions in request order.
func (s Spec) Predicates() []Predicate { return s.predicates }

// SortKeys returns the parsed sort keys in priority order.
func (s Spec) SortKeys() []SortKey { return s.sortKeys }

// Columns returns the projected columns.
func (s Spec) Columns() []string { return s.columns }

// Skip returns the number of rows discarded before the page starts.
func (s Spec) Skip() uint64 { return s.skip }

// Limit returns the page size.
func (s Spec) Limit() uint64 { return s.limit }

// Parse builds a [Spec] from raw request parameters against the given
// schema. The four stages (filter, sort, projection, pagination) are each
// total on well-formed input; malformed input yields an error wrapping
// [ErrInvalidQuery].
//
// Scope predicates are appended unconditionally; nested routes use them to
// pin a foreign key (e.g. reviews of one tour) outside client control.
func Parse(values url.Values, schema Schema, scope ...Predicate) (Spec, error) {
	spec := Spec{table: schema.Table}

	predicates, err := parseFilter(values, schema)
	if err != nil {
		return Spec{}, err
	}
	spec.predicates = append(scope, predicates...)

	if spec.sortKeys, err = parseSort(values.Get(keySort), schema); err != nil {
		return Spec{}, err
	}

	if spec.columns, err = parseFields(values.Get(keyFields), schema); err != nil {
		return Spec{}, err
	}

	if spec.skip, spec.limit, err = parsePagination(values, schema); err != nil {
		return Spec{}, err
	}

	return spec, nil
}

// parseFilter turns every non-reserved parameter into a predicate.
// A bracketed suffix selects the comparison operator; a bare key means
// equality. Unknown fields and unknown operators are rejected rather than
// silently ignored.
func parseFilter(values url.Values, schema Schema) ([]Predicate, error) {
	var predicates []Predicate

	// url.Values is a map; collect keys first for deterministic order.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if key == keyPage || key == keySort || key == keyLimit || key == keyFields {
			continue
		}

		column, op, err := parseFilterKey(key, schema)
		if err != nil {
			return nil, err
		}

		for _, value := range values[key] {
			predicates = append(predicates, Predicate{Column: column, Op: op, Value: value})
		}
	}

	return predicates, nil
}

// parseFilterKey splits a raw filter key of form "field" or "field[op]"
// into a validated column and operator.
func parseFilterKey(key string, schema Schema) (string, Op, error) {
	column, op := key, OpEq

	if open := strings.IndexByte(key, '['); open >= 0 {
		if !strings.HasSuffix(key, "]") {
			return "", "", fmt.Errorf("%w: malformed filter key %q", ErrInvalidQuery, key)
		}

		suffix := key[open+1 : len(key)-1]
		parsed, ok := operatorSuffixes[suffix]
		if !ok {
			return "", "", fmt.Errorf("%w: unknown operator %q in filter key %q", ErrInvalidQuery, suffix, key)
		}

		column, op = key[:open], parsed
	}

	if !schema.hasColumn(column) {
		return "", "", fmt.Errorf("%w: unknown field %q", ErrInvalidQuery, column)
	}

	return column, op, nil
}

// parseSort parses a comma-separated sort list. A leading '-' denotes
// descending order; fields apply in left-to-right priority. An empty
// parameter falls back to the schema's default, newest first.
func parseSort(raw string, schema Schema) ([]SortKey, error) {
	if raw == "" {
		return []SortKey{{Column: schema.DefaultSortColumn, Desc: true}}, nil
	}

	fields := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(fields))
	for _, field := range fields {
		key := SortKey{Column: field}
		if strings.HasPrefix(field, "-") {
			key.Column, key.Desc = field[1:], true
		}

		if !schema.hasColumn(key.Column) {
			return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, key.Column)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

// parseFields parses the comma-separated projection allow-list. An empty
// parameter projects every schema column; internal metadata never appears
// because it is not part of the schema in the first place.
func parseFields(raw string, schema Schema) ([]string, error) {
	if raw == "" {
		return slices.Clone(schema.Columns), nil
	}

	fields := strings.Split(raw, ",")
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		if !schema.hasColumn(field) {
			return nil, fmt.Errorf("%w: unknown projection field %q", ErrInvalidQuery, field)
		}
		columns = append(columns, field)
	}

	return columns, nil
}

// parsePagination resolves page and limit into skip/limit. A page past the
// end of the result set is not an error; it simply yields an empty page.
// Both values parse as 32-bit so the skip multiplication cannot wrap uint64
// and silently serve an early page.
func parsePagination(values url.Values, schema Schema) (skip, limit uint64, err error) {
	page := uint64(1)
	if raw := values.Get(keyPage); raw != "" {
		if page, err = strconv.ParseUint(raw, 10, 32); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("%w: page must be a positive integer, got %q", ErrInvalidQuery, raw)
		}
	}

	limit = uint64(schema.DefaultLimit)
	if raw := values.Get(keyLimit); raw != "" {
		if limit, err = strconv.ParseUint(raw, 10, 32); err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("%w: limit must be a positive integer, got %q", ErrInvalidQuery, raw)
		}
	}
	if max := uint64(schema.MaxLimit); limit > max {
		limit = max
	}

	return (page - 1) * limit, limit, nil
}

// ToSelect renders the spec into a squirrel SELECT with Postgres
// placeholders. Filter values travel as bind parameters, never as SQL text.
func (s Spec) ToSelect() sq.SelectBuilder {
	builder := sq.Select(s.columns...).
		From(s.table).
		PlaceholderFormat(sq.Dollar)

	builder = s.applyPredicates(builder)

	orderBy := make([]string, 0, len(s.sortKeys))
	for _, key := range s.sortKeys {
		direction := " ASC"
		if key.Desc {
			direction = " DESC"
		}
		orderBy = append(orderBy, key.Column+direction)
	}

	return builder.
		OrderBy(orderBy...).
		Offset(s.skip).
		Limit(s.limit)
}

// ToCount renders the COUNT(*) companion of [Spec.ToSelect]: same
// predicates, no ordering, projection, or pagination.
func (s Spec) ToCount() sq.SelectBuilder {
	return s.applyPredicates(
		sq.Select("COUNT(*)").
			From(s.table).
			PlaceholderFormat(sq.Dollar),
	)
}

func (s Spec) applyPredicates(builder sq.SelectBuilder) sq.SelectBuilder {
	for _, p := range s.predicates {
		switch p.Op {
		case OpEq:
			builder = builder.Where(sq.Eq{p.Column: p.Value})
		case OpGte:
			builder = builder.Where(sq.GtOrEq{p.Column: p.Value})
		case OpGt:
			builder = builder.Where(sq.Gt{p.Column: p.Value})
		case OpLte:
			builder = builder.Where(sq.LtOrEq{p.Column: p.Value})
		case OpLt:
			builder = builder.Where(sq.Lt{p.Column: p.Value})
		}
	}

	return builder
}
