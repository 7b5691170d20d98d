package database

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/metrics"
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filters are equality conditions ANDed together. Nil values are skipped.
type Filters map[string]interface{}

type Sort struct {
	Field string
	Order string
}

func (s *Sort) desc() bool {
	return strings.EqualFold(s.Order, "desc")
}

type PaginatedResult[T any] struct {
	Data       []T                       `json:"data"`
	Pagination domain.PaginationResponse `json:"pagination"`
}

// Repository is the CRUD surface shared by every collection. Specialized
// repositories embed it and add their own queries.
type Repository[T any] struct {
	db         *gorm.DB
	collection string
}

func NewRepository[T any](db *gorm.DB, collection string) *Repository[T] {
	return &Repository[T]{db: db, collection: collection}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, collection: r.collection}
}

func (r *Repository[T]) Collection() string {
	return r.collection
}

// DB returns the underlying handle scoped to ctx.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Track records the outcome of op in metrics and, when err is set, replaces it
// with a *domain.BackendError naming the collection and operation. It is meant
// to be deferred with a named error result:
//
//	defer database.Track(&err, "recipes", "search", time.Now())
func Track(err *error, collection, op string, start time.Time) {
	metrics.ObserveDBOperation(collection, op, *err, time.Since(start))
	if *err == nil {
		return
	}
	var backendErr *domain.BackendError
	if errors.As(*err, &backendErr) {
		return
	}
	cause := *err
	if errors.Is(cause, gorm.ErrRecordNotFound) {
		cause = domain.ErrNotFound
	}
	*err = &domain.BackendError{Collection: collection, Op: op, Err: cause}
}

// FindByID returns (nil, nil) when no row has the given id.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (_ *T, err error) {
	defer Track(&err, r.collection, "find_by_id", time.Now())

	var entity T
	if err := r.DB(ctx).Where("id = ?", id).Take(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) FindMany(ctx context.Context, filters Filters, sort *Sort, page *domain.PaginationRequest) (_ []T, err error) {
	defer Track(&err, r.collection, "find_many", time.Now())

	query := ApplyFilters(r.DB(ctx).Model(new(T)), filters)
	if sort != nil && sort.Field != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sort.Field},
			Desc:   sort.desc(),
		})
	}
	if page != nil {
		p := page.Normalize()
		query = query.Offset(p.Offset()).Limit(p.Limit)
	}

	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindManyPaginated returns one page of rows together with the size of the
// filtered set.
func (r *Repository[T]) FindManyPaginated(ctx context.Context, filters Filters, sort *Sort, page *domain.PaginationRequest) (_ *PaginatedResult[T], err error) {
	defer Track(&err, r.collection, "find_many_paginated", time.Now())

	p := domain.PaginationRequest{}
	if page != nil {
		p = *page
	}
	p = p.Normalize()

	total, err := r.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	rows, err := r.FindMany(ctx, filters, sort, &p)
	if err != nil {
		return nil, err
	}

	return &PaginatedResult[T]{
		Data:       rows,
		Pagination: domain.NewPaginationResponse(p, total),
	}, nil
}

func (r *Repository[T]) Count(ctx context.Context, filters Filters) (_ int64, err error) {
	defer Track(&err, r.collection, "count", time.Now())

	var total int64
	if err := ApplyFilters(r.DB(ctx).Model(new(T)), filters).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) (err error) {
	defer Track(&err, r.collection, "create", time.Now())
	return r.DB(ctx).Create(entity).Error
}

// Update applies fields to the row with the given id, stamps updated_at and
// returns the stored row. id and created_at are never written.
func (r *Repository[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (_ *T, err error) {
	defer Track(&err, r.collection, "update", time.Now())

	values := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		if key == "id" || key == "created_at" {
			continue
		}
		values[key] = value
	}
	values["updated_at"] = time.Now()

	res := r.DB(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var entity T
	if err := r.DB(ctx).Where("id = ?", id).Take(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete removes the row. Deleting a missing id is an error.
func (r *Repository[T]) Delete(ctx context.Context, id string) (err error) {
	defer Track(&err, r.collection, "delete", time.Now())

	res := r.DB(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Exists(ctx context.Context, id string) (_ bool, err error) {
	defer Track(&err, r.collection, "exists", time.Now())

	var count int64
	if err := r.DB(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyFilters adds one equality condition per non-nil filter, in key order so
// generated SQL is stable.
func ApplyFilters(query *gorm.DB, filters Filters) *gorm.DB {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := filters[key]
		if isNil(value) {
			continue
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: key}, Value: value})
	}
	return query
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
