// Package repository provides a small generic gorm store used by the
// feature services for the common fetch/insert paths.
package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository wraps the handful of query shapes the services share.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	FindOne(ctx context.Context, filter map[string]any) (*T, error)
	Find(ctx context.Context, filter map[string]any, opts ...QueryOption) ([]T, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
	Delete(ctx context.Context, filter map[string]any) error
}

// QueryOption mutates the gorm query before execution.
type QueryOption func(*gorm.DB) *gorm.DB

// WithOrder applies an ORDER BY clause.
func WithOrder(order string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB { return tx.Order(order) }
}

// WithLimit caps the result set.
func WithLimit(limit int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		if limit > 0 {
			return tx.Limit(limit)
		}
		return tx
	}
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the given connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *store[T]) Save(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Save(record).Error
}

func (s *store[T]) FindOne(ctx context.Context, filter map[string]any) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).Where(filter).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store[T]) Find(ctx context.Context, filter map[string]any, opts ...QueryOption) ([]T, error) {
	tx := s.db.WithContext(ctx).Where(filter)
	for _, opt := range opts {
		tx = opt(tx)
	}
	var records []T
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *store[T]) Count(ctx context.Context, filter map[string]any) (int64, error) {
	var model T
	var count int64
	err := s.db.WithContext(ctx).Model(&model).Where(filter).Count(&count).Error
	return count, err
}

func (s *store[T]) Delete(ctx context.Context, filter map[string]any) error {
	var model T
	return s.db.WithContext(ctx).Where(filter).Delete(&model).Error
}
