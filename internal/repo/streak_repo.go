// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the per-user
// streak row.
//
// The check-in path is the only writer. To guarantee
// at-most-one-writer-per-user semantics it must run inside a transaction and
// load the row with GetStreakForUpdate, which takes a row-level lock so two
// concurrent check-ins for the same user serialize instead of racing the
// read-modify-write.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dilazaad/go-support-backend/internal/domain"
)

// GetOrCreateStreak loads the user's streak row, lazily inserting an empty
// one on first access. The empty row persists "{}" history so readers never
// see NULL.
func GetOrCreateStreak(ctx context.Context, db *gorm.DB, userID uint) (*domain.UserStreak, error) {
	var s domain.UserStreak
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = domain.UserStreak{UserID: userID, StreakHistory: "{}"}
	if err := db.WithContext(ctx).Create(&s).Error; err != nil {
		// Lost a create race: another request inserted the row first.
		var again domain.UserStreak
		if ferr := db.WithContext(ctx).Where("user_id = ?", userID).First(&again).Error; ferr == nil {
			return &again, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetStreakForUpdate behaves like GetOrCreateStreak but locks the returned
// row for the duration of the surrounding transaction (SELECT ... FOR
// UPDATE). Callers must pass a transaction-bound handle.
func GetStreakForUpdate(ctx context.Context, tx *gorm.DB, userID uint) (*domain.UserStreak, error) {
	var s domain.UserStreak
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = domain.UserStreak{UserID: userID, StreakHistory: "{}"}
	if err := tx.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveStreak writes the mutated streak row back in a single logical write.
func SaveStreak(ctx context.Context, db *gorm.DB, s *domain.UserStreak) error {
	return db.WithContext(ctx).Save(s).Error
}
