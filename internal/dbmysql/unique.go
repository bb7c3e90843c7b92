package dbmysql

import (
	"errors"

	"gorm.io/gorm"

	"trumpet/internal/common"
)

// UniquePolicy selects what happens when an (actor, target) row already
// exists for a social action.
type UniquePolicy int

const (
	// PolicyToggle deletes the existing row (like/unlike).
	PolicyToggle UniquePolicy = iota
	// PolicyUpsert updates the existing row in place (event attendance).
	PolicyUpsert
	// PolicyRejectDuplicate refuses the action (job applications).
	PolicyRejectDuplicate
)

type UniqueOutcome int

const (
	OutcomeInserted UniqueOutcome = iota
	OutcomeDeleted
	OutcomeUpdated
)

// ApplyUnique runs the find-existing, branch-on-outcome sequence for one
// at-most-one-row-per-(actor,target) action. It must be called inside a
// transaction: the caller's tx scopes the read and the write together, and
// the unique index on the row is the final arbiter when two writers race.
// A losing writer's duplicate-key error is resolved per policy rather than
// surfaced.
//
// match scopes a query to the (actor, target) pair; fresh is the row to
// insert when nothing matches; update mutates the existing row under
// PolicyUpsert.
func ApplyUnique[T any](tx *gorm.DB, policy UniquePolicy, match func(*gorm.DB) *gorm.DB, fresh *T, update func(*T)) (UniqueOutcome, *T, error) {
	var existing T
	err := match(tx).First(&existing).Error
	switch {
	case err == nil:
		return applyToExisting(tx, policy, &existing, update)

	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(fresh).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent writer: the row exists now.
				return resolveRace(tx, policy, match, update)
			}
			return 0, nil, err
		}
		return OutcomeInserted, fresh, nil

	default:
		return 0, nil, err
	}
}

func applyToExisting[T any](tx *gorm.DB, policy UniquePolicy, existing *T, update func(*T)) (UniqueOutcome, *T, error) {
	switch policy {
	case PolicyToggle:
		if err := tx.Delete(existing).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeDeleted, existing, nil
	case PolicyUpsert:
		update(existing)
		if err := tx.Save(existing).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeUpdated, existing, nil
	default:
		return 0, existing, common.ErrConflict
	}
}

func resolveRace[T any](tx *gorm.DB, policy UniquePolicy, match func(*gorm.DB) *gorm.DB, update func(*T)) (UniqueOutcome, *T, error) {
	if policy == PolicyRejectDuplicate {
		return 0, nil, common.ErrConflict
	}
	var existing T
	if err := match(tx).First(&existing).Error; err != nil {
		// The winning row vanished between the failed insert and the
		// re-read; the request is not retried.
		return 0, nil, common.ErrStoreConflict
	}
	return applyToExisting(tx, policy, &existing, update)
}
