package persistence

import (
	"errors"

	"github.com/ecommerce/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError turns storage constraint violations into conflict domain
// errors. They only surface when a rule check raced with another writer.
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.Newf(shared.ErrAlreadyExists.Code, "%s conflicts with an existing record", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.Newf(shared.ErrConflict.Code, "%s violates a reference to another record", entity)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.Newf(shared.ErrInvalidInput.Code, "%s violates a storage constraint", entity)
	default:
		return err
	}
}
