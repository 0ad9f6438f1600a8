package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKeyError reports whether the error came from a unique
// constraint violation. GORM translates some driver errors; the string
// check covers drivers that surface the raw postgres message.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
