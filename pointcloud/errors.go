package pointcloud

import (
	"github.com/pkg/errors"
)

var (
	// ErrFieldNameConflict is returned when adding or renaming a scalar field to a name that
	// is already taken.
	ErrFieldNameConflict = errors.New("scalar field name already in use")

	// ErrFieldNotFound is returned when no scalar field has the requested name.
	ErrFieldNotFound = errors.New("scalar field not found")

	// ErrInvalidFieldIndex is returned for a scalar field index that does not exist.
	ErrInvalidFieldIndex = errors.New("invalid scalar field index")

	// ErrRoleUnset is the contract violation of reading or writing per point scalar values
	// without a current input/output scalar field.
	ErrRoleUnset = errors.New("no current scalar field")
)

func newFieldNameConflictError(name string) error {
	return errors.Wrapf(ErrFieldNameConflict, "%q", name)
}

func newInvalidFieldIndexError(index, count int) error {
	return errors.Wrapf(ErrInvalidFieldIndex, "index %d with %d scalar fields", index, count)
}
