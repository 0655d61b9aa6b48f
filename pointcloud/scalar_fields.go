package pointcloud

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/scalarcloud/scalarfield"
)

// RoleChange describes what happened to a scalar field role during a deletion.
type RoleChange int

const (
	// RoleUnchanged means the role still designates the same field at the same index.
	RoleUnchanged RoleChange = iota
	// RoleCleared means the role designated the deleted field and is now unset.
	RoleCleared
	// RoleRelocated means the role designated the last field, which moved into the deleted slot.
	RoleRelocated
)

// RoleUpdate is the outcome of DeleteScalarField.
type RoleUpdate struct {
	// Removed is false if the index did not exist, in which case nothing changed.
	Removed bool
	Input   RoleChange
	Output  RoleChange
}

// ScalarFieldCount returns the number of scalar fields.
func (cloud *PointCloud) ScalarFieldCount() int {
	return len(cloud.fields)
}

// ScalarField returns the field at index. The second return is false if index is out of range.
func (cloud *PointCloud) ScalarField(index int) (*scalarfield.ScalarField, bool) {
	if index < 0 || index >= len(cloud.fields) {
		return nil, false
	}
	return cloud.fields[index], true
}

// ScalarFieldName returns the name of the field at index.
func (cloud *PointCloud) ScalarFieldName(index int) (string, bool) {
	sf, ok := cloud.ScalarField(index)
	if !ok {
		return "", false
	}
	return sf.Name(), true
}

// ScalarFieldNames returns the names of all fields, in index order.
func (cloud *PointCloud) ScalarFieldNames() []string {
	return lo.Map(cloud.fields, func(sf *scalarfield.ScalarField, _ int) string {
		return sf.Name()
	})
}

// ScalarFieldIndexByName returns the index of the field called name.
func (cloud *PointCloud) ScalarFieldIndexByName(name string) (int, bool) {
	for i, sf := range cloud.fields {
		if sf.Name() == name {
			return i, true
		}
	}
	return NoField, false
}

// ScalarFieldByName returns the field called name or an error wrapping ErrFieldNotFound.
func (cloud *PointCloud) ScalarFieldByName(name string) (*scalarfield.ScalarField, error) {
	index, ok := cloud.ScalarFieldIndexByName(name)
	if !ok {
		return nil, errors.Wrapf(ErrFieldNotFound, "%q", name)
	}
	return cloud.fields[index], nil
}

// AddScalarField creates a field called name with one zero value per point and returns its
// index. Names must be unique. On error nothing is registered.
func (cloud *PointCloud) AddScalarField(name string) (int, error) {
	if _, exists := cloud.ScalarFieldIndexByName(name); exists {
		return NoField, newFieldNameConflictError(name)
	}

	sf := scalarfield.New(name, scalarfield.WithAllocator(cloud.alloc))
	if n := cloud.Size(); n > 0 {
		if err := sf.Resize(n); err != nil {
			cloud.logger.Debugw("could not allocate scalar field", "name", name, "size", n, "error", err)
			return NoField, errors.Wrapf(err, "creating scalar field %q", name)
		}
	}

	// fields are heavy, grow the registry by exactly one slot
	fields := make([]*scalarfield.ScalarField, len(cloud.fields)+1)
	copy(fields, cloud.fields)
	fields[len(cloud.fields)] = sf
	cloud.fields = fields

	return len(cloud.fields) - 1, nil
}

// DeleteScalarField removes the field at index. The last field takes its place, so indices
// are not stable across deletions; the returned RoleUpdate tells how the input and output
// roles were affected. An out of range index is ignored.
func (cloud *PointCloud) DeleteScalarField(index int) RoleUpdate {
	var update RoleUpdate
	if index < 0 || index >= len(cloud.fields) {
		return update
	}
	update.Removed = true

	if index == cloud.inIndex {
		cloud.inIndex = NoField
		update.Input = RoleCleared
	}
	if index == cloud.outIndex {
		cloud.outIndex = NoField
		update.Output = RoleCleared
	}

	lastIndex := len(cloud.fields) - 1
	if index < lastIndex {
		cloud.fields[index], cloud.fields[lastIndex] = cloud.fields[lastIndex], cloud.fields[index]
		if cloud.inIndex == lastIndex {
			cloud.inIndex = index
			update.Input = RoleRelocated
		}
		if cloud.outIndex == lastIndex {
			cloud.outIndex = index
			update.Output = RoleRelocated
		}
	}

	cloud.fields[lastIndex].Release()
	cloud.fields[lastIndex] = nil
	cloud.fields = cloud.fields[:lastIndex]
	return update
}

// DeleteAllScalarFields removes every field and unsets both roles.
func (cloud *PointCloud) DeleteAllScalarFields() {
	cloud.inIndex, cloud.outIndex = NoField, NoField
	for _, sf := range cloud.fields {
		sf.Release()
	}
	cloud.fields = nil
}

// RenameScalarField renames the field at index. It fails if another field already has
// newName; renaming a field to its own name does nothing.
func (cloud *PointCloud) RenameScalarField(index int, newName string) error {
	sf, ok := cloud.ScalarField(index)
	if !ok {
		return newInvalidFieldIndexError(index, len(cloud.fields))
	}
	if other, exists := cloud.ScalarFieldIndexByName(newName); exists && other != index {
		return newFieldNameConflictError(newName)
	}
	sf.SetName(newName)
	return nil
}

// CurrentInScalarFieldIndex returns the index of the input field, or NoField.
func (cloud *PointCloud) CurrentInScalarFieldIndex() int {
	return cloud.inIndex
}

// CurrentOutScalarFieldIndex returns the index of the output field, or NoField.
func (cloud *PointCloud) CurrentOutScalarFieldIndex() int {
	return cloud.outIndex
}

// SetCurrentInScalarField makes the field at index the target of SetPointScalarValue.
// NoField unsets the role.
func (cloud *PointCloud) SetCurrentInScalarField(index int) error {
	if index != NoField && (index < 0 || index >= len(cloud.fields)) {
		return newInvalidFieldIndexError(index, len(cloud.fields))
	}
	cloud.inIndex = index
	return nil
}

// SetCurrentOutScalarField makes the field at index the source of PointScalarValue and
// ForEach. NoField unsets the role.
func (cloud *PointCloud) SetCurrentOutScalarField(index int) error {
	if index != NoField && (index < 0 || index >= len(cloud.fields)) {
		return newInvalidFieldIndexError(index, len(cloud.fields))
	}
	cloud.outIndex = index
	return nil
}

// CurrentInScalarField returns the input field.
func (cloud *PointCloud) CurrentInScalarField() (*scalarfield.ScalarField, bool) {
	return cloud.ScalarField(cloud.inIndex)
}

// CurrentOutScalarField returns the output field.
func (cloud *PointCloud) CurrentOutScalarField() (*scalarfield.ScalarField, bool) {
	return cloud.ScalarField(cloud.outIndex)
}

// EnableScalarField makes sure there is an input field able to hold a value for every point
// the cloud has room for. Without an input field, the field named DefaultScalarFieldName is
// used, and created if needed. Without an output field, the input field is used for both.
//
// The field is sized to the point capacity, not the point count, so that points added after
// a Reserve already have a slot. It may therefore be longer than Size.
func (cloud *PointCloud) EnableScalarField() error {
	sf, ok := cloud.CurrentInScalarField()
	if !ok {
		index, exists := cloud.ScalarFieldIndexByName(DefaultScalarFieldName)
		if !exists {
			var err error
			if index, err = cloud.AddScalarField(DefaultScalarFieldName); err != nil {
				return err
			}
		}
		cloud.inIndex = index
		sf = cloud.fields[index]
	}

	if _, ok := cloud.CurrentOutScalarField(); !ok {
		cloud.outIndex = cloud.inIndex
	}

	if err := sf.Resize(cloud.Capacity()); err != nil {
		return errors.Wrapf(err, "enabling scalar field %q", sf.Name())
	}
	return nil
}

// IsScalarFieldEnabled returns whether the input field holds a value for every point.
func (cloud *PointCloud) IsScalarFieldEnabled() bool {
	sf, ok := cloud.CurrentInScalarField()
	if !ok {
		return false
	}
	return sf.Len() != 0 && sf.Len() >= cloud.Size()
}

// SetPointScalarValue writes v for point i in the input field. Calling it without an input
// field, or with i beyond the field, is a programming error and panics.
func (cloud *PointCloud) SetPointScalarValue(i int, v scalarfield.ScalarType) {
	sf, ok := cloud.CurrentInScalarField()
	if !ok {
		panic(errors.Wrapf(ErrRoleUnset, "setting scalar value of point %d", i))
	}
	sf.SetValue(i, v)
}

// PointScalarValue reads the value of point i in the output field. Calling it without an
// output field, or with i beyond the field, is a programming error and panics.
func (cloud *PointCloud) PointScalarValue(i int) scalarfield.ScalarType {
	sf, ok := cloud.CurrentOutScalarField()
	if !ok {
		panic(errors.Wrapf(ErrRoleUnset, "getting scalar value of point %d", i))
	}
	return sf.Value(i)
}
