package pointcloud

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/scalarcloud/capacity"
	"go.viam.com/scalarcloud/logging"
	"go.viam.com/scalarcloud/scalarfield"
)

func makeFields(t *testing.T, pc *PointCloud, names ...string) {
	t.Helper()
	for i, name := range names {
		index, err := pc.AddScalarField(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, index, test.ShouldEqual, i)
	}
}

func TestAddScalarField(t *testing.T) {
	pc := New(WithLogger(logging.NewTestLogger(t)))
	pc.AddPoints(Vectors{NewVector(1, 2, 3), NewVector(4, 5, 6)})

	index, err := pc.AddScalarField("A")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, index, test.ShouldEqual, 0)
	sf, ok := pc.ScalarField(index)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sf.Len(), test.ShouldEqual, 2)

	index, err = pc.AddScalarField("A")
	test.That(t, errors.Is(err, ErrFieldNameConflict), test.ShouldBeTrue)
	test.That(t, index, test.ShouldEqual, NoField)
	test.That(t, pc.ScalarFieldCount(), test.ShouldEqual, 1)
	test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"A"})

	index, err = pc.AddScalarField("B")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, index, test.ShouldEqual, 1)
	test.That(t, cap(pc.fields), test.ShouldEqual, 2)

	name, ok := pc.ScalarFieldName(1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, name, test.ShouldEqual, "B")
	_, ok = pc.ScalarFieldName(2)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = pc.ScalarField(-1)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestAddScalarFieldOutOfMemory(t *testing.T) {
	alloc := &fieldFailingAllocator{fail: true}
	pc := New(WithAllocator(alloc))

	// nothing to allocate for an empty cloud
	_, err := pc.AddScalarField("empty")
	test.That(t, err, test.ShouldBeNil)

	pc.AddPoint(NewVector(1, 1, 1))
	index, err := pc.AddScalarField("A")
	test.That(t, errors.Is(err, capacity.ErrOutOfMemory), test.ShouldBeTrue)
	test.That(t, errors.Is(err, ErrFieldNameConflict), test.ShouldBeFalse)
	test.That(t, index, test.ShouldEqual, NoField)
	test.That(t, pc.ScalarFieldCount(), test.ShouldEqual, 1)
}

func TestScalarFieldLookup(t *testing.T) {
	pc := New()
	makeFields(t, pc, "x", "y")

	index, ok := pc.ScalarFieldIndexByName("y")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, index, test.ShouldEqual, 1)

	index, ok = pc.ScalarFieldIndexByName("z")
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, index, test.ShouldEqual, NoField)

	sf, err := pc.ScalarFieldByName("x")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sf.Name(), test.ShouldEqual, "x")

	_, err = pc.ScalarFieldByName("z")
	test.That(t, errors.Is(err, ErrFieldNotFound), test.ShouldBeTrue)
}

func TestRenameScalarField(t *testing.T) {
	pc := New()
	makeFields(t, pc, "a", "b")

	err := pc.RenameScalarField(0, "b")
	test.That(t, errors.Is(err, ErrFieldNameConflict), test.ShouldBeTrue)
	test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"a", "b"})

	// renaming to its own name does nothing
	test.That(t, pc.RenameScalarField(0, "a"), test.ShouldBeNil)
	test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"a", "b"})

	err = pc.RenameScalarField(5, "c")
	test.That(t, errors.Is(err, ErrInvalidFieldIndex), test.ShouldBeTrue)

	// a bad index is reported even when the name is taken
	err = pc.RenameScalarField(7, "a")
	test.That(t, errors.Is(err, ErrInvalidFieldIndex), test.ShouldBeTrue)
	test.That(t, errors.Is(err, ErrFieldNameConflict), test.ShouldBeFalse)

	test.That(t, pc.RenameScalarField(1, "c"), test.ShouldBeNil)
	test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"a", "c"})
}

func TestDeleteScalarField(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		pc := New()
		makeFields(t, pc, "a")
		test.That(t, pc.DeleteScalarField(1), test.ShouldResemble, RoleUpdate{})
		test.That(t, pc.DeleteScalarField(-1), test.ShouldResemble, RoleUpdate{})
		test.That(t, pc.ScalarFieldCount(), test.ShouldEqual, 1)
	})

	t.Run("role on deleted field is cleared", func(t *testing.T) {
		pc := New()
		makeFields(t, pc, "a", "b", "c")
		test.That(t, pc.SetCurrentInScalarField(1), test.ShouldBeNil)
		test.That(t, pc.SetCurrentOutScalarField(1), test.ShouldBeNil)

		update := pc.DeleteScalarField(1)
		test.That(t, update, test.ShouldResemble, RoleUpdate{Removed: true, Input: RoleCleared, Output: RoleCleared})
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, NoField)
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, NoField)
		test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"a", "c"})
	})

	t.Run("role on last field follows it", func(t *testing.T) {
		pc := New()
		makeFields(t, pc, "a", "b", "c")
		test.That(t, pc.SetCurrentInScalarField(2), test.ShouldBeNil)
		test.That(t, pc.SetCurrentOutScalarField(1), test.ShouldBeNil)

		update := pc.DeleteScalarField(0)
		test.That(t, update, test.ShouldResemble, RoleUpdate{Removed: true, Input: RoleRelocated, Output: RoleUnchanged})
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, 0)
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, 1)
		in, _ := pc.CurrentInScalarField()
		test.That(t, in.Name(), test.ShouldEqual, "c")
		out, _ := pc.CurrentOutScalarField()
		test.That(t, out.Name(), test.ShouldEqual, "b")
	})

	t.Run("one role cleared, the other relocated", func(t *testing.T) {
		pc := New()
		makeFields(t, pc, "a", "b")
		test.That(t, pc.SetCurrentInScalarField(0), test.ShouldBeNil)
		test.That(t, pc.SetCurrentOutScalarField(1), test.ShouldBeNil)

		update := pc.DeleteScalarField(0)
		test.That(t, update, test.ShouldResemble, RoleUpdate{Removed: true, Input: RoleCleared, Output: RoleRelocated})
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, NoField)
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, 0)
	})

	t.Run("deleting the last field", func(t *testing.T) {
		pc := New()
		makeFields(t, pc, "a", "b")
		test.That(t, pc.SetCurrentInScalarField(0), test.ShouldBeNil)

		update := pc.DeleteScalarField(1)
		test.That(t, update, test.ShouldResemble, RoleUpdate{Removed: true})
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, 0)
		test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"a"})
	})

	t.Run("delete all", func(t *testing.T) {
		pc := New()
		makeFields(t, pc, "a", "b")
		test.That(t, pc.EnableScalarField(), test.ShouldBeNil)
		pc.DeleteAllScalarFields()
		test.That(t, pc.ScalarFieldCount(), test.ShouldEqual, 0)
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, NoField)
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, NoField)
	})
}

func TestSetCurrentScalarField(t *testing.T) {
	pc := New()
	makeFields(t, pc, "a")

	err := pc.SetCurrentInScalarField(1)
	test.That(t, errors.Is(err, ErrInvalidFieldIndex), test.ShouldBeTrue)
	err = pc.SetCurrentOutScalarField(-2)
	test.That(t, errors.Is(err, ErrInvalidFieldIndex), test.ShouldBeTrue)

	test.That(t, pc.SetCurrentInScalarField(0), test.ShouldBeNil)
	test.That(t, pc.SetCurrentInScalarField(NoField), test.ShouldBeNil)
	_, ok := pc.CurrentInScalarField()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestEnableScalarField(t *testing.T) {
	t.Run("creates the default field", func(t *testing.T) {
		pc := NewWithPrealloc(10)
		pc.AddPoints(Vectors{NewVector(1, 2, 3), NewVector(4, 5, 6)})
		test.That(t, pc.IsScalarFieldEnabled(), test.ShouldBeFalse)

		test.That(t, pc.EnableScalarField(), test.ShouldBeNil)
		test.That(t, pc.IsScalarFieldEnabled(), test.ShouldBeTrue)
		test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{DefaultScalarFieldName})
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, 0)
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, 0)

		// sized to the capacity, not the number of points
		sf, _ := pc.CurrentInScalarField()
		test.That(t, sf.Len(), test.ShouldEqual, 10)
		test.That(t, pc.Size(), test.ShouldEqual, 2)

		pc.SetPointScalarValue(1, 42)
		test.That(t, pc.PointScalarValue(1), test.ShouldEqual, scalarfield.ScalarType(42))
	})

	t.Run("reuses an existing default field", func(t *testing.T) {
		pc := New()
		pc.AddPoint(NewVector(1, 1, 1))
		makeFields(t, pc, "other", DefaultScalarFieldName)
		test.That(t, pc.SetCurrentOutScalarField(0), test.ShouldBeNil)

		test.That(t, pc.EnableScalarField(), test.ShouldBeNil)
		test.That(t, pc.ScalarFieldCount(), test.ShouldEqual, 2)
		test.That(t, pc.CurrentInScalarFieldIndex(), test.ShouldEqual, 1)
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, 0)

		pc.SetPointScalarValue(0, 3)
		test.That(t, pc.PointScalarValue(0), test.ShouldEqual, scalarfield.ScalarType(0))
	})

	t.Run("keeps the current input field", func(t *testing.T) {
		pc := New()
		pc.AddPoint(NewVector(1, 1, 1))
		makeFields(t, pc, "in")
		test.That(t, pc.SetCurrentInScalarField(0), test.ShouldBeNil)
		test.That(t, pc.EnableScalarField(), test.ShouldBeNil)
		test.That(t, pc.ScalarFieldNames(), test.ShouldResemble, []string{"in"})
		test.That(t, pc.CurrentOutScalarFieldIndex(), test.ShouldEqual, 0)
	})

	t.Run("out of memory", func(t *testing.T) {
		alloc := &fieldFailingAllocator{}
		pc := New(WithAllocator(alloc))
		pc.AddPoint(NewVector(1, 1, 1))
		makeFields(t, pc, "in")
		test.That(t, pc.SetCurrentInScalarField(0), test.ShouldBeNil)

		alloc.fail = true
		test.That(t, pc.points.reserve(50), test.ShouldBeNil)
		err := pc.EnableScalarField()
		test.That(t, errors.Is(err, capacity.ErrOutOfMemory), test.ShouldBeTrue)
		sf, _ := pc.ScalarField(0)
		test.That(t, sf.Len(), test.ShouldEqual, 1)
	})

	t.Run("empty field is not enabled", func(t *testing.T) {
		pc := New()
		test.That(t, pc.EnableScalarField(), test.ShouldBeNil)
		test.That(t, pc.IsScalarFieldEnabled(), test.ShouldBeFalse)
	})
}

func TestScalarValueContract(t *testing.T) {
	pc := New()
	pc.AddPoint(NewVector(1, 1, 1))

	assertRoleUnsetPanic := func(f func()) {
		t.Helper()
		defer func() {
			thePanic := recover()
			test.That(t, thePanic, test.ShouldNotBeNil)
			err, ok := thePanic.(error)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, errors.Is(err, ErrRoleUnset), test.ShouldBeTrue)
		}()
		f()
	}
	assertRoleUnsetPanic(func() { pc.SetPointScalarValue(0, 1) })
	assertRoleUnsetPanic(func() { pc.PointScalarValue(0) })
}
