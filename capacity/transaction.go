package capacity

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// A Participant is one of several sequences that must always share a length.
type Participant interface {
	// Len returns the current length.
	Len() int

	// Stage changes the length to n and returns a function that puts back the exact storage
	// held before, capacity included. Undo never allocates and cannot fail. On error the
	// participant must be left as it was and undo is nil.
	Stage(n int) (undo func(), err error)
}

// ResizeAll resizes every participant to n, in order. If participant i fails, participants
// i-1 down to 0 are undone and the failure is returned, so either every participant has
// length n or none has changed, not even in capacity.
func ResizeAll(n int, participants ...Participant) error {
	oldLens := make([]int, len(participants))
	for i, p := range participants {
		oldLens[i] = p.Len()
	}

	undos := make([]func(), 0, len(participants))
	for i, p := range participants {
		undo, err := p.Stage(n)
		if err != nil {
			err = errors.Wrapf(err, "resizing participant %d of %d to %d", i+1, len(participants), n)
			return multierr.Combine(err, rollback(undos, oldLens))
		}
		undos = append(undos, undo)
	}
	return nil
}

// rollback runs undos in reverse order. A panic raised by one is turned into an error so the
// remaining participants are still restored.
func rollback(undos []func(), oldLens []int) error {
	var rollbackErr error
	for i := len(undos) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					rollbackErr = multierr.Combine(rollbackErr,
						fmt.Errorf("got panic restoring participant %d to %d: %v", i+1, oldLens[i], thePanic))
				}
			}()
			undos[i]()
		}()
	}
	return rollbackErr
}
