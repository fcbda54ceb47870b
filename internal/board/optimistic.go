package board

// Update is a generic apply/commit-or-revert step: take a snapshot, show
// the mutated value immediately, then settle against the remote outcome.
// The snapshot is retained until Commit or Revert, so a failed remote call
// can always restore the exact pre-mutation state.
type Update[T any] struct {
	snapshot T
	applied  T
}

// Begin snapshots current via clone and applies mutate to a second clone.
// mutate may modify its argument freely; it never sees the snapshot.
func Begin[T any](current T, clone func(T) T, mutate func(T) T) *Update[T] {
	return &Update[T]{
		snapshot: clone(current),
		applied:  mutate(clone(current)),
	}
}

// Applied returns the optimistic value for immediate display.
func (u *Update[T]) Applied() T { return u.applied }

// Commit keeps the optimistic value as the settled state.
func (u *Update[T]) Commit() T { return u.applied }

// Revert discards the optimistic value and restores the snapshot.
func (u *Update[T]) Revert() T { return u.snapshot }
