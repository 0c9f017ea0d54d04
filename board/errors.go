package board

import "errors"

// ErrInvalidPosition is returned by Setup when the supplied board
// would violate a core position invariant. Fatal: the caller is expected to
// terminate rather than continue with an unusable Board.
var ErrInvalidPosition = errors.New("board: invalid position")

// ErrInternalInvariantViolation is returned by Verify when the
// roster/grid have drifted out of sync, or by Undo when the undo
// stack is empty. It indicates a bug, not a user-facing condition.
var ErrInternalInvariantViolation = errors.New("board: internal invariant violation")
