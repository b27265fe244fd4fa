package nddiff

import "errors"

var (
	// ErrInvalidDiff reports a diff node the patcher cannot interpret: an
	// OpDeep payload that is neither mapping- nor sequence-shaped, or a
	// subdiff that is not a mapping
	ErrInvalidDiff = errors.New("invalid diff structure")

	// ErrTargetMismatch reports a diff that does not fit the patch target:
	// a missing key, an index out of range, or a target whose shape differs
	// from the one the diff describes
	ErrTargetMismatch = errors.New("target mismatch")
)
