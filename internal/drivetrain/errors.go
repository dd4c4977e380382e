package drivetrain

import "errors"

var (
	// ErrEmptyDrivetrain indicates a mixing call with no motors registered.
	ErrEmptyDrivetrain = errors.New("drivetrain: no motors registered")

	// ErrIndexOutOfRange indicates a motor index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("drivetrain: motor index out of range")
)
