// Package kernel contains the types shared by every bare-metal package in
// this module.
package kernel

// Error describes a kernel error. Errors are declared up-front as package
// level pointers to Error values: code running before a heap exists cannot
// call errors.New or fmt.Errorf.
type Error struct {
	// The module (driver, subsystem) that raised the error.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error raised by the same module with the
// same message. It lets errors.Is match copies of a sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}

	return e.Module == t.Module && e.Message == t.Message
}
