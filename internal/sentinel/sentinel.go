package sentinel

// Compile-time check that Error implements the error interface.
var _ error = Error("")

// Error is an immutable error backed by a string constant. Because the
// type is comparable, the == comparison errors.Is falls back to works
// through wrapped error chains without an Is method.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
