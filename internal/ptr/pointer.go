// Package ptr contains very small helpers to create and read pointers.
// This is to help with protobuf generated compute api structs which use
// pointer values for every optional field.
package ptr

func Pointer[T any](v T) *T {
	return &v
}

// Deref returns the value v points to, or the zero value if v is nil.
func Deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
