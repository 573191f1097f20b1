package models

// Ptr returns a pointer to v. It is used to fill optional model fields.
// Example: Cpu{Cores: Ptr(uint32(8))}
func Ptr[T any](v T) *T {
	return &v
}
