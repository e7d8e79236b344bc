// Package ptr provides helpers for the pointer-heavy Azure SDK models.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T { return &v }

// Deref returns the value p points to, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// StringMap converts a tag map into the map[string]*string shape ARM expects.
func StringMap(m map[string]string) map[string]*string {
	if m == nil {
		return nil
	}
	out := make(map[string]*string, len(m))
	for k, v := range m {
		out[k] = To(v)
	}
	return out
}

// Strings converts a slice of strings into a slice of pointers.
func Strings(values ...string) []*string {
	out := make([]*string, 0, len(values))
	for _, v := range values {
		out = append(out, To(v))
	}
	return out
}
