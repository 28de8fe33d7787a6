package gen

// Language produces the layer tree of the generated backend.
//
// Each layer is a root node run concurrently with the others by the
// Generator. Layers must target disjoint directories of the output root.
type Language interface {
	// Name returns the language name, e.g. "typescript".
	Name() string

	// Layers returns the layer nodes for the given configuration.
	Layers(*Config) ([]*Node, error)
}
