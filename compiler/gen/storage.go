package gen

import (
	"fmt"
	"slices"
)

// Storage backend type for codegen.
type Storage struct {
	Name    string   // storage name, as written in templates.
	Ident   string   // constant name in the generated DATABASE_TYPES enum.
	Dir     string   // directory under database/.
	Class   string   // generated database class name.
	Imports []string // npm packages required by the generated backend.
	DAOs    string   // subdirectory holding the per-table data-access objects.
}

// drivers holds the storage backends in their canonical order. Generated
// selection chains test backends in this order and fall back to the last
// selected one.
var drivers = []*Storage{
	{
		Name:    "sql",
		Ident:   "SQL",
		Dir:     "sql-database",
		Class:   "SqlDatabase",
		Imports: []string{"mariadb"},
		DAOs:    "daos",
	},
	{
		Name:    "mongo",
		Ident:   "MONGO",
		Dir:     "mongo-database",
		Class:   "MongoDatabase",
		Imports: []string{"mongoose"},
		DAOs:    "daos",
	},
	{
		Name:  "cache",
		Ident: "CACHE",
		Dir:   "cache-database",
		Class: "CacheDatabase",
	},
}

// NewStorage returns the storage backend type from the given string.
// It fails if the provided string is not a valid option.
func NewStorage(s string) (*Storage, error) {
	for _, d := range drivers {
		if s == d.Name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("scaffold/gen: invalid storage backend %q", s)
}

// Storages returns every known storage backend in canonical order.
func Storages() []*Storage { return slices.Clone(drivers) }

// String implements the fmt.Stringer interface.
func (s *Storage) String() string { return s.Name }

// Runtime is a generated server surface.
type Runtime string

// Supported runtimes, in canonical order.
const (
	RuntimeExpress   Runtime = "express"
	RuntimeVercel    Runtime = "vercel"
	RuntimeWebSocket Runtime = "websocket"
)

var runtimes = []Runtime{RuntimeExpress, RuntimeVercel, RuntimeWebSocket}

// NewRuntime returns the runtime named s.
func NewRuntime(s string) (Runtime, error) {
	r := Runtime(s)
	if !slices.Contains(runtimes, r) {
		return "", fmt.Errorf("scaffold/gen: invalid runtime %q", s)
	}
	return r, nil
}

// Imports returns the npm packages the runtime depends on.
func (r Runtime) Imports() []string {
	switch r {
	case RuntimeExpress:
		return []string{"express"}
	case RuntimeVercel:
		return []string{"@vercel/node"}
	case RuntimeWebSocket:
		return []string{"ws"}
	}
	return nil
}
