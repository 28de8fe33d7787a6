package dialect

// Dialect names.
const (
	// MySQL is the only relational dialect statements are compiled for.
	MySQL = "mysql"
)
