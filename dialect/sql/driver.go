package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/syssam/scaffold"
	"github.com/syssam/scaffold/dialect"
)

// ErrUnknownColumn is returned when a descriptor references a column the
// table does not declare.
var ErrUnknownColumn = errors.New("sql: unknown column")

// DefaultPort is the MySQL port used when Config.Port is zero.
const DefaultPort = 3306

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Config holds the connection target of a relational backend.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN returns the data source name understood by go-sql-driver/mysql.
func (c Config) DSN() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(port))
	mc.User = c.User
	mc.Passwd = c.Password
	mc.DBName = c.Database
	mc.ParseTime = true
	return mc.FormatDSN()
}

func openMySQL(c Config) (*sql.DB, error) {
	mc, err := mysql.ParseDSN(c.DSN())
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

// Driver holds the connection shared by every Store of a backend. A driver
// that fails to connect stays in the not-connected state and retries on
// the next operation.
type Driver struct {
	cfg   Config
	log   zerolog.Logger
	open  func(Config) (*sql.DB, error)
	stats QueryStats
	slow  time.Duration

	mu sync.Mutex
	db *sql.DB
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger used for connectivity warnings.
func WithLogger(l zerolog.Logger) DriverOption {
	return func(d *Driver) {
		d.log = l
	}
}

// WithSlowThreshold sets the duration above which a statement is logged
// as slow. Defaults to DefaultSlowThreshold.
func WithSlowThreshold(d time.Duration) DriverOption {
	return func(drv *Driver) {
		drv.slow = d
	}
}

// NewDriver returns a not-yet-connected driver for the given target.
func NewDriver(cfg Config, opts ...DriverOption) *Driver {
	d := &Driver{cfg: cfg, log: zerolog.Nop(), open: openMySQL, slow: DefaultSlowThreshold}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OpenDB wraps an already opened database handle with a connected Driver.
func OpenDB(db *sql.DB, opts ...DriverOption) *Driver {
	d := NewDriver(Config{}, opts...)
	d.db = db
	return d
}

// Dialect returns the SQL dialect statements are compiled for.
func (d *Driver) Dialect() string { return dialect.MySQL }

// Connect establishes the connection if it is not established yet. A
// missing host is a hard error returned before any attempt. Connectivity
// failures are logged as warnings and leave the driver not connected.
func (d *Driver) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return nil
	}
	if d.cfg.Host == "" {
		return scaffold.NewMissingConnectionError("sql")
	}
	db, err := d.open(d.cfg)
	if err != nil {
		d.log.Warn().Err(err).Str("host", d.cfg.Host).Msg("sql: open failed")
		return nil
	}
	if err := db.PingContext(ctx); err != nil {
		d.log.Warn().Err(err).Str("host", d.cfg.Host).Msg("sql: connect failed")
		_ = db.Close()
		return nil
	}
	d.db = db
	d.log.Info().Str("host", d.cfg.Host).Str("database", d.cfg.Database).Msg("sql: connected")
	return nil
}

// QueryStats returns the statement statistics collected by the driver.
func (d *Driver) QueryStats() *QueryStats { return &d.stats }

// observe records a finished statement of op and logs it when slow.
func (d *Driver) observe(op, query string, rows int64, start time.Time, err error) {
	elapsed := time.Since(start)
	if d.stats.record(op, rows, elapsed, d.slow, err) {
		d.log.Warn().Str("op", op).Dur("duration", elapsed).Str("query", query).Msg("sql: slow query")
	}
}

// IsConnected reports whether the driver holds a live connection.
func (d *Driver) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db != nil
}

// Close releases the connection. The driver may reconnect afterwards.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

func (d *Driver) conn(ctx context.Context) (ExecQuerier, error) {
	if err := d.Connect(ctx); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil, scaffold.ErrNotConnected
	}
	return d.db, nil
}

// Store is the data-access object of one table. Every call compiles its
// statement, binds the named parameters positionally and runs it on the
// driver connection.
type Store struct {
	drv   *Driver
	table *Table
}

// NewStore returns the data-access object of table t.
func NewStore(d *Driver, t *Table) *Store {
	return &Store{drv: d, table: t}
}

// TableName returns the bound table name. It fails with
// scaffold.ErrUsedAbstract for a store over the abstract table.
func (s *Store) TableName() (string, error) {
	return s.table.TableName()
}

// CreateTable creates the table if it does not exist.
func (s *Store) CreateTable(ctx context.Context) error {
	_, err := s.exec(ctx, "create table", s.table.CreateTable)
	return err
}

// DropTable drops the table.
func (s *Store) DropTable(ctx context.Context) error {
	_, err := s.exec(ctx, "drop table", s.table.DropTable)
	return err
}

// DeleteAll deletes every row.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.exec(ctx, "delete all", s.table.DeleteAll)
	return err
}

// Insert inserts item and returns the number of affected rows. Columns
// missing from item are bound as NULL.
func (s *Store) Insert(ctx context.Context, item map[string]any) (int64, error) {
	return s.exec(ctx, "insert", func() (Query, error) {
		return s.table.Insert(item)
	})
}

// Update applies update to the rows matching conditions and returns the
// number of affected rows.
func (s *Store) Update(ctx context.Context, conditions Conditions, update Update) (int64, error) {
	if err := s.checkColumns(conditions, update); err != nil {
		return 0, err
	}
	return s.exec(ctx, "update", func() (Query, error) {
		return s.table.Update(conditions, update)
	})
}

// Delete deletes the rows matching conditions and returns the number of
// affected rows.
func (s *Store) Delete(ctx context.Context, conditions Conditions) (int64, error) {
	if err := s.checkColumns(conditions); err != nil {
		return 0, err
	}
	return s.exec(ctx, "delete", func() (Query, error) {
		return s.table.Delete(conditions)
	})
}

// Find returns every row matching conditions with projection applied.
func (s *Store) Find(ctx context.Context, conditions Conditions, projection Projection) ([]map[string]any, error) {
	if err := s.checkColumns(conditions, projection); err != nil {
		return nil, err
	}
	q, err := s.table.Find(conditions, projection)
	if err != nil {
		return nil, err
	}
	conn, err := s.drv.conn(ctx)
	if err != nil {
		return nil, err
	}
	query, args := Bind(q)
	start := time.Now()
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		s.drv.observe("find", query, 0, start, err)
		return nil, scaffold.NewQueryError(s.table.name, "find", err)
	}
	defer rows.Close()
	items, err := scanMaps(rows)
	s.drv.observe("find", query, int64(len(items)), start, err)
	if err != nil {
		return nil, scaffold.NewQueryError(s.table.name, "find", err)
	}
	return items, nil
}

// FindOne returns the first row matching conditions, or nil if none does.
func (s *Store) FindOne(ctx context.Context, conditions Conditions, projection Projection) (map[string]any, error) {
	items, err := s.Find(ctx, conditions, projection)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (s *Store) exec(ctx context.Context, op string, build func() (Query, error)) (int64, error) {
	q, err := build()
	if err != nil {
		return 0, err
	}
	conn, err := s.drv.conn(ctx)
	if err != nil {
		return 0, err
	}
	query, args := Bind(q)
	start := time.Now()
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		s.drv.observe(op, query, 0, start, err)
		return 0, scaffold.NewQueryError(s.table.name, op, err)
	}
	n, err := res.RowsAffected()
	s.drv.observe(op, query, n, start, err)
	if err != nil {
		return 0, scaffold.NewQueryError(s.table.name, op, err)
	}
	return n, nil
}

// checkColumns rejects descriptor keys that are not table columns. Keys
// become identifiers and placeholder names in the statement text.
func (s *Store) checkColumns(descriptors ...any) error {
	if _, err := s.table.TableName(); err != nil {
		return err
	}
	for _, d := range descriptors {
		var keys []string
		switch d := d.(type) {
		case Conditions:
			for k := range d {
				keys = append(keys, k)
			}
		case Update:
			for k := range d {
				keys = append(keys, k)
			}
		case Projection:
			for k := range d {
				keys = append(keys, k)
			}
		}
		for _, k := range keys {
			if !s.table.HasColumn(k) {
				return fmt.Errorf("%w %q in table %q", ErrUnknownColumn, k, s.table.name)
			}
		}
	}
	return nil
}

func scanMaps(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var items []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		item := make(map[string]any, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				item[c] = string(b)
				continue
			}
			item[c] = values[i]
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
