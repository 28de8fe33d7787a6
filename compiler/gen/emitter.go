package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Emitter is the content-producing unit of a generator node. It owns a
// directory cursor, a cached listing of that directory, a text buffer, an
// indentation depth and a group of outstanding subtasks.
//
// An Emitter is not safe for concurrent use. Concurrent work runs on child
// emitters started with Go, each targeting its own subdirectory.
type Emitter struct {
	cfg     *Config
	dir     string
	listing map[string]bool

	open  bool // a file was started and not yet written
	path  string
	skip  bool
	buf   bytes.Buffer
	depth int

	tasks   errgroup.Group
	metrics *metrics
	log     zerolog.Logger
}

// Metrics tracks generation output.
type Metrics struct {
	FilesWritten int
	FilesSkipped int
	BytesWritten int64
}

type metrics struct {
	mu sync.Mutex
	m  Metrics
}

func (m *metrics) written(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.m.FilesWritten++
	m.m.BytesWritten += int64(n)
	m.mu.Unlock()
}

func (m *metrics) skipped() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.m.FilesSkipped++
	m.mu.Unlock()
}

func (m *metrics) snapshot() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m
}

// NewEmitter returns an emitter whose cursor is dir. The directory must
// exist; its listing is read immediately.
func NewEmitter(cfg *Config, dir string) (*Emitter, error) {
	e := &Emitter{cfg: cfg, dir: dir, log: zerolog.Nop()}
	if err := e.readDir(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewBuffer returns an emitter without a directory cursor, used to render
// text in memory with the formatting of cfg.
func NewBuffer(cfg *Config) *Emitter {
	return &Emitter{cfg: cfg, log: zerolog.Nop()}
}

// Dir returns the directory cursor.
func (e *Emitter) Dir() string { return e.dir }

// Descend creates name under the cursor if the last listing did not
// contain it, moves the cursor into it and re-reads the listing.
func (e *Emitter) Descend(name string) error {
	path := filepath.Join(e.dir, name)
	if !e.listing[name] {
		if err := os.Mkdir(path, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
			return NewGenerationError("descend", path, "create directory", err)
		}
	}
	e.dir = path
	return e.readDir()
}

func (e *Emitter) readDir() error {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return NewGenerationError("descend", e.dir, "read directory", err)
	}
	e.listing = make(map[string]bool, len(entries))
	for _, entry := range entries {
		e.listing[entry.Name()] = true
	}
	return nil
}

// Exists reports whether the last listing of the cursor contains name.
func (e *Emitter) Exists(name string) bool { return e.listing[name] }

// CreateFile starts a new file under the cursor. The file is opened only
// by WriteAndClose, so a render failure leaves no file behind. When
// truncate is off and the file already exists, the write is suppressed:
// content is still produced but WriteAndClose discards it.
func (e *Emitter) CreateFile(name string) error {
	if err := e.Close(); err != nil {
		return err
	}
	e.buf.Reset()
	e.depth = 0
	e.path = filepath.Join(e.dir, name)
	e.open = true
	e.skip = !e.cfg.Truncate && e.listing[name]
	return nil
}

// WriteAndClose writes the buffer to the started file, replacing any
// previous content, and clears the buffer.
func (e *Emitter) WriteAndClose() error {
	defer e.buf.Reset()
	switch {
	case !e.open:
		return NewGenerationError("write", e.path, "no open file", nil)
	case e.skip:
		e.metrics.skipped()
		e.log.Debug().Str("file", e.path).Msg("skip existing file")
		return e.Close()
	}
	defer e.Close()
	f, err := os.OpenFile(e.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return NewGenerationError("create", e.path, "open file", err)
	}
	n, err := f.Write(e.buf.Bytes())
	if cerr := f.Close(); err == nil && cerr != nil {
		return NewGenerationError("close", e.path, "close file", cerr)
	}
	if err != nil {
		return NewGenerationError("write", e.path, "write file", err)
	}
	e.metrics.written(n)
	e.log.Debug().Str("file", e.path).Int("bytes", n).Msg("write file")
	return nil
}

// Close discards the started file, if any. It is safe to call more than
// once.
func (e *Emitter) Close() error {
	e.open = false
	e.skip = false
	return nil
}

// Append writes one line at the current indentation, terminated by the
// configured newline. Empty lines carry no indentation.
func (e *Emitter) Append(line string) {
	if line != "" {
		e.buf.WriteString(strings.Repeat(e.cfg.Style.Indent(), e.depth))
		e.buf.WriteString(line)
	}
	e.buf.WriteString(e.cfg.Style.EOL())
}

// Appendf formats according to a format specifier and appends the result.
func (e *Emitter) Appendf(format string, args ...any) {
	e.Append(fmt.Sprintf(format, args...))
}

// Gap appends an empty line.
func (e *Emitter) Gap() {
	e.buf.WriteString(e.cfg.Style.EOL())
}

// SimpleComment appends a single line comment.
func (e *Emitter) SimpleComment(text string) {
	e.Append("// " + text)
}

// Comment appends a block comment with one line per element.
func (e *Emitter) Comment(lines ...string) {
	e.Append("/**")
	for _, l := range lines {
		if l == "" {
			e.Append(" *")
			continue
		}
		e.Append(" * " + l)
	}
	e.Append(" */")
}

// Indent increases the indentation depth by one level.
func (e *Emitter) Indent() { e.depth++ }

// Dedent decreases the indentation depth by one level.
func (e *Emitter) Dedent() {
	if e.depth > 0 {
		e.depth--
	}
}

// String returns the buffered text.
func (e *Emitter) String() string { return e.buf.String() }

// Go runs fn as an outstanding subtask of the emitter.
func (e *Emitter) Go(fn func() error) { e.tasks.Go(fn) }

// Wait blocks until every outstanding subtask finished and returns the
// first error.
func (e *Emitter) Wait() error { return e.tasks.Wait() }
