package engine

import (
	"strings"
	"sync"

	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// Handle identifies an open table within an Engine. Valid handles are
// positive; zero never refers to a live table.
type Handle int64

// CreateProps carries optional table-creation properties, the analog of
// a dataset-creation property list. A chunk set directly on the create
// call overrides the one set here.
type CreateProps struct {
	// Chunk is the table growth unit in records.
	Chunk uint
}

// Engine is the narrow boundary to the external typed-storage engine.
// The engine owns persistence entirely: chunking, on-disk format and
// atomicity of a single write call. Byte buffers cross this boundary in
// the exact record layout declared by the table's descriptor.
type Engine interface {
	// CreateTable creates a chunked table of the given record type.
	// chunk overrides any chunk in props; one of the two must be set,
	// since the table must be able to grow.
	CreateTable(name string, dtype hdftype.Descriptor, chunk uint, props *CreateProps) (Handle, error)
	// OpenTable opens an existing table by name.
	OpenTable(name string) (Handle, error)
	// Append writes nrecords records from data at the current end of the
	// table. Either the whole batch becomes visible or the table is
	// unchanged.
	Append(h Handle, nrecords int, data []byte) error
	// Read copies nrecords records starting at start into out.
	Read(h Handle, start uint64, nrecords int, out []byte) error
	// DeclaredType returns the table's declared record type.
	DeclaredType(h Handle) (hdftype.Descriptor, error)
	// RecordCount returns the table's current record count.
	RecordCount(h Handle) (uint64, error)
	// Valid reports whether h still refers to a live table.
	Valid(h Handle) bool
	// WriteAttr stores a typed attribute blob beside the table.
	WriteAttr(h Handle, name string, dtype hdftype.Descriptor, data []byte) error
	// ReadAttr loads an attribute's declared type and bytes.
	ReadAttr(h Handle, name string) (hdftype.Descriptor, []byte, error)
	// CloseTable releases the handle. Releasing an already released
	// handle is an error; a successful release is final.
	CloseTable(h Handle) error
}

// engineLock serializes every call into the underlying storage engine.
// The engine is not assumed internally thread-safe, so all engine work
// in the process funnels through this one critical section. Never call
// back into the engine while holding it.
var engineLock sync.Mutex

// checkName rejects names the engine's path-string encoding cannot
// represent: empty names and names with an embedded terminator.
func checkName(phase errors.Phase, name string) error {
	if name == "" || strings.ContainsRune(name, 0) {
		return errors.NameEncoding(phase, name)
	}
	return nil
}
