package engine

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"go.uber.org/zap"

	"github.com/Berrysoft/hdf5-ext/errors"
	"github.com/Berrysoft/hdf5-ext/hdftype"
)

// Key prefixes. Table names cannot contain NUL, so a zero byte
// terminates the name unambiguously in compound keys.
const (
	prefixMeta  = 'M' // meta | name
	prefixChunk = 'D' // chunk | name | 0 | index (big endian, so chunks sort)
	prefixAttr  = 'A' // attr | name | 0 | attr name
)

// Store is a goleveldb-backed Engine. Each table keeps one metadata
// record (schema, record size, chunk size, count) plus data chunks of
// chunk×recordSize bytes. An append batches every touched chunk and the
// metadata update into one leveldb write, so a batch is either fully
// visible or not at all.
type Store struct {
	db      *leveldb.DB
	path    string
	handles map[Handle]*tableState
	next    Handle
	closed  bool
}

var _ Engine = (*Store)(nil)

type tableState struct {
	name       string
	dtype      hdftype.Descriptor
	recordSize int
	chunk      uint
}

// Open opens (creating if absent) a store at the given directory.
func Open(path string) (*Store, error) {
	engineLock.Lock()
	defer engineLock.Unlock()

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Engine(errors.PhaseOpen, path, err)
	}
	Logger().Debug("store opened", zap.String("path", path))
	return &Store{
		db:      db,
		path:    path,
		handles: make(map[Handle]*tableState),
	}, nil
}

// Close releases the store and every handle opened from it. A second
// close is a no-op.
func (s *Store) Close() error {
	engineLock.Lock()
	defer engineLock.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.handles = nil
	if err := s.db.Close(); err != nil {
		Logger().Error("store close failed", zap.String("path", s.path), zap.Error(err))
		return errors.Engine(errors.PhaseClose, s.path, err)
	}
	return nil
}

// CreateTable implements Engine.
func (s *Store) CreateTable(name string, dtype hdftype.Descriptor, chunk uint, props *CreateProps) (Handle, error) {
	if chunk == 0 && props != nil {
		chunk = props.Chunk
	}
	if chunk == 0 {
		return 0, errors.Configuration("either plist or chunk need to be set")
	}
	if err := checkName(errors.PhaseCreate, name); err != nil {
		return 0, err
	}
	recordSize := int(dtype.ByteSize())
	if recordSize == 0 {
		return 0, errors.Configuration("record type has zero size")
	}

	engineLock.Lock()
	defer engineLock.Unlock()

	if s.closed {
		return 0, errors.Closed(errors.PhaseCreate, "store")
	}
	if _, err := s.db.Get(metaKey(name), nil); err == nil {
		return 0, errors.New(errors.PhaseCreate, errors.KindExists).Table(name).Detail("object already exists").Build()
	} else if err != ldberrors.ErrNotFound {
		return 0, errors.Engine(errors.PhaseCreate, name, err)
	}

	meta := tableMeta{
		schema: hdftype.EncodeDescriptor(dtype),
		record: uint32(recordSize),
		chunk:  uint32(chunk),
	}
	if err := s.db.Put(metaKey(name), meta.encode(), nil); err != nil {
		return 0, errors.Engine(errors.PhaseCreate, name, err)
	}
	Logger().Debug("table created",
		zap.String("table", name),
		zap.Int("record_size", recordSize),
		zap.Uint("chunk", chunk))
	return s.addHandle(name, dtype, recordSize, chunk), nil
}

// OpenTable implements Engine.
func (s *Store) OpenTable(name string) (Handle, error) {
	if err := checkName(errors.PhaseOpen, name); err != nil {
		return 0, err
	}

	engineLock.Lock()
	defer engineLock.Unlock()

	if s.closed {
		return 0, errors.Closed(errors.PhaseOpen, "store")
	}
	meta, err := s.loadMeta(errors.PhaseOpen, name)
	if err != nil {
		return 0, err
	}
	dtype, err := hdftype.DecodeDescriptor(meta.schema)
	if err != nil {
		return 0, err
	}
	return s.addHandle(name, dtype, int(meta.record), uint(meta.chunk)), nil
}

func (s *Store) addHandle(name string, dtype hdftype.Descriptor, recordSize int, chunk uint) Handle {
	s.next++
	s.handles[s.next] = &tableState{
		name:       name,
		dtype:      dtype,
		recordSize: recordSize,
		chunk:      chunk,
	}
	return s.next
}

func (s *Store) state(phase errors.Phase, h Handle) (*tableState, error) {
	if s.closed {
		return nil, errors.Closed(phase, "store")
	}
	st, ok := s.handles[h]
	if !ok {
		return nil, errors.InvalidHandle(phase)
	}
	return st, nil
}

// Append implements Engine. The whole batch lands in one leveldb write.
func (s *Store) Append(h Handle, nrecords int, data []byte) error {
	engineLock.Lock()
	defer engineLock.Unlock()

	st, err := s.state(errors.PhaseAppend, h)
	if err != nil {
		return err
	}
	if len(data) != nrecords*st.recordSize {
		return errors.InvalidData(errors.PhaseAppend,
			"buffer does not hold the stated record count")
	}
	if nrecords == 0 {
		return nil
	}
	meta, err := s.loadMeta(errors.PhaseAppend, st.name)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	chunkBytes := int(st.chunk) * st.recordSize
	pos := 0
	rec := meta.count
	for pos < len(data) {
		ci := rec / uint64(st.chunk)
		within := int(rec%uint64(st.chunk)) * st.recordSize
		take := chunkBytes - within
		if rest := len(data) - pos; take > rest {
			take = rest
		}
		var blob []byte
		if within > 0 {
			existing, err := s.db.Get(chunkKey(st.name, ci), nil)
			if err != nil {
				return errors.Engine(errors.PhaseAppend, st.name, err)
			}
			blob = append(existing[:within:within], data[pos:pos+take]...)
		} else {
			blob = data[pos : pos+take]
		}
		batch.Put(chunkKey(st.name, ci), blob)
		pos += take
		rec += uint64(take / st.recordSize)
	}
	meta.count = rec
	batch.Put(metaKey(st.name), meta.encode())

	if err := s.db.Write(batch, nil); err != nil {
		return errors.Engine(errors.PhaseAppend, st.name, err)
	}
	return nil
}

// Read implements Engine.
func (s *Store) Read(h Handle, start uint64, nrecords int, out []byte) error {
	engineLock.Lock()
	defer engineLock.Unlock()

	st, err := s.state(errors.PhaseRead, h)
	if err != nil {
		return err
	}
	if len(out) != nrecords*st.recordSize {
		return errors.InvalidData(errors.PhaseRead,
			"buffer does not hold the stated record count")
	}
	meta, err := s.loadMeta(errors.PhaseRead, st.name)
	if err != nil {
		return err
	}
	if start+uint64(nrecords) > meta.count {
		return errors.OutOfBounds(errors.PhaseRead, start, nrecords, meta.count)
	}

	pos := 0
	rec := start
	for pos < len(out) {
		ci := rec / uint64(st.chunk)
		within := int(rec%uint64(st.chunk)) * st.recordSize
		blob, err := s.db.Get(chunkKey(st.name, ci), nil)
		if err != nil {
			return errors.Engine(errors.PhaseRead, st.name, err)
		}
		take := len(blob) - within
		if rest := len(out) - pos; take > rest {
			take = rest
		}
		copy(out[pos:pos+take], blob[within:within+take])
		pos += take
		rec += uint64(take / st.recordSize)
	}
	return nil
}

// DeclaredType implements Engine.
func (s *Store) DeclaredType(h Handle) (hdftype.Descriptor, error) {
	engineLock.Lock()
	defer engineLock.Unlock()

	st, err := s.state(errors.PhaseValidate, h)
	if err != nil {
		return nil, err
	}
	return st.dtype, nil
}

// RecordCount implements Engine. The count is read back from the store
// on every call so appends through any handle are observed.
func (s *Store) RecordCount(h Handle) (uint64, error) {
	engineLock.Lock()
	defer engineLock.Unlock()

	st, err := s.state(errors.PhaseRead, h)
	if err != nil {
		return 0, err
	}
	meta, err := s.loadMeta(errors.PhaseRead, st.name)
	if err != nil {
		return 0, err
	}
	return meta.count, nil
}

// Valid implements Engine.
func (s *Store) Valid(h Handle) bool {
	engineLock.Lock()
	defer engineLock.Unlock()

	if s.closed {
		return false
	}
	st, ok := s.handles[h]
	if !ok {
		return false
	}
	_, err := s.db.Get(metaKey(st.name), nil)
	return err == nil
}

// WriteAttr implements Engine.
func (s *Store) WriteAttr(h Handle, name string, dtype hdftype.Descriptor, data []byte) error {
	if err := checkName(errors.PhaseAttr, name); err != nil {
		return err
	}

	engineLock.Lock()
	defer engineLock.Unlock()

	st, err := s.state(errors.PhaseAttr, h)
	if err != nil {
		return err
	}
	schema := hdftype.EncodeDescriptor(dtype)
	blob := binary.LittleEndian.AppendUint32(nil, uint32(len(schema)))
	blob = append(blob, schema...)
	blob = append(blob, data...)
	if err := s.db.Put(attrKey(st.name, name), blob, nil); err != nil {
		return errors.Engine(errors.PhaseAttr, st.name, err)
	}
	return nil
}

// ReadAttr implements Engine.
func (s *Store) ReadAttr(h Handle, name string) (hdftype.Descriptor, []byte, error) {
	if err := checkName(errors.PhaseAttr, name); err != nil {
		return nil, nil, err
	}

	engineLock.Lock()
	defer engineLock.Unlock()

	st, err := s.state(errors.PhaseAttr, h)
	if err != nil {
		return nil, nil, err
	}
	blob, err := s.db.Get(attrKey(st.name, name), nil)
	if err == ldberrors.ErrNotFound {
		return nil, nil, errors.NotFound(errors.PhaseAttr, name)
	} else if err != nil {
		return nil, nil, errors.Engine(errors.PhaseAttr, st.name, err)
	}
	if len(blob) < 4 {
		return nil, nil, errors.InvalidData(errors.PhaseAttr, "truncated attribute")
	}
	schemaLen := int(binary.LittleEndian.Uint32(blob))
	if len(blob) < 4+schemaLen {
		return nil, nil, errors.InvalidData(errors.PhaseAttr, "truncated attribute schema")
	}
	dtype, err := hdftype.DecodeDescriptor(blob[4 : 4+schemaLen])
	if err != nil {
		return nil, nil, err
	}
	return dtype, blob[4+schemaLen:], nil
}

// CloseTable implements Engine.
func (s *Store) CloseTable(h Handle) error {
	engineLock.Lock()
	defer engineLock.Unlock()

	if s.closed {
		return errors.Closed(errors.PhaseClose, "store")
	}
	if _, ok := s.handles[h]; !ok {
		return errors.InvalidHandle(errors.PhaseClose)
	}
	delete(s.handles, h)
	return nil
}

// tableMeta is the per-table metadata record.
type tableMeta struct {
	schema []byte
	record uint32
	chunk  uint32
	count  uint64
}

func (m tableMeta) encode() []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(m.schema)))
	buf = append(buf, m.schema...)
	buf = binary.LittleEndian.AppendUint32(buf, m.record)
	buf = binary.LittleEndian.AppendUint32(buf, m.chunk)
	buf = binary.LittleEndian.AppendUint64(buf, m.count)
	return buf
}

func decodeMeta(data []byte) (tableMeta, error) {
	var m tableMeta
	if len(data) < 4 {
		return m, errors.InvalidData(errors.PhaseDecode, "truncated table metadata")
	}
	schemaLen := int(binary.LittleEndian.Uint32(data))
	data = data[4:]
	if len(data) != schemaLen+16 {
		return m, errors.InvalidData(errors.PhaseDecode, "truncated table metadata")
	}
	m.schema = data[:schemaLen]
	m.record = binary.LittleEndian.Uint32(data[schemaLen:])
	m.chunk = binary.LittleEndian.Uint32(data[schemaLen+4:])
	m.count = binary.LittleEndian.Uint64(data[schemaLen+8:])
	return m, nil
}

func (s *Store) loadMeta(phase errors.Phase, name string) (tableMeta, error) {
	blob, err := s.db.Get(metaKey(name), nil)
	if err == ldberrors.ErrNotFound {
		return tableMeta{}, errors.NotFound(phase, name)
	} else if err != nil {
		return tableMeta{}, errors.Engine(phase, name, err)
	}
	return decodeMeta(blob)
}

func metaKey(name string) []byte {
	k := make([]byte, 0, 1+len(name))
	k = append(k, prefixMeta)
	return append(k, name...)
}

func chunkKey(name string, index uint64) []byte {
	k := make([]byte, 0, 1+len(name)+1+8)
	k = append(k, prefixChunk)
	k = append(k, name...)
	k = append(k, 0)
	return binary.BigEndian.AppendUint64(k, index)
}

func attrKey(table, attr string) []byte {
	k := make([]byte, 0, 1+len(table)+1+len(attr))
	k = append(k, prefixAttr)
	k = append(k, table...)
	k = append(k, 0)
	return append(k, attr...)
}
