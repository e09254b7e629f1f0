package nrbf

// StreamHeader is the decoded SerializedStreamHeader record that must open
// every MS-NRBF stream (spec.md §4.4).
type StreamHeader struct {
	RootID       int32
	HeaderID     int32
	MajorVersion int32
	MinorVersion int32
}

// Dispatcher is the central record-type state machine (spec.md §4.4,
// "RecordDispatcher"). It owns the symbol tables and object registry a
// stream accumulates as it is read, and generalizes the teacher's
// bsatn.Unmarshal tag switch from a single-shot value decoder into a
// stateful, multi-record stream reader: MS-NRBF's forward-referenced class
// layouts and cross-record object references mean one Unmarshal-shaped call
// cannot stand alone the way it can for a self-contained BSATN value.
type Dispatcher struct {
	r        *BitReader
	prim     *PrimitiveDecoder
	typeDesc *TypeDescriptor
	libs     *LibraryTable
	classes  *ClassTable
	objects  *ObjectRegistry

	header      *StreamHeader
	ended       bool
	pendingNulls int
}

// NewDispatcher constructs a Dispatcher reading from r.
func NewDispatcher(r *BitReader) *Dispatcher {
	return &Dispatcher{
		r:        r,
		prim:     NewPrimitiveDecoder(r),
		typeDesc: NewTypeDescriptor(r),
		libs:     NewLibraryTable(),
		classes:  NewClassTable(),
		objects:  NewObjectRegistry(),
	}
}

// Objects exposes the object registry, needed by ReferenceResolver.
func (d *Dispatcher) Objects() *ObjectRegistry { return d.objects }

// Ended reports whether a MessageEnd record has been consumed.
func (d *Dispatcher) Ended() bool { return d.ended }

// ReadHeader reads the mandatory leading SerializedStreamHeader record.
func (d *Dispatcher) ReadHeader() (*StreamHeader, error) {
	tag, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	if RecordType(tag) != RecordSerializedStreamHeader {
		return nil, errInvalidHeader(d.r.Offset()-1, errInvalidRecordType(d.r.Offset()-1, tag))
	}
	rootID, err := d.r.ReadI32LE()
	if err != nil {
		return nil, errInvalidHeader(d.r.Offset(), err)
	}
	headerID, err := d.r.ReadI32LE()
	if err != nil {
		return nil, errInvalidHeader(d.r.Offset(), err)
	}
	major, err := d.r.ReadI32LE()
	if err != nil {
		return nil, errInvalidHeader(d.r.Offset(), err)
	}
	minor, err := d.r.ReadI32LE()
	if err != nil {
		return nil, errInvalidHeader(d.r.Offset(), err)
	}
	if major != 1 || minor != 0 {
		return nil, errInvalidHeader(d.r.Offset(), errorf("unsupported stream version %d.%d", major, minor))
	}
	h := &StreamHeader{RootID: rootID, HeaderID: headerID, MajorVersion: major, MinorVersion: minor}
	d.header = h
	return h, nil
}

// Document is one fully decoded MS-NRBF stream: the header, the root value
// it names, and the registry of every object the stream defined (still
// containing unresolved KindReference placeholders until a
// ReferenceResolver runs).
type Document struct {
	Header  *StreamHeader
	Root    *Value
	Objects *ObjectRegistry
}

// ReadDocument reads the header, the full record stream up to and including
// MessageEnd, and returns the assembled Document. Library and class
// metadata records are consumed transparently wherever they occur; every
// object-bearing record registers itself in the returned Objects registry
// as it is read.
func (d *Dispatcher) ReadDocument() (*Document, error) {
	header, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}
	var root *Value
	for !d.ended {
		v, err := d.readValue()
		if err != nil {
			return nil, err
		}
		if d.ended {
			break
		}
		if root == nil {
			root = v
		}
	}
	if root == nil {
		root = nullValue()
	}
	if resolved, err := d.objects.Lookup(d.r.Offset(), header.RootID); err == nil {
		root = resolved
	}
	return &Document{Header: header, Root: root, Objects: d.objects}, nil
}

// readValue reads one value-bearing record, transparently consuming any
// BinaryLibrary records that precede it, and transparently draining a
// pending ObjectNullMultiple(256) run one slot at a time. Returns (nil, nil)
// with d.ended set to true when it consumes MessageEnd.
func (d *Dispatcher) readValue() (*Value, error) {
	if d.pendingNulls > 0 {
		d.pendingNulls--
		return nullValue(), nil
	}
	for {
		tag, err := d.r.ReadU8()
		if err != nil {
			return nil, err
		}
		rt := RecordType(tag)
		switch rt {
		case RecordBinaryLibrary:
			if err := d.readBinaryLibrary(); err != nil {
				return nil, err
			}
			continue
		case RecordMessageEnd:
			d.ended = true
			return nil, nil
		case RecordBinaryObjectString:
			return d.readBinaryObjectString()
		case RecordClassWithId:
			return d.readClassWithId()
		case RecordClassWithMembers:
			return d.readClassWithMembers()
		case RecordClassWithMembersAndTypes:
			return d.readClassWithMembersAndTypes()
		case RecordSystemClassWithMembers:
			return d.readSystemClassWithMembers()
		case RecordSystemClassWithMembersAndTypes:
			return d.readSystemClassWithMembersAndTypes()
		case RecordBinaryArray:
			return d.readBinaryArray()
		case RecordArraySinglePrimitive:
			return d.readArraySinglePrimitive()
		case RecordArraySingleObject:
			return d.readArraySingleObject()
		case RecordArraySingleString:
			return d.readArraySingleString()
		case RecordMemberReference:
			return d.readMemberReference()
		case RecordMemberPrimitiveTyped:
			return d.readMemberPrimitiveTyped()
		case RecordObjectNull:
			return nullValue(), nil
		case RecordObjectNullMultiple256:
			return d.readObjectNullMultiple256()
		case RecordObjectNullMultiple:
			return d.readObjectNullMultiple()
		case RecordMethodCall:
			return d.readMethodCall()
		case RecordMethodReturn:
			return d.readMethodReturn()
		default:
			return nil, errInvalidRecordType(d.r.Offset()-1, tag)
		}
	}
}

// readMemberValue decodes one class member's value: inline if info
// describes a primitive, otherwise by reading the next self-tagged record.
func (d *Dispatcher) readMemberValue(info MemberTypeInfo) (*Value, error) {
	if info.InlinePrimitive() {
		return info.DecodeInline(d.prim)
	}
	return d.readValue()
}
