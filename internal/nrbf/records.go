package nrbf

// classInfo is the common name+member-names prefix shared by every
// class-defining record kind.
type classInfo struct {
	ObjectID    int32
	Name        string
	MemberNames []string
}

func (d *Dispatcher) readClassInfo() (classInfo, error) {
	objectID, err := d.r.ReadI32LE()
	if err != nil {
		return classInfo{}, err
	}
	name, err := d.r.ReadLengthPrefixedString()
	if err != nil {
		return classInfo{}, err
	}
	count, err := d.r.ReadI32LE()
	if err != nil {
		return classInfo{}, err
	}
	if count < 0 || int64(count) > maxCollectionLen {
		return classInfo{}, errorf("member count %d out of range", count)
	}
	names := make([]string, count)
	for i := range names {
		n, err := d.r.ReadLengthPrefixedString()
		if err != nil {
			return classInfo{}, err
		}
		names[i] = n
	}
	return classInfo{ObjectID: objectID, Name: name, MemberNames: names}, nil
}

func (d *Dispatcher) readBinaryLibrary() error {
	id, err := d.r.ReadI32LE()
	if err != nil {
		return err
	}
	name, err := d.r.ReadLengthPrefixedString()
	if err != nil {
		return err
	}
	return d.libs.Register(d.r.Offset(), id, name)
}

func (d *Dispatcher) readBinaryObjectString() (*Value, error) {
	id, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	s, err := d.r.ReadLengthPrefixedString()
	if err != nil {
		return nil, err
	}
	v := stringValue(s)
	if err := d.objects.Register(d.r.Offset(), id, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Dispatcher) readMemberReference() (*Value, error) {
	id, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	return referenceValue(id), nil
}

func (d *Dispatcher) readMemberPrimitiveTyped() (*Value, error) {
	tag, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	pt := PrimitiveType(tag)
	if pt < PrimitiveBoolean || pt > PrimitiveString {
		return nil, errInvalidPrimitiveCode(d.r.Offset()-1, tag)
	}
	return d.prim.Decode(pt)
}

func (d *Dispatcher) readObjectNullMultiple256() (*Value, error) {
	n, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errorf("ObjectNullMultiple256 count must be at least 1")
	}
	d.pendingNulls = int(n) - 1
	return nullValue(), nil
}

func (d *Dispatcher) readObjectNullMultiple() (*Value, error) {
	n, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	if n < 1 || int64(n) > maxCollectionLen {
		return nil, errorf("ObjectNullMultiple count %d out of range", n)
	}
	d.pendingNulls = int(n) - 1
	return nullValue(), nil
}

// finishClassInstance fills layout's members (inline for primitive-typed
// ones, via a recursive readValue for everything else), registers the
// resulting instance under objectID, and returns it.
func (d *Dispatcher) finishClassInstance(objectID int32, layout *ClassLayout) (*Value, error) {
	members := make([]Member, len(layout.MemberNames))
	for i, name := range layout.MemberNames {
		var mv *Value
		var err error
		if layout.MemberTypes != nil {
			mv, err = d.readMemberValue(layout.MemberTypes[i])
		} else {
			mv, err = d.readValue()
		}
		if err != nil {
			return nil, err
		}
		members[i] = Member{Name: name, Value: mv}
	}
	if d.pendingNulls != 0 {
		leftover := d.pendingNulls
		d.pendingNulls = 0
		return nil, errorf("null run overflows member list of length %d by %d", len(layout.MemberNames), leftover)
	}
	inst := &ClassInstance{
		ObjectID:    objectID,
		Name:        layout.Name,
		LibraryID:   layout.LibraryID,
		LibraryName: layout.LibraryName,
		Members:     members,
	}
	v := &Value{Kind: KindClassInstance, Class: inst}
	if err := d.objects.Register(d.r.Offset(), objectID, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Dispatcher) readSystemClassWithMembers() (*Value, error) {
	info, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	layout := &ClassLayout{ObjectID: info.ObjectID, Name: info.Name, MemberNames: info.MemberNames}
	if err := d.classes.Register(d.r.Offset(), layout); err != nil {
		return nil, err
	}
	return d.finishClassInstance(info.ObjectID, layout)
}

func (d *Dispatcher) readClassWithMembers() (*Value, error) {
	info, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	libID, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	libName, err := d.libs.Lookup(d.r.Offset(), libID)
	if err != nil {
		return nil, err
	}
	layout := &ClassLayout{ObjectID: info.ObjectID, Name: info.Name, LibraryID: libID, LibraryName: libName, MemberNames: info.MemberNames}
	if err := d.classes.Register(d.r.Offset(), layout); err != nil {
		return nil, err
	}
	return d.finishClassInstance(info.ObjectID, layout)
}

func (d *Dispatcher) readSystemClassWithMembersAndTypes() (*Value, error) {
	info, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	types, err := d.typeDesc.ParseDescriptors(len(info.MemberNames))
	if err != nil {
		return nil, err
	}
	layout := &ClassLayout{ObjectID: info.ObjectID, Name: info.Name, MemberNames: info.MemberNames, MemberTypes: types}
	if err := d.classes.Register(d.r.Offset(), layout); err != nil {
		return nil, err
	}
	return d.finishClassInstance(info.ObjectID, layout)
}

func (d *Dispatcher) readClassWithMembersAndTypes() (*Value, error) {
	info, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	types, err := d.typeDesc.ParseDescriptors(len(info.MemberNames))
	if err != nil {
		return nil, err
	}
	libID, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	libName, err := d.libs.Lookup(d.r.Offset(), libID)
	if err != nil {
		return nil, err
	}
	layout := &ClassLayout{ObjectID: info.ObjectID, Name: info.Name, LibraryID: libID, LibraryName: libName, MemberNames: info.MemberNames, MemberTypes: types}
	if err := d.classes.Register(d.r.Offset(), layout); err != nil {
		return nil, err
	}
	return d.finishClassInstance(info.ObjectID, layout)
}

func (d *Dispatcher) readClassWithId() (*Value, error) {
	objectID, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	metadataID, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	layout, err := d.classes.Lookup(d.r.Offset(), metadataID)
	if err != nil {
		return nil, err
	}
	return d.finishClassInstance(objectID, layout)
}

func (d *Dispatcher) readArrayElements(n int32, elemType MemberTypeInfo) ([]*Value, error) {
	if n < 0 || int64(n) > maxCollectionLen {
		return nil, errorf("array length %d out of range", n)
	}
	elems := make([]*Value, n)
	for i := int32(0); i < n; i++ {
		var v *Value
		var err error
		if elemType.Type == BinaryTypePrimitive {
			v, err = d.prim.Decode(elemType.Primitive)
		} else {
			v, err = d.readValue()
		}
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	if d.pendingNulls != 0 {
		leftover := d.pendingNulls
		d.pendingNulls = 0
		return nil, errorf("null run overflows array of length %d by %d", n, leftover)
	}
	return elems, nil
}

func (d *Dispatcher) readArraySinglePrimitive() (*Value, error) {
	id, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	length, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	tag, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	pt := PrimitiveType(tag)
	if pt < PrimitiveBoolean || pt > PrimitiveString || pt == PrimitiveNull || pt == PrimitiveString {
		return nil, errInvalidPrimitiveCode(d.r.Offset()-1, tag)
	}
	elems, err := d.readArrayElements(length, MemberTypeInfo{Type: BinaryTypePrimitive, Primitive: pt})
	if err != nil {
		return nil, err
	}
	v := &Value{Kind: KindArray, Array: &ArrayValue{ObjectID: id, Elements: elems}}
	if err := d.objects.Register(d.r.Offset(), id, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Dispatcher) readArraySingleObjectLike() (*Value, error) {
	id, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	length, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	elems, err := d.readArrayElements(length, MemberTypeInfo{Type: BinaryTypeObject})
	if err != nil {
		return nil, err
	}
	v := &Value{Kind: KindArray, Array: &ArrayValue{ObjectID: id, Elements: elems}}
	if err := d.objects.Register(d.r.Offset(), id, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Dispatcher) readArraySingleObject() (*Value, error) { return d.readArraySingleObjectLike() }
func (d *Dispatcher) readArraySingleString() (*Value, error) { return d.readArraySingleObjectLike() }

// readBinaryArray handles the general BinaryArray record. Single, Jagged,
// and Rectangular are supported at rank 1, where length_per_dim collapses to
// a single length and the wire shape is identical to Single; any Offset
// variant or rank > 1 is rejected with UnsupportedArrayShape.
func (d *Dispatcher) readBinaryArray() (*Value, error) {
	id, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	shapeTag, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	shape := BinaryArrayType(shapeTag)
	rank, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	isOffset := shape == ArrayTypeSingleOffset || shape == ArrayTypeJaggedOffset || shape == ArrayTypeRectangularOffset
	supportedShape := shape == ArrayTypeSingle || shape == ArrayTypeJagged || shape == ArrayTypeRectangular
	if isOffset || !supportedShape || rank != 1 {
		return nil, errUnsupportedArrayShape(d.r.Offset(), shape, rank)
	}
	length, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	elemType, err := d.typeDesc.ParseElementType()
	if err != nil {
		return nil, err
	}
	elems, err := d.readArrayElements(length, elemType)
	if err != nil {
		return nil, err
	}
	v := &Value{Kind: KindArray, Array: &ArrayValue{ObjectID: id, Elements: elems}}
	if err := d.objects.Register(d.r.Offset(), id, v); err != nil {
		return nil, err
	}
	return v, nil
}

// readStringValueWithCode reads the StringValueWithCode shape used inside
// MethodCall/MethodReturn records: either an inline String primitive or a
// MemberReference to one registered earlier.
func (d *Dispatcher) readStringValueWithCode() (*Value, error) {
	tag, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	if RecordType(tag) == RecordMemberReference {
		id, err := d.r.ReadI32LE()
		if err != nil {
			return nil, err
		}
		return referenceValue(id), nil
	}
	pt := PrimitiveType(tag)
	if pt != PrimitiveString {
		return nil, errUnexpectedBinaryType(d.r.Offset()-1, tag)
	}
	s, err := d.r.ReadLengthPrefixedString()
	if err != nil {
		return nil, err
	}
	return stringValue(s), nil
}

// readArrayOfValueWithCode reads the heterogeneous tagged-value array used
// for MethodCall/MethodReturn argument and generic-type-argument lists.
func (d *Dispatcher) readArrayOfValueWithCode() ([]*Value, error) {
	n, err := d.r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	if n < 0 || int64(n) > maxCollectionLen {
		return nil, errorf("value-with-code array length %d out of range", n)
	}
	vals := make([]*Value, n)
	for i := range vals {
		tag, err := d.r.ReadU8()
		if err != nil {
			return nil, err
		}
		v, err := d.prim.Decode(PrimitiveType(tag))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// readMethodCall and readMethodReturn decode MethodCall/MethodReturn per the
// message-flag-gated fields [MS-NRBF] §2.2.3 defines. Flag combinations this
// core does not model (method signatures, generic type parameters beyond the
// single array this reads, properties) are ignored: the fields they describe
// are not read here, and any record that follows is decoded by the caller's
// next readValue as an independent value.
func (d *Dispatcher) readMethodCall() (*Value, error) {
	flags, err := d.r.ReadU32LE()
	if err != nil {
		return nil, err
	}
	var members []Member
	methodName, err := d.readStringValueWithCode()
	if err != nil {
		return nil, err
	}
	members = append(members, Member{Name: "MethodName", Value: methodName})
	typeName, err := d.readStringValueWithCode()
	if err != nil {
		return nil, err
	}
	members = append(members, Member{Name: "TypeName", Value: typeName})
	if flags&messageFlagNoContext == 0 && flags&messageFlagContextInline != 0 {
		ctx, err := d.readStringValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "CallContext", Value: ctx})
	}
	if flags&messageFlagNoArgs == 0 && flags&messageFlagArgsInline != 0 {
		args, err := d.readArrayOfValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "Args", Value: &Value{Kind: KindArray, Array: &ArrayValue{Elements: args}}})
	}
	if flags&messageFlagGenericMethod != 0 {
		generics, err := d.readArrayOfValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "GenericArgs", Value: &Value{Kind: KindArray, Array: &ArrayValue{Elements: generics}}})
	}
	return &Value{Kind: KindClassInstance, Class: &ClassInstance{Name: "System.Runtime.Remoting.Messaging.MethodCall", Members: members}}, nil
}

func (d *Dispatcher) readMethodReturn() (*Value, error) {
	flags, err := d.r.ReadU32LE()
	if err != nil {
		return nil, err
	}
	var members []Member
	if flags&messageFlagNoReturnValue == 0 && flags&messageFlagReturnValueInline != 0 {
		ret, err := d.readStringValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "ReturnValue", Value: ret})
	}
	if flags&messageFlagExceptionInArray != 0 {
		exc, err := d.readArrayOfValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "Exception", Value: &Value{Kind: KindArray, Array: &ArrayValue{Elements: exc}}})
	}
	if flags&messageFlagNoContext == 0 && flags&messageFlagContextInline != 0 {
		ctx, err := d.readStringValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "CallContext", Value: ctx})
	}
	if flags&messageFlagNoArgs == 0 && flags&messageFlagArgsInline != 0 {
		args, err := d.readArrayOfValueWithCode()
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: "Args", Value: &Value{Kind: KindArray, Array: &ArrayValue{Elements: args}}})
	}
	return &Value{Kind: KindClassInstance, Class: &ClassInstance{Name: "System.Runtime.Remoting.Messaging.MethodReturn", Members: members}}, nil
}
