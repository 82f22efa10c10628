// Package classfile parses compiled JVM class files (JVMS chapter 4) into
// the model.ClassDecl shape the rest of the analyzer consumes. It is the
// mechanics beneath the Bytecode Loader (spec.md §4.2); analysis.Facade
// calls Parse for every unit the Input Enumerator yields.
package classfile

import "github.com/cherrygraph/cherry/model"

const classMagic = 0xCAFEBABE

// Parse reads one class file's raw bytes and returns the loaded
// model.ClassDecl. Any structural problem (bad magic, truncated pool, an
// out-of-range index) yields a wrapped ErrMalformed and a nil decl; the
// caller (analysis.Facade.Analyze) is responsible for turning that into a
// MalformedUnit warning and moving on, per spec.md §4.2/§7.
func Parse(data []byte) (*model.ClassDecl, error) {
	r := newByteReader(data)

	magic, ok := r.u4()
	if !ok || magic != classMagic {
		return nil, malformed("bad magic number")
	}
	if ok2 := skipVersion(r); !ok2 {
		return nil, malformed("truncated version")
	}

	cp, err := parseConstantPool(r)
	if err != nil {
		return nil, err
	}

	accessFlags, ok := r.u2()
	if !ok {
		return nil, malformed("truncated access flags")
	}
	thisClassIdx, ok := r.u2()
	if !ok {
		return nil, malformed("truncated this_class")
	}
	superClassIdx, ok := r.u2()
	if !ok {
		return nil, malformed("truncated super_class")
	}

	thisName, ok := cp.classNameAt(thisClassIdx)
	if !ok {
		return nil, malformed("this_class does not resolve to a CONSTANT_Class")
	}

	decl := &model.ClassDecl{
		FQN:  internalToFQN(thisName),
		Kind: classKindOf(int(accessFlags)),
	}

	if superClassIdx != 0 {
		superName, ok := cp.classNameAt(superClassIdx)
		if !ok {
			return nil, malformed("super_class does not resolve to a CONSTANT_Class")
		}
		decl.SuperFQN = internalToFQN(superName)
	}

	ifaceCount, ok := r.u2()
	if !ok {
		return nil, malformed("truncated interfaces_count")
	}
	for i := 0; i < int(ifaceCount); i++ {
		idx, ok := r.u2()
		if !ok {
			return nil, malformed("truncated interfaces")
		}
		name, ok := cp.classNameAt(idx)
		if !ok {
			return nil, malformed("interface entry does not resolve to a CONSTANT_Class")
		}
		decl.DirectlyImplemented = append(decl.DirectlyImplemented, internalToFQN(name))
	}

	// fields: parsed only to advance the cursor correctly (they carry no
	// call-graph-relevant information) and are otherwise discarded.
	if err := skipFields(r); err != nil {
		return nil, err
	}

	methods, err := parseMethods(r, cp, decl.FQN)
	if err != nil {
		return nil, err
	}
	decl.Methods = methods

	// trailing class attributes (SourceFile, InnerClasses, ...) are not
	// needed by anything downstream of the Bytecode Loader and are left
	// unparsed.

	return decl, nil
}

func skipVersion(r *byteReader) bool {
	_, ok1 := r.u2() // minor_version
	_, ok2 := r.u2() // major_version
	return ok1 && ok2
}

func classKindOf(flags int) model.ClassKind {
	switch {
	case flags&accInterface != 0:
		return model.Interface
	case flags&accAbstract != 0:
		return model.AbstractClass
	default:
		return model.Class
	}
}

func parseConstantPool(r *byteReader) (*constantPool, error) {
	count, ok := r.u2()
	if !ok {
		return nil, malformed("truncated constant_pool_count")
	}
	cp := &constantPool{entries: make([]cpEntry, count)}
	for i := 1; i < int(count); i++ {
		tag, ok := r.u1()
		if !ok {
			return nil, malformed("truncated constant pool entry tag")
		}
		switch tag {
		case tagUtf8:
			length, ok := r.u2()
			if !ok {
				return nil, malformed("truncated Utf8 length")
			}
			b, ok := r.bytes(int(length))
			if !ok {
				return nil, malformed("truncated Utf8 bytes")
			}
			cp.entries[i] = cpEntry{tag: tag, utf8: string(b)}
		case tagInteger, tagFloat:
			if !r.skip(4) {
				return nil, malformed("truncated 4-byte constant")
			}
			cp.entries[i] = cpEntry{tag: tag}
		case tagLong, tagDouble:
			if !r.skip(8) {
				return nil, malformed("truncated 8-byte constant")
			}
			cp.entries[i] = cpEntry{tag: tag}
			// long/double occupy two constant-pool slots, per JVMS §4.4.5.
			i++
		case tagClass, tagMethodType, tagModule, tagPackage:
			idx, ok := r.u2()
			if !ok {
				return nil, malformed("truncated Class-shaped constant")
			}
			cp.entries[i] = cpEntry{tag: tag, class: idx}
		case tagString:
			idx, ok := r.u2()
			if !ok {
				return nil, malformed("truncated String constant")
			}
			cp.entries[i] = cpEntry{tag: tag, class: idx}
		case tagFieldref, tagMethodref, tagInterfaceMethodref:
			classIdx, ok1 := r.u2()
			ntIdx, ok2 := r.u2()
			if !ok1 || !ok2 {
				return nil, malformed("truncated member ref")
			}
			cp.entries[i] = cpEntry{tag: tag, ref: memberRef{classIndex: classIdx, nameAndTypeIndex: ntIdx}}
		case tagNameAndType:
			nameIdx, ok1 := r.u2()
			descIdx, ok2 := r.u2()
			if !ok1 || !ok2 {
				return nil, malformed("truncated NameAndType")
			}
			cp.entries[i] = cpEntry{tag: tag, nameType: nameAndType{nameIndex: nameIdx, descIndex: descIdx}}
		case tagMethodHandle:
			if !r.skip(1) { // reference_kind
				return nil, malformed("truncated MethodHandle")
			}
			idx, ok := r.u2()
			if !ok {
				return nil, malformed("truncated MethodHandle reference")
			}
			cp.entries[i] = cpEntry{tag: tag, class: idx}
		case tagDynamic, tagInvokeDynamic:
			if !r.skip(2) { // bootstrap_method_attr_index
				return nil, malformed("truncated Dynamic constant")
			}
			idx, ok := r.u2()
			if !ok {
				return nil, malformed("truncated Dynamic NameAndType index")
			}
			cp.entries[i] = cpEntry{tag: tag, nameType: nameAndType{descIndex: idx}}
		default:
			return nil, malformed("unknown constant pool tag")
		}
	}
	return cp, nil
}

type attrInfo struct {
	nameIndex uint16
	data      []byte
}

func parseAttributes(r *byteReader) ([]attrInfo, error) {
	count, ok := r.u2()
	if !ok {
		return nil, malformed("truncated attributes_count")
	}
	attrs := make([]attrInfo, 0, count)
	for i := 0; i < int(count); i++ {
		nameIdx, ok := r.u2()
		if !ok {
			return nil, malformed("truncated attribute_name_index")
		}
		length, ok := r.u4()
		if !ok {
			return nil, malformed("truncated attribute_length")
		}
		data, ok := r.bytes(int(length))
		if !ok {
			return nil, malformed("truncated attribute data")
		}
		attrs = append(attrs, attrInfo{nameIndex: nameIdx, data: data})
	}
	return attrs, nil
}

func skipFields(r *byteReader) error {
	count, ok := r.u2()
	if !ok {
		return malformed("truncated fields_count")
	}
	for i := 0; i < int(count); i++ {
		if !r.skip(6) { // access_flags, name_index, descriptor_index
			return malformed("truncated field_info header")
		}
		if _, err := parseAttributes(r); err != nil {
			return err
		}
	}
	return nil
}

func parseMethods(r *byteReader, cp *constantPool, ownerFQN string) ([]model.MethodDecl, error) {
	count, ok := r.u2()
	if !ok {
		return nil, malformed("truncated methods_count")
	}
	methods := make([]model.MethodDecl, 0, count)
	for i := 0; i < int(count); i++ {
		flags, ok := r.u2()
		if !ok {
			return nil, malformed("truncated method access_flags")
		}
		nameIdx, ok := r.u2()
		if !ok {
			return nil, malformed("truncated method name_index")
		}
		descIdx, ok := r.u2()
		if !ok {
			return nil, malformed("truncated method descriptor_index")
		}
		attrs, err := parseAttributes(r)
		if err != nil {
			return nil, err
		}

		name, ok := cp.utf8At(nameIdx)
		if !ok {
			return nil, malformed("method name does not resolve to a Utf8")
		}
		desc, ok := cp.utf8At(descIdx)
		if !ok {
			return nil, malformed("method descriptor does not resolve to a Utf8")
		}

		isAbstract := flags&accMethodAbstract != 0
		isNative := flags&accNative != 0

		decl := model.MethodDecl{
			OwnerFQN:    ownerFQN,
			Name:        name,
			Descriptor:  desc,
			Visibility:  visibilityOf(int(flags)),
			IsStatic:    flags&accStatic != 0,
			IsAbstract:  isAbstract,
			IsSynthetic: flags&accSynthetic != 0,
		}

		if !isAbstract && !isNative {
			if code := findCodeAttribute(cp, attrs); code != nil {
				decl.CallSites = scanCallSites(cp, code)
			}
		}

		methods = append(methods, decl)
	}
	return methods, nil
}

// findCodeAttribute scans a method's attributes for "Code" and returns its
// instruction bytes, or nil if absent (abstract/native methods have none).
func findCodeAttribute(cp *constantPool, attrs []attrInfo) []byte {
	for _, a := range attrs {
		name, ok := cp.utf8At(a.nameIndex)
		if !ok || name != "Code" {
			continue
		}
		r := newByteReader(a.data)
		if !r.skip(4) { // max_stack, max_locals
			return nil
		}
		length, ok := r.u4()
		if !ok {
			return nil
		}
		code, ok := r.bytes(int(length))
		if !ok {
			return nil
		}
		return code
	}
	return nil
}
