package classfile

import "github.com/cherrygraph/cherry/model"

// Invocation opcodes, JVMS §6.5.
const (
	opInvokeVirtual   = 0xB6
	opInvokeSpecial   = 0xB7
	opInvokeStatic    = 0xB8
	opInvokeInterface = 0xB9
	opInvokeDynamic   = 0xBA
)

// fixedLength gives the total instruction length (opcode byte included) for
// every opcode whose operand size doesn't depend on its position in the
// code array. tableswitch, lookupswitch, and wide are handled separately by
// skipTableSwitch, skipLookupSwitch, and skipWide since their length depends
// on alignment padding or the following opcode.
var fixedLength = map[byte]int{
	0x00: 1, 0x01: 1, 0x02: 1, 0x03: 1, 0x04: 1, 0x05: 1, 0x06: 1, 0x07: 1, 0x08: 1, 0x09: 1,
	0x0a: 1, 0x0b: 1, 0x0c: 1, 0x0d: 1, 0x0e: 1, 0x0f: 1,
	0x10: 2, 0x11: 3, 0x12: 2, 0x13: 3, 0x14: 3,
	0x15: 2, 0x16: 2, 0x17: 2, 0x18: 2, 0x19: 2,
	0x1a: 1, 0x1b: 1, 0x1c: 1, 0x1d: 1, 0x1e: 1, 0x1f: 1, 0x20: 1, 0x21: 1, 0x22: 1, 0x23: 1,
	0x24: 1, 0x25: 1, 0x26: 1, 0x27: 1, 0x28: 1, 0x29: 1, 0x2a: 1, 0x2b: 1, 0x2c: 1, 0x2d: 1,
	0x2e: 1, 0x2f: 1, 0x30: 1, 0x31: 1, 0x32: 1, 0x33: 1, 0x34: 1, 0x35: 1,
	0x36: 2, 0x37: 2, 0x38: 2, 0x39: 2, 0x3a: 2,
	0x3b: 1, 0x3c: 1, 0x3d: 1, 0x3e: 1, 0x3f: 1, 0x40: 1, 0x41: 1, 0x42: 1, 0x43: 1, 0x44: 1,
	0x45: 1, 0x46: 1, 0x47: 1, 0x48: 1, 0x49: 1, 0x4a: 1, 0x4b: 1, 0x4c: 1, 0x4d: 1, 0x4e: 1,
	0x4f: 1, 0x50: 1, 0x51: 1, 0x52: 1, 0x53: 1, 0x54: 1, 0x55: 1, 0x56: 1, 0x57: 1, 0x58: 1,
	0x59: 1, 0x5a: 1, 0x5b: 1, 0x5c: 1, 0x5d: 1, 0x5e: 1, 0x5f: 1, 0x60: 1, 0x61: 1, 0x62: 1,
	0x63: 1, 0x64: 1, 0x65: 1, 0x66: 1, 0x67: 1, 0x68: 1, 0x69: 1, 0x6a: 1, 0x6b: 1, 0x6c: 1,
	0x6d: 1, 0x6e: 1, 0x6f: 1, 0x70: 1, 0x71: 1, 0x72: 1, 0x73: 1, 0x74: 1, 0x75: 1, 0x76: 1,
	0x77: 1, 0x78: 1, 0x79: 1, 0x7a: 1, 0x7b: 1, 0x7c: 1, 0x7d: 1, 0x7e: 1, 0x7f: 1, 0x80: 1,
	0x81: 1, 0x82: 1, 0x83: 1, 0x84: 3, 0x85: 1, 0x86: 1, 0x87: 1, 0x88: 1, 0x89: 1, 0x8a: 1,
	0x8b: 1, 0x8c: 1, 0x8d: 1, 0x8e: 1, 0x8f: 1, 0x90: 1, 0x91: 1, 0x92: 1, 0x93: 1, 0x94: 1,
	0x95: 1, 0x96: 1, 0x97: 1, 0x98: 1,
	0x99: 3, 0x9a: 3, 0x9b: 3, 0x9c: 3, 0x9d: 3, 0x9e: 3, 0x9f: 3, 0xa0: 3, 0xa1: 3, 0xa2: 3,
	0xa3: 3, 0xa4: 3, 0xa5: 3, 0xa6: 3, 0xa7: 3, 0xa8: 3,
	0xa9: 2,
	// 0xaa tableswitch, 0xab lookupswitch: variable length
	0xac: 1, 0xad: 1, 0xae: 1, 0xaf: 1, 0xb0: 1, 0xb1: 1,
	0xb2: 3, 0xb3: 3, 0xb4: 3, 0xb5: 3,
	opInvokeVirtual: 3, opInvokeSpecial: 3, opInvokeStatic: 3,
	opInvokeInterface: 5, opInvokeDynamic: 5,
	0xbb: 3, 0xbc: 2, 0xbd: 3, 0xbe: 1, 0xbf: 1,
	0xc0: 3, 0xc1: 3,
	// 0xc2, 0xc3 monitorenter/exit: 1
	0xc2: 1, 0xc3: 1,
	// 0xc4 wide: variable length
	0xc5: 4, // multianewarray
	0xc6: 3, 0xc7: 3, // ifnull, ifnonnull
	0xc8: 5, 0xc9: 5, // goto_w, jsr_w
}

// scanCallSites walks a method's Code attribute bytes and extracts one
// CallSite per invocation instruction, preserving bytecode order (which the
// worklist-driven constructor relies on for deterministic edge ordering).
func scanCallSites(cp *constantPool, code []byte) []model.CallSite {
	var sites []model.CallSite
	i := 0
	for i < len(code) {
		op := code[i]
		switch op {
		case opInvokeVirtual, opInvokeSpecial, opInvokeStatic, opInvokeInterface:
			if i+3 > len(code) {
				i = len(code)
				break
			}
			index := uint16(code[i+1])<<8 | uint16(code[i+2])
			owner, name, desc, ok := cp.memberRefAt(index)
			if ok {
				sites = append(sites, model.CallSite{
					Kind:           dispatchKindOf(op),
					DeclaredTarget: model.MethodRef{OwnerFQN: internalToFQN(owner), Name: name, Descriptor: desc},
					BytecodeOffset: i,
				})
			}
			i += fixedLength[op]
		case 0xaa: // tableswitch
			i = skipTableSwitch(code, i)
		case 0xab: // lookupswitch
			i = skipLookupSwitch(code, i)
		case 0xc4: // wide
			i = skipWide(code, i)
		default:
			n, ok := fixedLength[op]
			if !ok || n == 0 {
				i = len(code) // unknown opcode: stop scanning this body defensively
				break
			}
			i += n
		}
	}
	return sites
}

func dispatchKindOf(op byte) model.DispatchKind {
	switch op {
	case opInvokeVirtual:
		return model.Virtual
	case opInvokeSpecial:
		return model.Special
	case opInvokeStatic:
		return model.Static
	case opInvokeInterface:
		return model.Interface
	default:
		return model.Virtual
	}
}

// padTo4 returns the index of the first 4-byte-aligned position at or after
// the byte following the opcode at i, per JVMS §6.5 tableswitch/lookupswitch.
func padTo4(i int) int {
	operandStart := i + 1
	pad := (4 - operandStart%4) % 4
	return operandStart + pad
}

func skipTableSwitch(code []byte, i int) int {
	p := padTo4(i)
	if p+12 > len(code) {
		return len(code)
	}
	low := int32(be32(code[p+4:]))
	high := int32(be32(code[p+8:]))
	p += 12
	n := int(high-low) + 1
	if n < 0 {
		return len(code)
	}
	p += n * 4
	if p > len(code) {
		return len(code)
	}
	return p
}

func skipLookupSwitch(code []byte, i int) int {
	p := padTo4(i)
	if p+8 > len(code) {
		return len(code)
	}
	npairs := int(be32(code[p+4:]))
	p += 8
	if npairs < 0 {
		return len(code)
	}
	p += npairs * 8
	if p > len(code) {
		return len(code)
	}
	return p
}

func skipWide(code []byte, i int) int {
	if i+2 > len(code) {
		return len(code)
	}
	modified := code[i+1]
	if modified == 0x84 { // iinc
		return i + 6
	}
	return i + 4
}

func be32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// internalToFQN converts a JVM internal class name ("java/lang/Object") to
// the dotted FQN form used throughout model/hierarchy/filter. Array
// descriptors ("[Ljava/lang/String;") get the same '/'-to-'.' replacement;
// they never name a real loaded class, so they only ever end up as
// unresolved references.
func internalToFQN(internal string) string {
	out := make([]byte, len(internal))
	for i := 0; i < len(internal); i++ {
		if internal[i] == '/' {
			out[i] = '.'
		} else {
			out[i] = internal[i]
		}
	}
	return string(out)
}
