package cgen

import (
	"fmt"
	"io"

	"github.com/canopener/canopener/pkg/ctype"
	"github.com/canopener/canopener/pkg/od"
)

// IsMetadataSubIndex returns true for the sub-index holding the
// number of entries of a RECORD or ARRAY. It does not get a
// struct member nor macros.
func IsMetadataSubIndex(subIndex uint8) bool {
	return subIndex == 0
}

// IsWritableAccess returns true if a member with the given EDS access
// type gets filled with its default value, i.e. it is "wo" or "rw".
// Any other tag, including "rwr" and "rww", is left untouched.
func IsWritableAccess(accessType string) bool {
	switch MacroToken(accessType) {
	case "WO", "RW":
		return true
	default:
		return false
	}
}

// headerWriter keeps the first write error, following writes are dropped
type headerWriter struct {
	w   io.Writer
	err error
}

func (hw *headerWriter) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

// emitter writes the block of a single OD entry
type emitter struct {
	*headerWriter
	device    string // macro form
	deviceLow string // identifier form
}

func newEmitter(hw *headerWriter, device string) *emitter {
	return &emitter{headerWriter: hw, device: MacroToken(device), deviceLow: IdentToken(device)}
}

// EmitEntry writes the macros, struct and fill function of entry to w.
// device is the device name used as a prefix for all identifiers.
func EmitEntry(w io.Writer, device string, entry *od.Entry) error {
	hw := &headerWriter{w: w}
	newEmitter(hw, device).entry(entry)
	return hw.err
}

func (e *emitter) entry(entry *od.Entry) {
	switch object := entry.Object.(type) {
	case *od.Variable:
		e.variable(entry, object)
	case *od.Record:
		e.list(entry, "Record", "record", "  ", "      ", object.Variables)
	case *od.Array:
		e.list(entry, "Array", "array", "   ", "       ", object.Variables)
	default:
		e.printf("/* Object 0x%04X: unsupported object type %v */\n", entry.Index, entry.ObjectType)
	}
	e.printf("\n")
}

func (e *emitter) structName(entry *od.Entry) string {
	return fmt.Sprintf("%s_%04X_%s", e.deviceLow, entry.Index, IdentToken(entry.Name))
}

func (e *emitter) fillHeader(entry *od.Entry) {
	structName := e.structName(entry)
	e.printf("\n/* Inline function to fill the structure %s\n * with the default writeable values from the DCF file. */\n", structName)
	e.printf("static inline void %s_%04X_fill_with_default(struct %s* p) {\n", e.deviceLow, entry.Index, structName)
}

func (e *emitter) variable(entry *od.Entry, variable *od.Variable) {
	name := MacroToken(entry.Name)

	// Definitions
	e.printf("/* Object 0x%04X (Variable): %s */\n", entry.Index, entry.Name)
	e.printf("#define %s_%s_INDEX    %s\n", e.device, name, FormatValue(uint64(entry.Index)))
	e.printf("#define %s_%s_SUBINDEX %d\n", e.device, name, variable.SubIndex)
	e.printf("#define %s_%s_SIZE     %s\n", e.device, name, SizeExpr(variable))
	e.printf("#define %s_%04X_DESCRIPTION        \"%s\"\n", e.device, entry.Index, entry.Name)
	e.printf("#define %s_%04X_DATA_TYPE          %s\n", e.device, entry.Index, ctype.CType(variable.DataType))
	e.printf("#define %s_%04X_DATA_VALUE         %s\n", e.device, entry.Index, FormatValue(variable.Value))

	// Structure
	e.printf("\n/* Represents variable at index 0x%04X */\n", entry.Index)
	e.printf("struct %s {\n", e.structName(entry))
	e.printf("    /* %s: %s access. */\n", entry.Name, MacroToken(variable.AccessType))
	e.printf("    %s value;\n", ctype.CType(variable.DataType))
	e.printf("};\n")

	// Fill function, a variable is always assigned
	e.fillHeader(entry)
	e.printf("    p->value = %s_%04X_DATA_VALUE;\n", e.device, entry.Index)
	e.printf("}\n")
}

// list writes a RECORD or ARRAY, pad1 and pad2 align the index
// and description macros
func (e *emitter) list(entry *od.Entry, kind string, kindLow string, pad1 string, pad2 string, variables []*od.Variable) {
	members := make([]*od.Variable, 0, len(variables))
	for _, variable := range variables {
		if !IsMetadataSubIndex(variable.SubIndex) {
			members = append(members, variable)
		}
	}

	// Definitions
	e.printf("/* Object 0x%04X (%s): %s */\n", entry.Index, kind, entry.Name)
	e.printf("#define %s_%s_INDEX%s%s\n", e.device, MacroToken(entry.Name), pad1, FormatValue(uint64(entry.Index)))
	e.printf("#define %s_%04X_DESCRIPTION%s\"%s\"\n", e.device, entry.Index, pad2, entry.Name)
	for _, member := range members {
		e.memberMacros(entry.Index, member)
	}

	// Structure
	e.printf("\n/* Represents %s at index 0x%04X */\n", kindLow, entry.Index)
	e.printf("struct %s {\n", e.structName(entry))
	for _, member := range members {
		e.printf("    /* %s: %s access. (Index %04X: subindex %d) */\n",
			member.Name, MacroToken(member.AccessType), entry.Index, member.SubIndex)
		e.printf("    %s %s;\n", ctype.CType(member.DataType), memberName(member))
	}
	e.printf("};\n")

	// Fill function, read only members are left untouched
	e.fillHeader(entry)
	for _, member := range members {
		if IsWritableAccess(member.AccessType) {
			e.printf("    p->%s = %s_%04X_%d_DATA_VALUE;\n", memberName(member), e.device, entry.Index, member.SubIndex)
		} else {
			e.printf("    /* Nothing to set for %s as it's a %s member. */\n", memberName(member), MacroToken(member.AccessType))
		}
	}
	e.printf("}\n")
}

func (e *emitter) memberMacros(index uint16, member *od.Variable) {
	prefix := fmt.Sprintf("%s_%04X_%d", e.device, index, member.SubIndex)
	e.printf("/* %s */\n", member.Name)
	e.printf("#define %s_DESCRIPTION  \"%s\"\n", prefix, member.Name)
	e.printf("#define %s_SUBINDEX     %d\n", prefix, member.SubIndex)
	e.printf("#define %s_DATA_TYPE    %s\n", prefix, ctype.CType(member.DataType))
	e.printf("#define %s_SIZE         %s\n", prefix, SizeExpr(member))
	e.printf("#define %s_DATA_VALUE   %s\n", prefix, FormatValue(member.Value))
}

func memberName(member *od.Variable) string {
	return fmt.Sprintf("s%d_%s", member.SubIndex, IdentToken(member.Name))
}
