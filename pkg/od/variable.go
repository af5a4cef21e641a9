package od

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Variable is the main data representation for a value stored inside of OD.
// It is used to store a "VAR" or "DOMAIN" object type as well as
// any sub entry of a "RECORD" or "ARRAY" object type.
type Variable struct {
	// The OD index this variable belongs to
	Index uint16
	// The subindex for this variable if part of an ARRAY or RECORD
	SubIndex uint8
	// Name of this variable (ParameterName)
	Name string
	// The CiA 301 data type of this variable
	DataType uint8
	// Raw access type as written in the EDS e.g. "ro", "rw", "const"
	AccessType string
	// Variable is mappable into a PDO
	PDOMapping bool
	// Raw "DefaultValue" string
	DefaultValue string
	// Raw "ParameterValue" string, only present inside of a DCF
	ParameterValue string
	// Raw limits, kept for export
	LowLimit  string
	HighLimit string
	// Value is the decoded value of this variable. It is nil if
	// no value was given. Otherwise it is one of int64, uint64,
	// float32, float64, string or []byte depending on DataType.
	Value any
}

func (*Variable) objectType() uint8 { return ObjectTypeVAR }

// NewVariable creates a variable and decodes value with respect
// to the given datatype. An empty value is stored as nil.
func NewVariable(
	subindex uint8,
	name string,
	datatype uint8,
	accessType string,
	value string,
) (*Variable, error) {
	decoded, err := DecodeFromString(value, datatype, 0)
	if err != nil {
		return nil, err
	}
	return &Variable{
		SubIndex:     subindex,
		Name:         name,
		DataType:     datatype,
		AccessType:   accessType,
		DefaultValue: value,
		Value:        decoded,
	}, nil
}

// HasValue returns true if a default or parameter value was decoded
func (variable *Variable) HasValue() bool {
	return variable.Value != nil
}

// DecodeFromString decodes a value from EDS respecting canopen datatype.
// offset is added to integer values, it is used for $NODEID relative values.
// An empty string decodes to nil for every type except strings.
func DecodeFromString(value string, datatype uint8, offset uint8) (any, error) {
	switch datatype {
	case VISIBLE_STRING, UNICODE_STRING:
		return value, nil
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	switch datatype {
	case OCTET_STRING, DOMAIN:
		decoded, err := hex.DecodeString(strings.ReplaceAll(value, " ", ""))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hex string %q", value)
		}
		return decoded, nil

	case REAL32:
		parsed, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, err
		}
		return float32(parsed), nil

	case REAL64:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		return parsed, nil

	case INTEGER8, INTEGER16, INTEGER24, INTEGER32,
		INTEGER40, INTEGER48, INTEGER56, INTEGER64:
		parsed, err := strconv.ParseInt(value, 0, signedBits(datatype))
		if err != nil {
			return nil, err
		}
		return parsed + int64(offset), nil

	default:
		// Unsigned, boolean, time and any other code are integer values
		parsed, err := strconv.ParseUint(value, 0, unsignedBits(datatype))
		if err != nil {
			// Some tools write negative values for unsigned entries
			if !strings.HasPrefix(value, "-") {
				return nil, err
			}
			signed, errSigned := strconv.ParseInt(value, 0, unsignedBits(datatype))
			if errSigned != nil {
				return nil, err
			}
			return signed + int64(offset), nil
		}
		return parsed + uint64(offset), nil
	}
}

func unsignedBits(datatype uint8) int {
	switch datatype {
	case BOOLEAN, UNSIGNED8:
		return 8
	case UNSIGNED16:
		return 16
	case UNSIGNED24:
		return 24
	case UNSIGNED32:
		return 32
	case UNSIGNED40:
		return 40
	case UNSIGNED48, TIME_OF_DAY, TIME_DIFFERENCE:
		return 48
	case UNSIGNED56:
		return 56
	default:
		return 64
	}
}

func signedBits(datatype uint8) int {
	switch datatype {
	case INTEGER8:
		return 8
	case INTEGER16:
		return 16
	case INTEGER24:
		return 24
	case INTEGER32:
		return 32
	case INTEGER40:
		return 40
	case INTEGER48:
		return 48
	case INTEGER56:
		return 56
	default:
		return 64
	}
}

// Remove "$NODEID" from given string, as well as
// one adjoining '+' sign. Spaces are removed first,
// e.g. "$NODEID + 0x180" => "0x180"
func removeNodeID(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	b := make([]byte, 0, len(s))

	i := 0
	for i < len(s) {
		if s[i] == '$' && len(s) > i+6 && strings.EqualFold(s[i:i+7], "$NODEID") {
			i += 7
			// Skip optional '+' after "$NODEID"
			if i < len(s) && s[i] == '+' {
				i++
			}
			// Skip optional '+' before "$NODEID"
			if len(b) > 0 && b[len(b)-1] == '+' {
				b = b[:len(b)-1]
			}
			continue
		}
		b = append(b, s[i])
		i++
	}
	return string(b)
}

func containsNodeID(s string) bool {
	return strings.Contains(strings.ToUpper(s), "$NODEID")
}
