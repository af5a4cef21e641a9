package od

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Object is implemented by the three kinds of OD objects :
//   - [*Variable] for VAR and DOMAIN objects
//   - [*Record] for RECORD objects
//   - [*Array] for ARRAY objects
//
// No other type implements it, so a type switch over these
// three cases is exhaustive.
type Object interface {
	objectType() uint8
}

// An Entry object is the main building block of an [ObjectDictionary].
// it holds an OD entry, i.e. an OD object at a specific index.
type Entry struct {
	// The OD index e.g. x1006
	Index uint16
	// The OD name inside of EDS
	Name string
	// The OD object type, one of ObjectTypeVAR, ObjectTypeDOMAIN,
	// ObjectTypeARRAY or ObjectTypeRECORD
	ObjectType uint8
	// Either a [Variable], a [Record] or an [Array]
	Object Object
	logger *logrus.Entry
}

// NewEntry creates a new entry, the index is propagated to every variable
// contained by object.
func NewEntry(logger *logrus.Entry, index uint16, name string, object Object, objectType uint8) *Entry {
	if logger == nil {
		logger = _logger
	}
	entry := &Entry{
		Index:      index,
		Name:       name,
		ObjectType: objectType,
		Object:     object,
		logger:     logger.WithField("index", fmt.Sprintf("x%x", index)),
	}
	for _, variable := range entry.variables() {
		variable.Index = index
	}
	return entry
}

// SubIndex returns the [Variable] at a given subindex.
// subindex can be a string, int, or uint8.
// When using a string it will try to find the subindex according to the OD naming.
func (entry *Entry) SubIndex(subIndex any) (*Variable, error) {
	if entry == nil {
		return nil, ErrIndexNotFound
	}
	var list *VariableList
	switch object := entry.Object.(type) {
	case *Variable:
		if subIndex != 0 && subIndex != uint8(0) && subIndex != "" {
			return nil, ErrSubNotExist
		}
		return object, nil
	case *Record:
		list = &object.VariableList
	case *Array:
		list = &object.VariableList
	default:
		return nil, ErrUnknownObjectType
	}

	switch sub := subIndex.(type) {
	case string:
		return list.GetSubObjectByName(sub)
	case int:
		if sub < 0 || sub > 255 {
			return nil, ErrSubNotExist
		}
		return list.GetSubObject(uint8(sub))
	case uint8:
		return list.GetSubObject(sub)
	default:
		return nil, ErrSubNotExist
	}
}

// addSubVariable adds a member to Entry, this is only possible for Record/Array objects
func (entry *Entry) addSubVariable(variable *Variable) error {
	variable.Index = entry.Index
	switch object := entry.Object.(type) {
	case *Record:
		object.AddVariable(variable)
	case *Array:
		object.AddVariable(variable)
	default:
		return fmt.Errorf("add member not supported for ObjectType : %v", entry.ObjectType)
	}
	entry.logger.Debugf("added sub-entry x%x %q", variable.SubIndex, variable.Name)
	return nil
}

// SubCount returns the number of sub entries inside entry.
// If entry is of VAR type it will return 1
func (entry *Entry) SubCount() int {
	switch object := entry.Object.(type) {
	case *Record:
		return object.SubCount()
	case *Array:
		return object.SubCount()
	default:
		return 1
	}
}

// variables returns every variable held by entry, in stored order
func (entry *Entry) variables() []*Variable {
	switch object := entry.Object.(type) {
	case *Variable:
		return []*Variable{object}
	case *Record:
		return object.Variables
	case *Array:
		return object.Variables
	default:
		return nil
	}
}

func (entry *Entry) String() string {
	return "x" + strconv.FormatUint(uint64(entry.Index), 16) + " " + entry.Name
}
