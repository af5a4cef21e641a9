package od

import (
	"github.com/sirupsen/logrus"
)

var _logger = logrus.WithField("service", "[OD]")

// ObjectDictionary is used for storing all entries of a CANopen node
// according to CiA 301. This is the internal representation of an EDS file.
// Entries are kept in insertion order, which is the order of the EDS file.
type ObjectDictionary struct {
	logger              *logrus.Entry
	entries             []*Entry
	entriesByIndexValue map[uint16]*Entry
	entriesByIndexName  map[string]*Entry
}

func NewOD() *ObjectDictionary {
	return &ObjectDictionary{
		logger:              _logger,
		entries:             make([]*Entry, 0),
		entriesByIndexValue: make(map[uint16]*Entry),
		entriesByIndexName:  make(map[string]*Entry),
	}
}

// Add an entry to OD, any existing entry at the same index
// will be replaced in place
func (od *ObjectDictionary) addEntry(entry *Entry) {
	if existing, ok := od.entriesByIndexValue[entry.Index]; ok {
		entry.logger.Warn("overwritting entry")
		for i := range od.entries {
			if od.entries[i] == existing {
				od.entries[i] = entry
			}
		}
		delete(od.entriesByIndexName, existing.Name)
	} else {
		od.entries = append(od.entries, entry)
	}
	od.entriesByIndexValue[entry.Index] = entry
	od.entriesByIndexName[entry.Name] = entry
	entry.logger.Debugf("adding entry %v", ObjectTypeNames[entry.ObjectType])
}

// AddVariable adds an entry of type VAR to OD
func (od *ObjectDictionary) AddVariable(index uint16, variable *Variable) *Entry {
	entry := NewEntry(od.logger, index, variable.Name, variable, ObjectTypeVAR)
	od.addEntry(entry)
	return entry
}

// AddVariableType adds an entry of type VAR to OD
// the value should be given as a string e.g. 0x22 or 0x55555.
// If the variable already exists, it will be overwritten
func (od *ObjectDictionary) AddVariableType(
	index uint16,
	name string,
	datatype uint8,
	accessType string,
	value string,
) (*Entry, error) {
	variable, err := NewVariable(0, name, datatype, accessType, value)
	if err != nil {
		return nil, err
	}
	return od.AddVariable(index, variable), nil
}

// AddRecord adds an entry of type RECORD
func (od *ObjectDictionary) AddRecord(index uint16, name string, record *Record) *Entry {
	entry := NewEntry(od.logger, index, name, record, ObjectTypeRECORD)
	od.addEntry(entry)
	return entry
}

// AddArray adds an entry of type ARRAY
func (od *ObjectDictionary) AddArray(index uint16, name string, array *Array) *Entry {
	entry := NewEntry(od.logger, index, name, array, ObjectTypeARRAY)
	od.addEntry(entry)
	return entry
}

// Index returns an OD entry at the specified index.
// index can either be a string, int or uint16.
// This method does not return an error (for chaining with Subindex()) but instead returns
// nil if no corresponding [Entry] is found.
func (od *ObjectDictionary) Index(index any) *Entry {
	switch ind := index.(type) {
	case string:
		return od.entriesByIndexName[ind]
	case int:
		return od.entriesByIndexValue[uint16(ind)]
	case uint:
		return od.entriesByIndexValue[uint16(ind)]
	case uint16:
		return od.entriesByIndexValue[ind]
	default:
		return nil
	}
}

// Entries returns all entries, in insertion order
func (od *ObjectDictionary) Entries() []*Entry {
	return od.entries
}

// Len returns the number of entries inside of OD
func (od *ObjectDictionary) Len() int {
	return len(od.entries)
}
