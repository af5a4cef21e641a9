package od

// VariableList is the data representation for
// storing the sub entries of a "RECORD" or "ARRAY" object type.
// Sub entries are kept in the order they were added.
type VariableList struct {
	Variables         []*Variable
	subEntriesNameMap map[string]uint8
}

// Record is a RECORD object, a collection of heterogeneous sub entries
type Record struct {
	VariableList
}

// Array is an ARRAY object, a collection of homogeneous sub entries
type Array struct {
	VariableList
}

func (*Record) objectType() uint8 { return ObjectTypeRECORD }
func (*Array) objectType() uint8  { return ObjectTypeARRAY }

func NewRecord() *Record {
	return &Record{VariableList: newVariableList()}
}

func NewArray() *Array {
	return &Array{VariableList: newVariableList()}
}

func newVariableList() VariableList {
	return VariableList{Variables: make([]*Variable, 0), subEntriesNameMap: make(map[string]uint8)}
}

// GetSubObject returns the [Variable] corresponding to a given
// subindex.
func (rec *VariableList) GetSubObject(subindex uint8) (*Variable, error) {
	for _, variable := range rec.Variables {
		if variable.SubIndex == subindex {
			return variable, nil
		}
	}
	return nil, ErrSubNotExist
}

// GetSubObjectByName returns the [Variable] corresponding to a given
// subindex but by name
func (rec *VariableList) GetSubObjectByName(name string) (*Variable, error) {
	sub, ok := rec.subEntriesNameMap[name]
	if !ok {
		return nil, ErrSubNotExist
	}
	return rec.GetSubObject(sub)
}

// AddVariable adds an already built [Variable] to the list.
// A variable with the same subindex is replaced in place.
func (rec *VariableList) AddVariable(variable *Variable) {
	if rec.subEntriesNameMap == nil {
		rec.subEntriesNameMap = make(map[string]uint8)
	}
	rec.subEntriesNameMap[variable.Name] = variable.SubIndex
	for i, existing := range rec.Variables {
		if existing.SubIndex == variable.SubIndex {
			variable.Index = existing.Index
			_logger.Warnf("overwritting sub-entry x%x|x%x", variable.Index, variable.SubIndex)
			rec.Variables[i] = variable
			return
		}
	}
	rec.Variables = append(rec.Variables, variable)
}

// AddSubObject adds a [Variable] to the VariableList, the value
// is decoded according to datatype.
func (rec *VariableList) AddSubObject(
	subindex uint8,
	name string,
	datatype uint8,
	accessType string,
	value string,
) (*Variable, error) {
	variable, err := NewVariable(subindex, name, datatype, accessType, value)
	if err != nil {
		return nil, err
	}
	rec.AddVariable(variable)
	return variable, nil
}

// SubCount returns the number of sub entries
func (rec *VariableList) SubCount() int {
	return len(rec.Variables)
}
