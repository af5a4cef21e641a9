package od

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"
)

// ExportEDS writes OD back as an EDS, in entry order.
// Raw values are exported so that $NODEID relative values are kept as is.
// The created file is not 100% compliant with CiA (no [FileInfo] or
// [DeviceInfo] sections) but it can be parsed back with [Parse].
func ExportEDS(odict *ObjectDictionary, w io.Writer) error {
	eds := ini.Empty(loadOptions)

	for _, entry := range odict.Entries() {
		sectionName := strings.ToUpper(strconv.FormatUint(uint64(entry.Index), 16))
		sectionName = strings.Repeat("0", 4-len(sectionName)) + sectionName
		section, err := eds.NewSection(sectionName)
		if err != nil {
			return err
		}

		switch object := entry.Object.(type) {
		case *Variable:
			err = populateSection(section, object, entry.ObjectType)
		case *Record:
			err = populateList(eds, section, entry, &object.VariableList)
		case *Array:
			err = populateList(eds, section, entry, &object.VariableList)
		default:
			err = ErrUnknownObjectType
		}
		if err != nil {
			return errors.Wrapf(err, "[OD] error populating section %v", entry)
		}
	}
	_, err := eds.WriteTo(w)
	return err
}

func populateList(eds *ini.File, header *ini.Section, entry *Entry, list *VariableList) error {
	err := populateHeaderSection(header, entry.Name, entry.ObjectType, uint8(list.SubCount()))
	if err != nil {
		return err
	}
	// Add all subsections, ordered
	for _, variable := range list.Variables {
		section, err := eds.NewSection(header.Name() + "sub" + strings.ToUpper(strconv.FormatUint(uint64(variable.SubIndex), 16)))
		if err != nil {
			return err
		}
		if err := populateSection(section, variable, ObjectTypeVAR); err != nil {
			return err
		}
	}
	return nil
}

// Populate section with relevant information for a variable type
func populateSection(section *ini.Section, variable *Variable, objectType uint8) error {
	keys := [][2]string{
		{"ParameterName", variable.Name},
		{"ObjectType", "0x" + strconv.FormatUint(uint64(objectType), 16)},
		{"DataType", "0x" + strings.ToUpper(strconv.FormatUint(uint64(variable.DataType), 16))},
		{"AccessType", variable.AccessType},
		{"PDOMapping", boolToString(variable.PDOMapping)},
	}
	if variable.LowLimit != "" {
		keys = append(keys, [2]string{"LowLimit", variable.LowLimit})
	}
	if variable.HighLimit != "" {
		keys = append(keys, [2]string{"HighLimit", variable.HighLimit})
	}
	keys = append(keys, [2]string{"DefaultValue", variable.DefaultValue})
	if variable.ParameterValue != "" {
		keys = append(keys, [2]string{"ParameterValue", variable.ParameterValue})
	}
	for _, kv := range keys {
		if _, err := section.NewKey(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Populate section with relevant information for beginning of RECORD/ARRAY type.
// Special section for multi sub entries
// e.g.
// [1A03]
// ParameterName=TPDO mapping parameter
// ObjectType=0x9
// SubNumber=0x9
func populateHeaderSection(section *ini.Section, name string, objectType uint8, count uint8) error {
	_, err := section.NewKey("ParameterName", name)
	if err != nil {
		return err
	}
	_, err = section.NewKey("ObjectType", "0x"+strconv.FormatUint(uint64(objectType), 16))
	if err != nil {
		return err
	}
	_, err = section.NewKey("SubNumber", "0x"+strconv.FormatUint(uint64(count), 16))
	return err
}

func boolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
