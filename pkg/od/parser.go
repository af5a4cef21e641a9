package od

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"
)

// Get index & subindex matching
var matchIdxRegExp = regexp.MustCompile(`^[0-9A-Fa-f]{4}$`)
var matchSubidxRegExp = regexp.MustCompile(`^([0-9A-Fa-f]{4})(?i:sub)([0-9A-Fa-f]+)$`)

// Inline comments are handled by keyValue, '#' and ';' are
// valid inside of names and string values.
var loadOptions = ini.LoadOptions{
	KeyValueDelimiters:      "=",
	SkipUnrecognizableLines: true,
	IgnoreInlineComment:     true,
}

// Inline comment : a ';' preceded by at least one whitespace
var matchInlineComment = regexp.MustCompile(`\s;.*$`)

// Parse an EDS or DCF file.
// file can be either a path, an [io.Reader] or []byte.
// nodeId is used for resolving values relative to $NODEID.
// Anomalies inside of a single variable (unknown data type, malformed value)
// are logged and do not stop parsing.
func Parse(file any, nodeId uint8) (*ObjectDictionary, error) {
	od := NewOD()
	// Load .ini format
	edsFile, err := ini.LoadSources(loadOptions, file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load EDS")
	}

	// Iterate over all the sections, in file order
	for _, section := range edsFile.Sections() {
		sectionName := section.Name()

		// Match indexes : This adds new entries to the dictionary
		if matchIdxRegExp.MatchString(sectionName) {
			idx, err := strconv.ParseUint(sectionName, 16, 16)
			if err != nil {
				return nil, err
			}
			index := uint16(idx)
			name := keyValue(section, "ParameterName")

			// If no object type, default to 7 (CiA 306)
			objectType := ObjectTypeVAR
			if raw := keyValue(section, "ObjectType"); raw != "" {
				objType, err := strconv.ParseUint(raw, 0, 8)
				if err != nil {
					return nil, errors.Wrapf(err, "failed to parse 'ObjectType' for x%x", index)
				}
				objectType = uint8(objType)
			}

			// objectType determines what type of entry we should add to dictionary : Variable, Array or Record
			switch objectType {
			case ObjectTypeVAR, ObjectTypeDOMAIN:
				variable := newVariableFromSection(section, name, nodeId, index, 0)
				entry := od.AddVariable(index, variable)
				entry.ObjectType = objectType
			case ObjectTypeARRAY:
				od.AddArray(index, name, NewArray())
			case ObjectTypeRECORD:
				od.AddRecord(index, name, NewRecord())
			default:
				return nil, errors.Wrapf(ErrUnknownObjectType, "x%x has object type %v", index, objectType)
			}
			continue
		}

		// Match subindexes, add the subindex values to Record or Array objects
		if matches := matchSubidxRegExp.FindStringSubmatch(sectionName); matches != nil {
			idx, err := strconv.ParseUint(matches[1], 16, 16)
			if err != nil {
				return nil, err
			}
			sidx, err := strconv.ParseUint(matches[2], 16, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid sub-index in section %v", sectionName)
			}
			index := uint16(idx)
			subIndex := uint8(sidx)

			entry := od.Index(index)
			if entry == nil {
				return nil, errors.Wrapf(ErrIndexNotFound, "section %v refers to x%x", sectionName, index)
			}
			name := keyValue(section, "ParameterName")
			variable := newVariableFromSection(section, name, nodeId, index, subIndex)
			if err := entry.addSubVariable(variable); err != nil {
				return nil, errors.Wrapf(ErrNotAList, "section %v : %v", sectionName, err)
			}
		}
	}

	return od, nil
}

// ParseFile parses the EDS or DCF at path.
// A .zip archive holding exactly one EDS is also accepted.
func ParseFile(path string, nodeId uint8) (*ObjectDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	format := FormatEDSAscii
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		format = FormatEDSZipped
	}
	return DefaultEDSFormatHandler(nodeId, format, f)
}

// [EDSFormatHandler] takes a formatType, nodeId and a reader
// to handle an EDS file stored as a proprietary format (zip, etc)
type EDSFormatHandler func(nodeId uint8, formatType uint8, reader io.Reader) (*ObjectDictionary, error)

// Default EDS format handler used by this library
// This can be used as a template to add other format handlers
func DefaultEDSFormatHandler(nodeId uint8, formatType uint8, reader io.Reader) (*ObjectDictionary, error) {

	switch formatType {

	case FormatEDSAscii:
		return Parse(reader, nodeId)

	case FormatEDSZipped:
		raw, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		zipped, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			return nil, errors.Wrap(err, "failed to open zipped EDS")
		}
		if len(zipped.File) != 1 {
			return nil, errors.Newf("expecting exactly 1 file in archive, got %d", len(zipped.File))
		}
		r, err := zipped.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		uncompressed, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return Parse(uncompressed, nodeId)

	default:
		return nil, ErrEdsFormat
	}
}

// Create variable from section entry.
// This never fails, faulty keys are logged and replaced by safe values.
func newVariableFromSection(
	section *ini.Section,
	name string,
	nodeId uint8,
	index uint16,
	subindex uint8,
) *Variable {

	logger := _logger.WithField("index", formatIndex(index, subindex))
	variable := &Variable{
		Index:    index,
		Name:     name,
		SubIndex: subindex,
	}

	// Get AccessType
	if section.HasKey("AccessType") {
		variable.AccessType = strings.ToLower(strings.TrimSpace(keyValue(section, "AccessType")))
	} else {
		logger.Warnf("no 'AccessType', defaulting to %v", AccessRW)
		variable.AccessType = AccessRW
	}

	// Get PDOMapping to know if pdo mappable
	if section.HasKey("PDOMapping") {
		variable.PDOMapping, _ = strconv.ParseBool(strings.TrimSpace(keyValue(section, "PDOMapping")))
	}

	dataType, err := strconv.ParseUint(keyValue(section, "DataType"), 0, 8)
	if err != nil {
		logger.Warnf("failed to parse 'DataType' (%v), using UNKNOWN", err)
		dataType = uint64(UNKNOWN)
	}
	variable.DataType = uint8(dataType)

	variable.LowLimit = keyValue(section, "LowLimit")
	variable.HighLimit = keyValue(section, "HighLimit")

	var raw string
	var present bool
	if section.HasKey("DefaultValue") {
		variable.DefaultValue = keyValue(section, "DefaultValue")
		raw, present = variable.DefaultValue, true
	}
	// A DCF holds the configured value, which takes precedence
	if section.HasKey("ParameterValue") {
		variable.ParameterValue = keyValue(section, "ParameterValue")
		raw, present = variable.ParameterValue, true
	}
	if !present {
		return variable
	}

	offset := uint8(0)
	// If $NODEID is in default value then remove it, and add it afterwards
	if containsNodeID(raw) {
		raw = removeNodeID(raw)
		offset = nodeId
	}
	variable.Value, err = DecodeFromString(raw, variable.DataType, offset)
	if err != nil {
		logger.Warnf("failed to parse value %q for datatype x%x, ignoring (%v)", raw, variable.DataType, err)
		variable.Value = nil
	}
	return variable
}

// keyValue returns the value of key without its inline comment, if any
func keyValue(section *ini.Section, key string) string {
	return matchInlineComment.ReplaceAllString(section.Key(key).String(), "")
}

func formatIndex(index uint16, subindex uint8) string {
	return "x" + strconv.FormatUint(uint64(index), 16) + "|x" + strconv.FormatUint(uint64(subindex), 16)
}
