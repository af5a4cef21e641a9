package od

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEds = "testdata/sample.eds"

func TestParseSample(t *testing.T) {
	od, err := ParseFile(sampleEds, 0x10)
	require.Nil(t, err)
	assert.Equal(t, 10, od.Len())

	// Insertion order is the file order, not the index order
	indexes := make([]uint16, 0)
	for _, entry := range od.Entries() {
		indexes = append(indexes, entry.Index)
	}
	assert.Equal(t, []uint16{0x1000, 0x1008, 0x1003, 0x1018, 0x1200, 0x2000, 0x2001, 0x2002, 0x2003, 0x2004}, indexes)
}

func TestParseVariable(t *testing.T) {
	od, err := ParseFile(sampleEds, 0x10)
	require.Nil(t, err)

	entry := od.Index(0x1000)
	require.NotNil(t, entry)
	assert.Equal(t, ObjectTypeVAR, entry.ObjectType)
	variable, ok := entry.Object.(*Variable)
	require.True(t, ok)
	assert.Equal(t, "Device type", variable.Name)
	assert.Equal(t, UNSIGNED32, variable.DataType)
	assert.Equal(t, AccessRO, variable.AccessType)
	assert.Equal(t, uint64(0x191), variable.Value)
	assert.False(t, variable.PDOMapping)

	variable, err = od.Index("Manufacturer device name").SubIndex(0)
	require.Nil(t, err)
	assert.Equal(t, "hello", variable.Value)

	// No ObjectType defaults to VAR
	entry = od.Index(0x2000)
	require.NotNil(t, entry)
	assert.Equal(t, ObjectTypeVAR, entry.ObjectType)
	variable, _ = entry.SubIndex(0)
	assert.Equal(t, int64(-5), variable.Value)
	assert.True(t, variable.PDOMapping)

	variable, _ = od.Index(0x2001).SubIndex(0)
	assert.Equal(t, float32(1.5), variable.Value)
}

func TestParseRecordAndArray(t *testing.T) {
	od, err := ParseFile(sampleEds, 0x10)
	require.Nil(t, err)

	entry := od.Index(0x1018)
	require.NotNil(t, entry)
	record, ok := entry.Object.(*Record)
	require.True(t, ok)
	assert.Equal(t, 5, entry.SubCount())
	assert.Equal(t, uint8(4), record.Variables[4].SubIndex)
	assert.Equal(t, "Serial number", record.Variables[4].Name)

	vendor, err := entry.SubIndex("Vendor-ID")
	require.Nil(t, err)
	assert.Equal(t, uint16(0x1018), vendor.Index)
	assert.Equal(t, uint64(0x12345678), vendor.Value)

	revision, err := entry.SubIndex(3)
	require.Nil(t, err)
	assert.Nil(t, revision.Value)
	assert.False(t, revision.HasValue())

	_, err = entry.SubIndex(9)
	assert.Equal(t, ErrSubNotExist, err)

	entry = od.Index(0x1003)
	require.NotNil(t, entry)
	_, ok = entry.Object.(*Array)
	assert.True(t, ok)
	assert.Equal(t, ObjectTypeARRAY, entry.ObjectType)
	assert.Equal(t, 3, entry.SubCount())
}

func TestParseNodeId(t *testing.T) {
	od, err := ParseFile(sampleEds, 0x10)
	require.Nil(t, err)
	rx, err := od.Index(0x1200).SubIndex(1)
	require.Nil(t, err)
	assert.Equal(t, uint64(0x610), rx.Value)
	tx, err := od.Index(0x1200).SubIndex(2)
	require.Nil(t, err)
	assert.Equal(t, uint64(0x590), tx.Value)
	// Raw value is untouched
	assert.Equal(t, "$NODEID+0x600", rx.DefaultValue)

	od, err = ParseFile(sampleEds, 0x01)
	require.Nil(t, err)
	rx, _ = od.Index(0x1200).SubIndex(1)
	assert.Equal(t, uint64(0x601), rx.Value)
}

func TestParseAnomalies(t *testing.T) {
	od, err := ParseFile(sampleEds, 0x10)
	require.Nil(t, err)

	vendor, _ := od.Index(0x2002).SubIndex(0)
	assert.Equal(t, uint8(0x40), vendor.DataType)
	assert.Equal(t, uint64(0x10), vendor.Value)

	broken, _ := od.Index(0x2003).SubIndex(0)
	assert.Nil(t, broken.Value)
	assert.Equal(t, "not a number", broken.DefaultValue)

	configured, _ := od.Index(0x2004).SubIndex(0)
	assert.Equal(t, uint64(0x20), configured.Value)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("[1018sub1]\nParameterName=orphan\nDataType=0x7\nAccessType=ro\n"), 0)
	assert.ErrorIs(t, err, ErrIndexNotFound)

	_, err = Parse([]byte("[1018]\nParameterName=bad\nObjectType=0x5\n"), 0)
	assert.ErrorIs(t, err, ErrUnknownObjectType)

	_, err = Parse([]byte("[1000]\nParameterName=var\nDataType=0x7\nAccessType=ro\n[1000sub1]\nParameterName=sub\nDataType=0x7\n"), 0)
	assert.ErrorIs(t, err, ErrNotAList)

	_, err = ParseFile("testdata/does_not_exist.eds", 0)
	assert.NotNil(t, err)
}

func TestParseMissingAccessType(t *testing.T) {
	od, err := Parse([]byte("[2000]\nParameterName=x\nDataType=zz\nDefaultValue=1\n"), 0)
	require.Nil(t, err)
	variable, err := od.Index(0x2000).SubIndex(0)
	require.Nil(t, err)
	assert.Equal(t, AccessRW, variable.AccessType)
	assert.Equal(t, UNKNOWN, variable.DataType)
}

func TestParseZipped(t *testing.T) {
	raw, err := os.ReadFile(sampleEds)
	require.Nil(t, err)

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, err := zw.Create("sample.eds")
	require.Nil(t, err)
	_, err = w.Write(raw)
	require.Nil(t, err)
	require.Nil(t, zw.Close())

	path := filepath.Join(t.TempDir(), "sample.zip")
	require.Nil(t, os.WriteFile(path, buf.Bytes(), 0644))

	od, err := ParseFile(path, 0x10)
	require.Nil(t, err)
	assert.Equal(t, 10, od.Len())

	_, err = DefaultEDSFormatHandler(0, 5, bytes.NewReader(raw))
	assert.Equal(t, ErrEdsFormat, err)
}

func TestParseCommentCharacters(t *testing.T) {
	eds := "; full line comment\n" +
		"[2000]\nParameterName=Digital input #1\nObjectType=0x7\nDataType=0x0009\nAccessType=rw\nDefaultValue=abc;def\n" +
		"[2001]\nParameterName=Digital input #2\nObjectType=0x7\nDataType=0x0007\nAccessType=ro ; read only\nDefaultValue=0x10 ; trailing comment\n"
	od, err := Parse([]byte(eds), 0)
	require.Nil(t, err)

	first, err := od.Index(0x2000).SubIndex(0)
	require.Nil(t, err)
	assert.Equal(t, "Digital input #1", first.Name)
	assert.Equal(t, "abc;def", first.Value)

	second, err := od.Index(0x2001).SubIndex(0)
	require.Nil(t, err)
	assert.Equal(t, "Digital input #2", second.Name)
	assert.Equal(t, AccessRO, second.AccessType)
	assert.Equal(t, uint64(0x10), second.Value)
}

func TestParseNodeIdSpaces(t *testing.T) {
	eds := "[1800]\nParameterName=TPDO communication parameter\nObjectType=0x9\n" +
		"[1800sub1]\nParameterName=COB-ID used by TPDO\nDataType=0x0007\nAccessType=rw\nDefaultValue=$NODEID + 0x180\n"
	od, err := Parse([]byte(eds), 4)
	require.Nil(t, err)
	cobId, err := od.Index(0x1800).SubIndex(1)
	require.Nil(t, err)
	assert.Equal(t, uint64(0x184), cobId.Value)
}
