package cgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/canopener/canopener/pkg/od"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalentIgnoresDate(t *testing.T) {
	dict, err := od.ParseFile(samplePath, 0)
	require.Nil(t, err)

	gen := newTestGenerator("OD")
	first := &bytes.Buffer{}
	require.Nil(t, gen.Generate(first, dict))

	gen.Now = func() time.Time { return fixedDate.Add(48 * time.Hour) }
	second := &bytes.Buffer{}
	require.Nil(t, gen.Generate(second, dict))

	assert.NotEqual(t, first.String(), second.String())
	assert.True(t, Equivalent(first.Bytes(), second.Bytes()))
	assert.Equal(t, 0, FirstDifference(first.Bytes(), second.Bytes()))
}

func TestEquivalentDetectsChanges(t *testing.T) {
	a := []byte("/**\n * Date: 2024-01-01 00:00:00\n */\n#define OD_1000_DATA_VALUE 0x01\n")
	b := []byte("/**\n * Date: 2025-01-01 00:00:00\n */\n#define OD_1000_DATA_VALUE 0x02\n")
	assert.False(t, Equivalent(a, b))
	assert.Equal(t, 4, FirstDifference(a, b))

	// Missing lines
	assert.Equal(t, 4, FirstDifference(a, a[:bytes.LastIndex(a[:len(a)-1], []byte("\n"))+1]))
}

func TestEquivalentLineEndings(t *testing.T) {
	a := []byte("#define A 1\n#define B 2\n")
	b := []byte("#define A 1\r\n#define B 2\r\n")
	assert.True(t, Equivalent(a, b))
	assert.True(t, Equivalent(nil, []byte{}))
}
