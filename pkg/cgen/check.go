package cgen

import (
	"bufio"
	"bytes"
	"strings"
)

// Equivalent returns true if two generated headers are identical,
// the banner date is ignored.
func Equivalent(a []byte, b []byte) bool {
	return bytes.Equal(stripDate(a), stripDate(b))
}

// FirstDifference returns the first line (1 based) on which two
// generated headers differ, ignoring the banner date. It returns 0
// if they are equivalent.
func FirstDifference(a []byte, b []byte) int {
	linesA := lines(stripDate(a))
	linesB := lines(stripDate(b))
	for i := 0; i < len(linesA) || i < len(linesB); i++ {
		if i >= len(linesA) || i >= len(linesB) || linesA[i] != linesB[i] {
			return i + 1
		}
	}
	return 0
}

func stripDate(raw []byte) []byte {
	var out bytes.Buffer
	for _, line := range lines(raw) {
		if strings.HasPrefix(line, datePrefix) {
			line = datePrefix
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func lines(raw []byte) []string {
	result := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), len(raw)+1)
	for scanner.Scan() {
		result = append(result, strings.TrimRight(scanner.Text(), "\r"))
	}
	return result
}
