package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeClass assembles a minimal well-formed class file with zero
// methods and an optional superclass, the same layout analysis's own
// fixture helper builds to exercise Parse end to end.
func writeClass(t *testing.T, dir, filename, thisInternal, superInternal string) {
	t.Helper()

	var entries [][]byte
	intern := func(s string) uint16 {
		idx := uint16(len(entries) + 1)
		buf := append([]byte{1}, be16(uint16(len(s)))...)
		buf = append(buf, []byte(s)...)
		entries = append(entries, buf)
		return idx
	}
	classConst := func(internalName string) uint16 {
		nameIdx := intern(internalName)
		idx := uint16(len(entries) + 1)
		entries = append(entries, append([]byte{7}, be16(nameIdx)...))
		return idx
	}

	thisIdx := classConst(thisInternal)
	var superIdx uint16
	if superInternal != "" {
		superIdx = classConst(superInternal)
	}

	var buf []byte
	buf = append(buf, be32(0xCAFEBABE)...)
	buf = append(buf, be16(0)...)
	buf = append(buf, be16(52)...)
	buf = append(buf, be16(uint16(len(entries)+1))...)
	for _, e := range entries {
		buf = append(buf, e...)
	}
	buf = append(buf, be16(0x0021)...) // access: public super
	buf = append(buf, be16(thisIdx)...)
	buf = append(buf, be16(superIdx)...)
	buf = append(buf, be16(0)...) // interfaces_count
	buf = append(buf, be16(0)...) // fields_count
	buf = append(buf, be16(0)...) // methods_count
	buf = append(buf, be16(0)...) // attributes_count

	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), buf, 0o644))
}

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func TestRunAnalyze_TextFormat(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, "Plain.class", "a/Plain", "java/lang/Object")

	oldAlgorithm, oldFormat, oldInclude, oldExclude, oldJDK, oldEntry, oldSave :=
		algorithmFlag, formatFlag, includeFlag, excludeFlag, excludeJDK, entryFlag, saveDefaults
	algorithmFlag, formatFlag, includeFlag, excludeFlag, excludeJDK, entryFlag, saveDefaults =
		"CHA", "text", nil, nil, false, nil, false
	defer func() {
		algorithmFlag, formatFlag, includeFlag, excludeFlag, excludeJDK, entryFlag, saveDefaults =
			oldAlgorithm, oldFormat, oldInclude, oldExclude, oldJDK, oldEntry, oldSave
	}()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	analyzeCmd.SetContext(context.Background())
	err := runAnalyze(analyzeCmd, []string{dir})

	w.Close()
	os.Stdout = oldStdout

	var out bytes.Buffer
	out.ReadFrom(r)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 classes")
}

func TestRunAnalyze_RejectsUnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, "Plain.class", "a/Plain", "java/lang/Object")

	oldAlgorithm := algorithmFlag
	algorithmFlag = "bogus"
	defer func() { algorithmFlag = oldAlgorithm }()

	analyzeCmd.SetContext(context.Background())
	err := runAnalyze(analyzeCmd, []string{dir})
	require.Error(t, err)
}
