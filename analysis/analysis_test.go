package analysis

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherrygraph/cherry/callgraph"
	"github.com/cherrygraph/cherry/internal/diagnostic"
)

// writeClass assembles a minimal well-formed class file with zero
// methods and an optional superclass, reusing the same constant-pool
// layout classfile's own tests exercise against Parse directly.
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

func TestFacade_Analyze_EmptyEntryPointsIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, "Plain.class", "a/Plain", "java/lang/Object")

	coll := &diagnostic.Collector{}
	facade := NewFacade(coll)
	res, err := facade.Analyze(context.Background(), Config{Paths: []string{dir}})
	require.NoError(t, err)
	assert.Empty(t, res.CallEdges)
	require.Len(t, res.Classes, 1)
	assert.Equal(t, "a.Plain", res.Classes[0].FQN)
}

func TestFacade_Analyze_HierarchyCycleIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, "X.class", "a/X", "a/Y")
	writeClass(t, dir, "Y.class", "a/Y", "a/X")

	facade := NewFacade(nil)
	_, err := facade.Analyze(context.Background(), Config{Paths: []string{dir}})
	require.Error(t, err)
	var analysisErr *Error
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, HierarchyCycle, analysisErr.Kind)
}

func TestFacade_Analyze_RTAAlgorithmSelectable(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, "Plain.class", "a/Plain", "java/lang/Object")

	facade := NewFacade(nil)
	res, err := facade.Analyze(context.Background(), Config{Paths: []string{dir}, Algorithm: callgraph.RTA})
	require.NoError(t, err)
	assert.Empty(t, res.CallEdges)
}
