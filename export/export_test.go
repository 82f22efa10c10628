package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherrygraph/cherry/model"
	"github.com/cherrygraph/cherry/result"
)

func sampleResult() result.AnalysisResult {
	return result.AnalysisResult{
		Classes: []result.ClassInfo{{FQN: "a.M", Kind: model.Class}},
		CallEdges: []model.CallEdge{
			{Source: model.MethodRef{OwnerFQN: "a.M", Name: "main"}, Target: model.MethodRef{OwnerFQN: "a.S", Name: "run"}},
		},
	}
}

func TestTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextEncoder{}.Encode(&buf, sampleResult()))
	out := buf.String()
	assert.Contains(t, out, "a.M.main -> a.S.run")
	assert.Contains(t, out, "a.M (CLASS)")
}

func TestDelimitedEncoder_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DelimitedEncoder{}.Encode(&buf, sampleResult()))

	r := csv.NewReader(strings.NewReader(buf.String()))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a.M", "main", "a.S", "run"}, rows[1])
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONEncoder{}.Encode(&buf, sampleResult()))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	edges := doc["callEdges"].([]interface{})
	require.Len(t, edges, 1)
	_, hasClasses := doc["classes"]
	assert.False(t, hasClasses)
}

func TestJSONEncoder_VerboseIncludesClasses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONEncoder{Verbose: true}.Encode(&buf, sampleResult()))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	_, hasClasses := doc["classes"]
	assert.True(t, hasClasses)
}

func TestDotEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DotEncoder{}.Encode(&buf, sampleResult()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph callgraph {"))
	assert.Contains(t, out, `"a.M.main" -> "a.S.run";`)
	assert.Contains(t, out, `"a.M.main";`)
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Format("bogus"))
	assert.Error(t, err)
}
