package entrypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherrygraph/cherry/filter"
	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/model"
)

func classWithMain(fqn string) *model.ClassDecl {
	return &model.ClassDecl{
		FQN:  fqn,
		Kind: model.Class,
		Methods: []model.MethodDecl{
			{OwnerFQN: fqn, Name: "main", Descriptor: "([Ljava/lang/String;)V", Visibility: model.Public, IsStatic: true},
			{OwnerFQN: fqn, Name: "helper", Descriptor: "()V", Visibility: model.Private},
		},
	}
}

func buildHierarchy(t *testing.T, decls ...*model.ClassDecl) *hierarchy.Hierarchy {
	h := hierarchy.New()
	for _, d := range decls {
		h.Add(d)
	}
	require.NoError(t, h.Freeze())
	return h
}

func TestResolve_DefaultModeFindsMain(t *testing.T) {
	h := buildHierarchy(t, classWithMain("a.App"))
	f := filter.New(filter.Config{})

	refs := Resolve(h, f, nil)
	require.Len(t, refs, 1)
	assert.Equal(t, "a.App", refs[0].OwnerFQN)
	assert.Equal(t, "main", refs[0].Name)
}

func TestResolve_DefaultModeSkipsNonPublicMain(t *testing.T) {
	decl := &model.ClassDecl{
		FQN:  "a.Weird",
		Kind: model.Class,
		Methods: []model.MethodDecl{
			{OwnerFQN: "a.Weird", Name: "main", Descriptor: "([Ljava/lang/String;)V", Visibility: model.Private, IsStatic: true},
		},
	}
	h := buildHierarchy(t, decl)
	f := filter.New(filter.Config{})

	refs := Resolve(h, f, nil)
	assert.Empty(t, refs)
}

func TestResolve_ExplicitModeSimpleName(t *testing.T) {
	h := buildHierarchy(t, classWithMain("com.example.App"))
	f := filter.New(filter.Config{})

	refs := Resolve(h, f, []string{"App.main"})
	require.Len(t, refs, 1)
	assert.Equal(t, "com.example.App", refs[0].OwnerFQN)
}

func TestResolve_ExplicitModeFullyQualified(t *testing.T) {
	h := buildHierarchy(t, classWithMain("com.example.App"), classWithMain("other.App"))
	f := filter.New(filter.Config{})

	refs := Resolve(h, f, []string{"com.example.App.main"})
	require.Len(t, refs, 1)
	assert.Equal(t, "com.example.App", refs[0].OwnerFQN)
}

func TestResolve_ExplicitModeBareMethodNameMatchesAnyClass(t *testing.T) {
	h := buildHierarchy(t, classWithMain("a.One"), classWithMain("b.Two"))
	f := filter.New(filter.Config{})

	refs := Resolve(h, f, []string{"main"})
	assert.Len(t, refs, 2)
}

func TestResolve_NoMatchesIsNotAnError(t *testing.T) {
	h := buildHierarchy(t, classWithMain("a.One"))
	f := filter.New(filter.Config{})

	refs := Resolve(h, f, []string{"nonexistent.Missing.main"})
	assert.Empty(t, refs)
}
