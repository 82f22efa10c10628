package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/model"
)

func ref(owner, name, desc string) model.MethodRef {
	return model.MethodRef{OwnerFQN: owner, Name: name, Descriptor: desc}
}

func TestBuild_TwoHopMain(t *testing.T) {
	h := hierarchy.New()
	h.Add(&model.ClassDecl{
		FQN: "a.M", Kind: model.Class,
		Methods: []model.MethodDecl{{
			OwnerFQN: "a.M", Name: "main", Descriptor: "([Ljava/lang/String;)V", IsStatic: true,
			CallSites: []model.CallSite{{Kind: model.Virtual, DeclaredTarget: ref("a.S", "run", "()V")}},
		}},
	})
	h.Add(&model.ClassDecl{
		FQN: "a.S", Kind: model.Class,
		Methods: []model.MethodDecl{{
			OwnerFQN: "a.S", Name: "run", Descriptor: "()V",
			CallSites: []model.CallSite{{Kind: model.Virtual, DeclaredTarget: ref("a.R", "save", "()V")}},
		}},
	})
	h.Add(&model.ClassDecl{
		FQN: "a.R", Kind: model.Class,
		Methods: []model.MethodDecl{{OwnerFQN: "a.R", Name: "save", Descriptor: "()V"}},
	})
	require.NoError(t, h.Freeze())

	edges := Build(h, CHA, []model.MethodRef{ref("a.M", "main", "([Ljava/lang/String;)V")})
	require.Len(t, edges, 2)
	assert.Equal(t, ref("a.M", "main", "([Ljava/lang/String;)V"), edges[0].Source)
	assert.Equal(t, ref("a.S", "run", "()V"), edges[0].Target)
	assert.Equal(t, ref("a.S", "run", "()V"), edges[1].Source)
	assert.Equal(t, ref("a.R", "save", "()V"), edges[1].Target)
}

// interfaceDispatchHierarchy builds scenario 2 from spec.md §8: interface
// a.I with do(); concrete a.A and a.B both implement I; main constructs
// only a.A then calls I.do() through a statically-typed-I call site.
func interfaceDispatchHierarchy(t *testing.T) *hierarchy.Hierarchy {
	h := hierarchy.New()
	h.Add(&model.ClassDecl{
		FQN: "a.I", Kind: model.Interface,
		Methods: []model.MethodDecl{{OwnerFQN: "a.I", Name: "do", Descriptor: "()V", IsAbstract: true}},
	})
	h.Add(&model.ClassDecl{
		FQN: "a.A", Kind: model.Class, DirectlyImplemented: []string{"a.I"},
		Methods: []model.MethodDecl{
			{OwnerFQN: "a.A", Name: "<init>", Descriptor: "()V"},
			{OwnerFQN: "a.A", Name: "do", Descriptor: "()V"},
		},
	})
	h.Add(&model.ClassDecl{
		FQN: "a.B", Kind: model.Class, DirectlyImplemented: []string{"a.I"},
		Methods: []model.MethodDecl{
			{OwnerFQN: "a.B", Name: "<init>", Descriptor: "()V"},
			{OwnerFQN: "a.B", Name: "do", Descriptor: "()V"},
		},
	})
	h.Add(&model.ClassDecl{
		FQN: "a.Main", Kind: model.Class,
		Methods: []model.MethodDecl{{
			OwnerFQN: "a.Main", Name: "main", Descriptor: "([Ljava/lang/String;)V", IsStatic: true,
			CallSites: []model.CallSite{
				{Kind: model.Special, DeclaredTarget: ref("a.A", "<init>", "()V")},
				{Kind: model.Interface, DeclaredTarget: ref("a.I", "do", "()V")},
			},
		}},
	})
	require.NoError(t, h.Freeze())
	return h
}

func TestBuild_InterfaceDispatch_CHAReachesBothImplementors(t *testing.T) {
	h := interfaceDispatchHierarchy(t)
	edges := Build(h, CHA, []model.MethodRef{ref("a.Main", "main", "([Ljava/lang/String;)V")})

	var targets []model.MethodRef
	for _, e := range edges {
		if e.Target.Name == "do" {
			targets = append(targets, e.Target)
		}
	}
	assert.ElementsMatch(t, []model.MethodRef{ref("a.A", "do", "()V"), ref("a.B", "do", "()V")}, targets)
}

func TestBuild_InterfaceDispatch_RTAReachesOnlyInstantiatedType(t *testing.T) {
	h := interfaceDispatchHierarchy(t)
	edges := Build(h, RTA, []model.MethodRef{ref("a.Main", "main", "([Ljava/lang/String;)V")})

	var targets []model.MethodRef
	for _, e := range edges {
		if e.Target.Name == "do" {
			targets = append(targets, e.Target)
		}
	}
	assert.Equal(t, []model.MethodRef{ref("a.A", "do", "()V")}, targets)
}

func TestBuild_UnresolvedReferenceIsTolerated(t *testing.T) {
	h := hierarchy.New()
	h.Add(&model.ClassDecl{
		FQN: "a.M", Kind: model.Class,
		Methods: []model.MethodDecl{{
			OwnerFQN: "a.M", Name: "main", Descriptor: "([Ljava/lang/String;)V", IsStatic: true,
			CallSites: []model.CallSite{{Kind: model.Static, DeclaredTarget: ref("a.Ghost", "vanish", "()V")}},
		}},
	})
	require.NoError(t, h.Freeze())

	edges := Build(h, CHA, []model.MethodRef{ref("a.M", "main", "([Ljava/lang/String;)V")})
	assert.Empty(t, edges)
}

func TestBuild_CHAIsSupersetOfRTA(t *testing.T) {
	h := interfaceDispatchHierarchy(t)
	entry := []model.MethodRef{ref("a.Main", "main", "([Ljava/lang/String;)V")}
	chaEdges := Build(h, CHA, entry)
	rtaEdges := Build(h, RTA, entry)

	chaSet := make(map[string]bool, len(chaEdges))
	for _, e := range chaEdges {
		chaSet[e.Source.Key()+">"+e.Target.Key()] = true
	}
	for _, e := range rtaEdges {
		assert.True(t, chaSet[e.Source.Key()+">"+e.Target.Key()], "RTA edge %v->%v missing from CHA", e.Source, e.Target)
	}
}
