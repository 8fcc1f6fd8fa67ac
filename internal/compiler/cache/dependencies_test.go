package cache

import (
	"testing"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

func TestDependencyGraph_AddFile(t *testing.T) {
	dg := NewDependencyGraph()

	dg.AddFile("/test/user.tova", "User")

	if dg.Size() != 1 {
		t.Errorf("Size() = %d, want 1", dg.Size())
	}

	deps := dg.GetDependencies("/test/user.tova")
	if len(deps) != 0 {
		t.Errorf("GetDependencies() = %d, want 0", len(deps))
	}
}

func TestDependencyGraph_AddDependency(t *testing.T) {
	dg := NewDependencyGraph()

	dg.AddFile("/test/post.tova", "Post")
	dg.AddFile("/test/user.tova", "User")

	// Post depends on User
	dg.AddDependency("/test/post.tova", "/test/user.tova")

	deps := dg.GetDependencies("/test/post.tova")
	if len(deps) != 1 {
		t.Fatalf("Post should have 1 dependency, has %d", len(deps))
	}
	if deps[0] != "/test/user.tova" {
		t.Errorf("Post dependency = %s, want /test/user.tova", deps[0])
	}

	dependents := dg.GetDependents("/test/user.tova")
	if len(dependents) != 1 {
		t.Fatalf("User should have 1 dependent, has %d", len(dependents))
	}
	if dependents[0] != "/test/post.tova" {
		t.Errorf("User dependent = %s, want /test/post.tova", dependents[0])
	}
}

func TestDependencyGraph_GetTransitiveDependents(t *testing.T) {
	dg := NewDependencyGraph()

	// Build a chain: A <- B <- C <- D
	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")
	dg.AddFile("/test/c.tova", "C")
	dg.AddFile("/test/d.tova", "D")

	dg.AddDependency("/test/b.tova", "/test/a.tova")
	dg.AddDependency("/test/c.tova", "/test/b.tova")
	dg.AddDependency("/test/d.tova", "/test/c.tova")

	// Changing A should invalidate B, C, D
	transitive := dg.GetTransitiveDependents("/test/a.tova")

	if len(transitive) != 3 {
		t.Errorf("GetTransitiveDependents() = %d, want 3", len(transitive))
	}

	// Check all are present
	found := make(map[string]bool)
	for _, dep := range transitive {
		found[dep] = true
	}

	if !found["/test/b.tova"] || !found["/test/c.tova"] || !found["/test/d.tova"] {
		t.Errorf("GetTransitiveDependents() missing expected files")
	}
}

func TestDependencyGraph_GetIndependentFiles(t *testing.T) {
	dg := NewDependencyGraph()

	// A and B are independent, C depends on A
	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")
	dg.AddFile("/test/c.tova", "C")

	dg.AddDependency("/test/c.tova", "/test/a.tova")

	independent := dg.GetIndependentFiles()

	if len(independent) != 2 {
		t.Errorf("GetIndependentFiles() = %d, want 2", len(independent))
	}

	// Check A and B are present
	found := make(map[string]bool)
	for _, file := range independent {
		found[file] = true
	}

	if !found["/test/a.tova"] || !found["/test/b.tova"] {
		t.Errorf("GetIndependentFiles() missing expected files")
	}

	if found["/test/c.tova"] {
		t.Errorf("GetIndependentFiles() should not include C (depends on A)")
	}
}

func TestDependencyGraph_GetTopologicalOrder(t *testing.T) {
	dg := NewDependencyGraph()

	// Build dependencies: A, B are independent; C depends on A; D depends on B and C
	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")
	dg.AddFile("/test/c.tova", "C")
	dg.AddFile("/test/d.tova", "D")

	dg.AddDependency("/test/c.tova", "/test/a.tova")
	dg.AddDependency("/test/d.tova", "/test/b.tova")
	dg.AddDependency("/test/d.tova", "/test/c.tova")

	order, err := dg.GetTopologicalOrder()
	if err != nil {
		t.Fatalf("GetTopologicalOrder() error = %v", err)
	}

	if len(order) != 4 {
		t.Fatalf("GetTopologicalOrder() returned %d files, want 4", len(order))
	}

	// Create position map
	pos := make(map[string]int)
	for i, file := range order {
		pos[file] = i
	}

	// Verify dependencies come before dependents
	if pos["/test/a.tova"] >= pos["/test/c.tova"] {
		t.Errorf("A should come before C in topological order")
	}
	if pos["/test/b.tova"] >= pos["/test/d.tova"] {
		t.Errorf("B should come before D in topological order")
	}
	if pos["/test/c.tova"] >= pos["/test/d.tova"] {
		t.Errorf("C should come before D in topological order")
	}
}

func TestDependencyGraph_GetTopologicalOrder_Cycle(t *testing.T) {
	dg := NewDependencyGraph()

	// Create a cycle: A -> B -> C -> A
	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")
	dg.AddFile("/test/c.tova", "C")

	dg.AddDependency("/test/a.tova", "/test/b.tova")
	dg.AddDependency("/test/b.tova", "/test/c.tova")
	dg.AddDependency("/test/c.tova", "/test/a.tova")

	_, err := dg.GetTopologicalOrder()
	if err == nil {
		t.Errorf("GetTopologicalOrder() should return error for cycle")
	}

	if _, ok := err.(*CycleError); !ok {
		t.Errorf("GetTopologicalOrder() should return CycleError, got %T", err)
	}
}

func TestDependencyGraph_RemoveFile(t *testing.T) {
	dg := NewDependencyGraph()

	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")
	dg.AddFile("/test/c.tova", "C")

	dg.AddDependency("/test/b.tova", "/test/a.tova")
	dg.AddDependency("/test/c.tova", "/test/b.tova")

	// Remove B
	dg.RemoveFile("/test/b.tova")

	if dg.Size() != 2 {
		t.Errorf("Size() = %d after removal, want 2", dg.Size())
	}

	// A should have no dependents now
	dependents := dg.GetDependents("/test/a.tova")
	if len(dependents) != 0 {
		t.Errorf("A should have 0 dependents after removing B, has %d", len(dependents))
	}

	// C should have no dependencies now
	deps := dg.GetDependencies("/test/c.tova")
	if len(deps) != 0 {
		t.Errorf("C should have 0 dependencies after removing B, has %d", len(deps))
	}
}

func TestDependencyGraph_Clear(t *testing.T) {
	dg := NewDependencyGraph()

	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")
	dg.AddDependency("/test/b.tova", "/test/a.tova")

	if dg.Size() != 2 {
		t.Fatalf("Size() = %d before clear, want 2", dg.Size())
	}

	dg.Clear()

	if dg.Size() != 0 {
		t.Errorf("Size() = %d after clear, want 0", dg.Size())
	}
}

func TestDependencyGraph_BuildDependencies(t *testing.T) {
	dg := NewDependencyGraph()

	program := &ast.Program{}

	dg.BuildDependencies("/test/post.tova", program)

	// Should add the file
	if dg.Size() != 1 {
		t.Errorf("Size() = %d after BuildDependencies, want 1", dg.Size())
	}

	// Tova source files have no cross-file imports, so BuildDependencies
	// never creates edges; every file is its own independent node.
}

func TestDependencyGraph_NoDuplicateDependencies(t *testing.T) {
	dg := NewDependencyGraph()

	dg.AddFile("/test/a.tova", "A")
	dg.AddFile("/test/b.tova", "B")

	// Add dependency twice
	dg.AddDependency("/test/b.tova", "/test/a.tova")
	dg.AddDependency("/test/b.tova", "/test/a.tova")

	deps := dg.GetDependencies("/test/b.tova")
	if len(deps) != 1 {
		t.Errorf("GetDependencies() = %d, want 1 (no duplicates)", len(deps))
	}

	dependents := dg.GetDependents("/test/a.tova")
	if len(dependents) != 1 {
		t.Errorf("GetDependents() = %d, want 1 (no duplicates)", len(dependents))
	}
}

func TestDependencyGraph_ComplexGraph(t *testing.T) {
	dg := NewDependencyGraph()

	// Build a more complex dependency graph
	//     A     B
	//    / \   / \
	//   C   D E   F
	//    \ /   \ /
	//     G     H

	files := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for _, f := range files {
		dg.AddFile("/test/"+f+".tova", f)
	}

	dg.AddDependency("/test/C.tova", "/test/A.tova")
	dg.AddDependency("/test/D.tova", "/test/A.tova")
	dg.AddDependency("/test/E.tova", "/test/B.tova")
	dg.AddDependency("/test/F.tova", "/test/B.tova")
	dg.AddDependency("/test/G.tova", "/test/C.tova")
	dg.AddDependency("/test/G.tova", "/test/D.tova")
	dg.AddDependency("/test/H.tova", "/test/E.tova")
	dg.AddDependency("/test/H.tova", "/test/F.tova")

	// Get topological order
	order, err := dg.GetTopologicalOrder()
	if err != nil {
		t.Fatalf("GetTopologicalOrder() error = %v", err)
	}

	if len(order) != 8 {
		t.Fatalf("GetTopologicalOrder() returned %d files, want 8", len(order))
	}

	// Create position map
	pos := make(map[string]int)
	for i, file := range order {
		pos[file] = i
	}

	// Verify all dependency constraints
	if pos["/test/A.tova"] >= pos["/test/C.tova"] {
		t.Errorf("A should come before C")
	}
	if pos["/test/A.tova"] >= pos["/test/D.tova"] {
		t.Errorf("A should come before D")
	}
	if pos["/test/C.tova"] >= pos["/test/G.tova"] {
		t.Errorf("C should come before G")
	}
	if pos["/test/D.tova"] >= pos["/test/G.tova"] {
		t.Errorf("D should come before G")
	}
}
