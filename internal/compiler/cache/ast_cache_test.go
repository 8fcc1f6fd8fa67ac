package cache

import (
	"testing"
	"time"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// programNamed builds a minimal *ast.Program distinguishable by name, stashed
// in its source location so tests can assert identity without depending on
// declaration-level AST fields.
func programNamed(name string) *ast.Program {
	return &ast.Program{Base: ast.At(ast.SourceLocation{File: name})}
}

func TestASTCache_SetAndGet(t *testing.T) {
	cache := NewASTCache()

	program := programNamed("User")

	path := "/test/user.tova"
	hash := "abc123"

	// Set
	cache.Set(path, program, hash)

	// Get by path
	cached, exists := cache.Get(path)
	if !exists {
		t.Errorf("Get() returned false for existing entry")
	}

	if cached == nil {
		t.Fatalf("Get() returned nil cached entry")
	}

	if cached.Hash != hash {
		t.Errorf("Get() hash = %s, want %s", cached.Hash, hash)
	}

	if cached.Program == nil {
		t.Errorf("Get() program is nil")
	}

	if cached.Program.Location.File != "User" {
		t.Errorf("Get() program = %q, want %q", cached.Program.Location.File, "User")
	}
}

func TestASTCache_GetByHash(t *testing.T) {
	cache := NewASTCache()

	program := programNamed("Post")

	path := "/test/post.tova"
	hash := "def456"

	cache.Set(path, program, hash)

	// Get by hash
	cached, exists := cache.GetByHash(hash)
	if !exists {
		t.Errorf("GetByHash() returned false for existing hash")
	}

	if cached.Path != path {
		t.Errorf("GetByHash() path = %s, want %s", cached.Path, path)
	}
}

func TestASTCache_Invalidate(t *testing.T) {
	cache := NewASTCache()

	program := programNamed("User")

	path := "/test/user.tova"
	hash := "abc123"

	cache.Set(path, program, hash)

	// Verify it exists
	if _, exists := cache.Get(path); !exists {
		t.Fatalf("Entry should exist before invalidation")
	}

	// Invalidate
	cache.Invalidate(path)

	// Verify it's gone
	if _, exists := cache.Get(path); exists {
		t.Errorf("Entry should not exist after invalidation")
	}
}

func TestASTCache_InvalidateAll(t *testing.T) {
	cache := NewASTCache()

	// Add multiple entries
	for i := 0; i < 5; i++ {
		program := programNamed("Resource")
		cache.Set("/test/file"+string(rune(i))+".tova", program, "hash"+string(rune(i)))
	}

	if cache.Size() != 5 {
		t.Fatalf("Cache should have 5 entries, has %d", cache.Size())
	}

	// Invalidate all
	cache.InvalidateAll()

	if cache.Size() != 0 {
		t.Errorf("Cache should be empty after InvalidateAll(), has %d entries", cache.Size())
	}
}

func TestASTCache_Size(t *testing.T) {
	cache := NewASTCache()

	if cache.Size() != 0 {
		t.Errorf("New cache should have size 0, has %d", cache.Size())
	}

	program := programNamed("User")

	cache.Set("/test/user.tova", program, "hash1")
	if cache.Size() != 1 {
		t.Errorf("Cache should have size 1, has %d", cache.Size())
	}

	cache.Set("/test/post.tova", program, "hash2")
	if cache.Size() != 2 {
		t.Errorf("Cache should have size 2, has %d", cache.Size())
	}

	cache.Invalidate("/test/user.tova")
	if cache.Size() != 1 {
		t.Errorf("Cache should have size 1 after invalidation, has %d", cache.Size())
	}
}

func TestASTCache_GetAll(t *testing.T) {
	cache := NewASTCache()

	program := programNamed("User")

	cache.Set("/test/user.tova", program, "hash1")
	cache.Set("/test/post.tova", program, "hash2")

	all := cache.GetAll()

	if len(all) != 2 {
		t.Errorf("GetAll() returned %d entries, want 2", len(all))
	}

	// Verify we got a copy (modifying shouldn't affect cache)
	for k := range all {
		delete(all, k)
	}

	if cache.Size() != 2 {
		t.Errorf("Cache size should still be 2 after modifying GetAll() result, has %d", cache.Size())
	}
}

func TestASTCache_Prune(t *testing.T) {
	cache := NewASTCache()

	program := programNamed("User")

	// Add entries with different timestamps
	cache.Set("/test/old.tova", program, "hash1")
	time.Sleep(10 * time.Millisecond)
	cache.Set("/test/new.tova", program, "hash2")

	// Prune entries older than 5ms (should remove old entry only)
	pruned := cache.Prune(5 * time.Millisecond)

	if pruned != 1 {
		t.Errorf("Prune() removed %d entries, expected 1 (the old entry)", pruned)
	}

	if cache.Size() != 1 {
		t.Errorf("Cache should have 1 entry after pruning, has %d", cache.Size())
	}

	// Sleep and prune again - should remove the remaining entry
	time.Sleep(20 * time.Millisecond)
	pruned = cache.Prune(10 * time.Millisecond)

	if pruned != 1 {
		t.Errorf("Prune() removed %d entries, expected 1", pruned)
	}

	if cache.Size() != 0 {
		t.Errorf("Cache should be empty after pruning, has %d entries", cache.Size())
	}
}

func TestASTCache_ConcurrentAccess(t *testing.T) {
	cache := NewASTCache()

	program := programNamed("User")

	// Concurrent writes
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(idx int) {
			cache.Set("/test/file"+string(rune(idx))+".tova", program, "hash"+string(rune(idx)))
			done <- true
		}(i)
	}

	// Wait for all writes
	for i := 0; i < 10; i++ {
		<-done
	}

	// Concurrent reads
	for i := 0; i < 10; i++ {
		go func(idx int) {
			cache.Get("/test/file" + string(rune(idx)) + ".tova")
			done <- true
		}(i)
	}

	// Wait for all reads
	for i := 0; i < 10; i++ {
		<-done
	}

	// Should have 10 entries
	if cache.Size() != 10 {
		t.Errorf("Cache should have 10 entries after concurrent access, has %d", cache.Size())
	}
}

func TestASTCache_UpdateExistingEntry(t *testing.T) {
	cache := NewASTCache()

	program1 := programNamed("User")
	program2 := programNamed("UpdatedUser")

	path := "/test/user.tova"

	// Set initial
	cache.Set(path, program1, "hash1")

	cached, _ := cache.Get(path)
	if cached.Hash != "hash1" {
		t.Errorf("Initial hash = %s, want hash1", cached.Hash)
	}

	// Update
	cache.Set(path, program2, "hash2")

	cached, _ = cache.Get(path)
	if cached.Hash != "hash2" {
		t.Errorf("Updated hash = %s, want hash2", cached.Hash)
	}

	if cached.Program.Location.File != "UpdatedUser" {
		t.Errorf("Program was not updated")
	}
}
