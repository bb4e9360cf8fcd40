package store

import (
	"bytes"
	"testing"
)

// countingKV wraps MemoryKV and counts durable reads so tests can assert the
// cache actually short-circuits them.
type countingKV struct {
	*MemoryKV
	reads int
}

func (c *countingKV) Read(key string) ([]byte, bool, error) {
	c.reads++
	return c.MemoryKV.Read(key)
}

// TestAccessor_ReadThrough verifies that the first Get reads through to the
// durable store and the second is served from the cache.
func TestAccessor_ReadThrough(t *testing.T) {
	kv := &countingKV{MemoryKV: NewMemoryKV()}
	if err := kv.Write("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	acc := NewAccessor(kv)

	for i := 0; i < 3; i++ {
		value, err := acc.Get("k")
		if err != nil {
			t.Fatalf("Get #%d: %v", i+1, err)
		}
		if !bytes.Equal(value, []byte(`"v"`)) {
			t.Errorf("Get #%d = %q, want %q", i+1, value, `"v"`)
		}
	}

	if kv.reads != 1 {
		t.Errorf("durable reads = %d, want 1", kv.reads)
	}
}

// TestAccessor_WriteThrough verifies that Put lands in the durable store and
// that a following Get returns the written value without a durable read.
func TestAccessor_WriteThrough(t *testing.T) {
	kv := &countingKV{MemoryKV: NewMemoryKV()}
	acc := NewAccessor(kv)

	if err := acc.Put("k", []byte(`"v2"`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	durable, found, err := kv.MemoryKV.Read("k")
	if err != nil || !found {
		t.Fatalf("durable Read after Put: found=%v err=%v", found, err)
	}
	if !bytes.Equal(durable, []byte(`"v2"`)) {
		t.Errorf("durable value = %q, want %q", durable, `"v2"`)
	}

	value, err := acc.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(value, []byte(`"v2"`)) {
		t.Errorf("Get = %q, want %q", value, `"v2"`)
	}
	if kv.reads != 0 {
		t.Errorf("durable reads after Put = %d, want 0", kv.reads)
	}
}

// TestAccessor_AbsenceIsNil verifies that a never-written key reads as nil,
// and that the absence is cached too.
func TestAccessor_AbsenceIsNil(t *testing.T) {
	kv := &countingKV{MemoryKV: NewMemoryKV()}
	acc := NewAccessor(kv)

	for i := 0; i < 2; i++ {
		value, err := acc.Get("missing")
		if err != nil {
			t.Fatalf("Get #%d: %v", i+1, err)
		}
		if value != nil {
			t.Errorf("Get #%d = %q, want nil", i+1, value)
		}
	}
	if kv.reads != 1 {
		t.Errorf("durable reads = %d, want 1", kv.reads)
	}
}

// interceptKV wraps MemoryKV and runs a hook after each durable read
// completes, before the accessor sees the value.
type interceptKV struct {
	*MemoryKV
	afterRead func(key string)
}

func (c *interceptKV) Read(key string) ([]byte, bool, error) {
	value, found, err := c.MemoryKV.Read(key)
	if c.afterRead != nil {
		c.afterRead(key)
	}
	return value, found, err
}

// TestAccessor_PutDuringReadThrough verifies that a Put landing while a
// read-through is in flight wins: the slower durable read must not overwrite
// the fresher cache entry, or the cache stays behind the durable store until
// the next Put.
func TestAccessor_PutDuringReadThrough(t *testing.T) {
	kv := &interceptKV{MemoryKV: NewMemoryKV()}
	if err := kv.Write("k", []byte(`"old"`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	acc := NewAccessor(kv)

	kv.afterRead = func(key string) {
		kv.afterRead = nil
		if err := acc.Put("k", []byte(`"new"`)); err != nil {
			t.Fatalf("concurrent Put: %v", err)
		}
	}

	value, err := acc.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(value, []byte(`"new"`)) {
		t.Errorf("Get during Put = %q, want %q", value, `"new"`)
	}

	value, err = acc.Get("k")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if !bytes.Equal(value, []byte(`"new"`)) {
		t.Errorf("Get after Put = %q, want %q", value, `"new"`)
	}
}

// TestAccessor_DeleteDuringReadThrough verifies that a Delete landing while a
// read-through is in flight is not undone: the stale value must not be cached,
// so the next Get observes the deletion.
func TestAccessor_DeleteDuringReadThrough(t *testing.T) {
	kv := &interceptKV{MemoryKV: NewMemoryKV()}
	if err := kv.Write("k", []byte(`"old"`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	acc := NewAccessor(kv)

	kv.afterRead = func(key string) {
		kv.afterRead = nil
		if err := acc.Delete("k"); err != nil {
			t.Fatalf("concurrent Delete: %v", err)
		}
	}

	if _, err := acc.Get("k"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	value, err := acc.Get("k")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if value != nil {
		t.Errorf("Get after Delete = %q, want nil", value)
	}
}

// TestAccessor_Delete verifies that Delete clears both layers.
func TestAccessor_Delete(t *testing.T) {
	kv := NewMemoryKV()
	acc := NewAccessor(kv)

	if err := acc.Put("k", []byte(`1`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := acc.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, found, _ := kv.Read("k"); found {
		t.Error("durable store still has the key after Delete")
	}
	value, err := acc.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != nil {
		t.Errorf("Get after Delete = %q, want nil", value)
	}
}

// TestAccessor_JSONRoundTrip verifies the typed helpers and that GetJSON
// reports absence without touching dst.
func TestAccessor_JSONRoundTrip(t *testing.T) {
	acc := NewAccessor(NewMemoryKV())

	in := map[string]int{"a": 1, "b": 2}
	if err := acc.PutJSON("m", in); err != nil {
		t.Fatalf("PutJSON: %v", err)
	}

	out := map[string]int{}
	found, err := acc.GetJSON("m", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !found {
		t.Fatal("GetJSON found = false, want true")
	}
	if out["a"] != 1 || out["b"] != 2 || len(out) != 2 {
		t.Errorf("GetJSON = %v, want %v", out, in)
	}

	untouched := map[string]int{"keep": 9}
	found, err = acc.GetJSON("missing", &untouched)
	if err != nil {
		t.Fatalf("GetJSON missing: %v", err)
	}
	if found {
		t.Error("GetJSON missing found = true, want false")
	}
	if untouched["keep"] != 9 {
		t.Error("GetJSON modified dst on absence")
	}
}
