package hash

import "testing"

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(hello) = %s, want %s", got, want)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("exact", "c1", "c2")
	b := Fingerprint("exact", "c1", "c2")
	if a != b {
		t.Errorf("same inputs produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("fingerprint length = %d, want 16", len(a))
	}
}

func TestFingerprint_SeparatorSafe(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc"
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Error("fingerprint collides across part boundaries")
	}
}

func TestGroupID_OrderIndependent(t *testing.T) {
	a := GroupID("exact", []string{"c3", "c1", "c2"})
	b := GroupID("exact", []string{"c1", "c2", "c3"})
	if a != b {
		t.Errorf("member order changed group id: %s vs %s", a, b)
	}
}

func TestGroupID_KindDistinguishes(t *testing.T) {
	ids := []string{"c1", "c2"}
	if GroupID("exact", ids) == GroupID("similar", ids) {
		t.Error("exact and similar groups with same members must have different ids")
	}
}

func TestGroupID_DoesNotMutateInput(t *testing.T) {
	ids := []string{"c3", "c1", "c2"}
	GroupID("exact", ids)
	if ids[0] != "c3" || ids[1] != "c1" || ids[2] != "c2" {
		t.Errorf("input slice was reordered: %v", ids)
	}
}
