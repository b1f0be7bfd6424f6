package core

import "testing"

func TestNewAABBFromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 4, 0), NewVec3(0, 0, 5))

	if box.Min != NewVec3(-1, -2, 0) {
		t.Errorf("Expected min (-1, -2, 0), got %v", box.Min)
	}
	if box.Max != NewVec3(1, 4, 5) {
		t.Errorf("Expected max (1, 4, 5), got %v", box.Max)
	}
	if size := box.Size(); size != NewVec3(2, 6, 5) {
		t.Errorf("Expected size (2, 6, 5), got %v", size)
	}
	if empty := NewAABBFromPoints(); empty != (AABB{}) {
		t.Errorf("Expected zero box for no points, got %v", empty)
	}
}
