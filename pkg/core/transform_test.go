package core

import "testing"

func TestTransformPointTranslate(t *testing.T) {
	tr := Translate(NewVec3(1, 2, 3))
	got := tr.Point(NewVec3(0, 0, 0))
	if !got.Equals(NewVec3(1, 2, 3)) {
		t.Errorf("got %v, want (1,2,3)", got)
	}
}

func TestTransformInverseRoundTrip(t *testing.T) {
	tr := Translate(NewVec3(1, -2, 5)).Compose(RotateY(0.7)).Compose(Scale(NewVec3(2, 3, 0.5)))
	inv := tr.Inverse()

	p := NewVec3(1, 2, 3)
	got := inv.Point(tr.Point(p))
	if !got.Equals(p) {
		t.Errorf("round trip mismatch: got %v, want %v", got, p)
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	tr := Translate(NewVec3(10, 20, 30))
	got := tr.Vector(NewVec3(1, 0, 0))
	if !got.Equals(NewVec3(1, 0, 0)) {
		t.Errorf("translation leaked into vector transform: %v", got)
	}
}
