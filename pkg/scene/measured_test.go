package scene

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

type measuredField struct {
	name  string
	ndim  int
	dtype byte
	data  []byte
}

func float32Bytes(values ...float32) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// writeTestTensorFile writes a minimal valid measured-BRDF tensor container:
// a 2-element isotropic phi_i/theta_i grid and uniform-density 2x2 tables
// for every other required field, just enough for LoadMeasuredBSDF's shape
// validation and warp.NewMarginal2D's CDF construction to succeed.
func writeTestTensorFile(t *testing.T, filename string) {
	t.Helper()

	uniform4 := float32Bytes(1, 1, 1, 1)
	uniform16 := float32Bytes(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	uniform48 := make([]byte, 0, 48*4)
	for i := 0; i < 48; i++ {
		uniform48 = append(uniform48, float32Bytes(1)...)
	}

	fields := []struct {
		name  string
		shape []int
		dtype byte
		data  []byte
	}{
		{"theta_i", []int{2}, 10, float32Bytes(0, 1)},
		{"phi_i", []int{2}, 10, float32Bytes(0, 6.283185)},
		{"ndf", []int{2, 2}, 10, uniform4},
		{"sigma", []int{2, 2}, 10, uniform4},
		{"vndf", []int{2, 2, 2, 2}, 10, uniform16},
		{"luminance", []int{2, 2, 2, 2}, 10, uniform16},
		{"rgb", []int{2, 2, 3, 2, 2}, 10, uniform48},
		{"jacobian", []int{1}, 1, []byte{1}},
		{"description", []int{4}, 1, []byte("test")},
	}

	var header bytes.Buffer
	header.WriteString("tensor_file\x00")
	header.WriteByte(1)
	header.WriteByte(0)
	binary.Write(&header, binary.LittleEndian, uint32(len(fields)))

	headerLen := header.Len()
	for _, f := range fields {
		headerLen += 2 + len(f.name) + 2 + 1 + 8 + 8*len(f.shape)
	}

	var payload bytes.Buffer
	offsets := make([]int, len(fields))
	cursor := headerLen
	for i, f := range fields {
		offsets[i] = cursor
		payload.Write(f.data)
		cursor += len(f.data)
	}

	var out bytes.Buffer
	out.Write(header.Bytes())
	for i, f := range fields {
		binary.Write(&out, binary.LittleEndian, uint16(len(f.name)))
		out.WriteString(f.name)
		binary.Write(&out, binary.LittleEndian, uint16(len(f.shape)))
		out.WriteByte(f.dtype)
		binary.Write(&out, binary.LittleEndian, uint64(offsets[i]))
		for _, d := range f.shape {
			binary.Write(&out, binary.LittleEndian, uint64(d))
		}
	}
	out.Write(payload.Bytes())

	if err := os.WriteFile(filename, out.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write test tensor file: %v", err)
	}
}

func TestLoadMeasuredBSDFBuildsTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "material.bsdf")
	writeTestTensorFile(t, path)

	measured, err := LoadMeasuredBSDF(path)
	if err != nil {
		t.Fatalf("LoadMeasuredBSDF failed: %v", err)
	}
	if measured.Data == nil {
		t.Fatalf("expected non-nil measured data")
	}
	if !measured.Data.Isotropic {
		t.Errorf("expected a 2-sample phi_i grid to be treated as isotropic")
	}

	wi := core.NewVec3(0, 0, 1)
	eval := measured.Eval(wi, wi)
	if eval.X != eval.X || eval.Y != eval.Y || eval.Z != eval.Z {
		t.Errorf("Eval produced NaN: %v", eval)
	}
}

func TestLoadMeasuredBSDFMissingFile(t *testing.T) {
	if _, err := LoadMeasuredBSDF("does-not-exist.bsdf"); err == nil {
		t.Errorf("expected an error for a missing tensor file")
	}
}
