package loaders

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// TensorDtype is the on-disk scalar type tag of a tensor field, matching
// the container's single-byte dtype enum.
type TensorDtype uint8

const (
	DtypeInvalid TensorDtype = 0
	DtypeUInt8   TensorDtype = 1
	DtypeInt8    TensorDtype = 2
	DtypeUInt16  TensorDtype = 3
	DtypeInt16   TensorDtype = 4
	DtypeUInt32  TensorDtype = 5
	DtypeInt32   TensorDtype = 6
	DtypeUInt64  TensorDtype = 7
	DtypeInt64   TensorDtype = 8
	DtypeFloat16 TensorDtype = 9
	DtypeFloat32 TensorDtype = 10
	DtypeFloat64 TensorDtype = 11
)

func (d TensorDtype) size() int {
	switch d {
	case DtypeUInt8, DtypeInt8:
		return 1
	case DtypeUInt16, DtypeInt16, DtypeFloat16:
		return 2
	case DtypeUInt32, DtypeInt32, DtypeFloat32:
		return 4
	case DtypeUInt64, DtypeInt64, DtypeFloat64:
		return 8
	default:
		return 0
	}
}

// TensorField is one named entry of a tensor-file container: its dtype,
// shape, and raw little-endian payload bytes.
type TensorField struct {
	Dtype TensorDtype
	Shape []int
	Data  []byte
}

// Float32s reinterprets a Float32 field's payload as a float64 slice,
// the form every Marginal2D table consumes.
func (f TensorField) Float32s() ([]float64, error) {
	if f.Dtype != DtypeFloat32 {
		return nil, fmt.Errorf("tensor field is not float32 (dtype %d)", f.Dtype)
	}
	n := len(f.Data) / 4
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(f.Data[i*4:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out, nil
}

// TensorFile is the parsed measured-BRDF container format: a header, a
// version, and a flat table of named fields with their dtype, shape, and
// payload, each read from its own stated offset.
type TensorFile struct {
	Fields map[string]TensorField
}

const tensorHeaderMagic = "tensor_file\x00"

// LoadTensorFile reads a tensor-file container from disk, validating the
// header, version, and per-field metadata before seeking to and reading
// each field's payload.
func LoadTensorFile(filename string) (*TensorFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open tensor file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat tensor file: %w", err)
	}
	if info.Size() < 12+2+4 {
		return nil, fmt.Errorf("invalid tensor file: too small")
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("failed to read tensor file header: %w", err)
	}
	if string(header) != tensorHeaderMagic {
		return nil, fmt.Errorf("invalid tensor file: bad header")
	}

	version := make([]byte, 2)
	if _, err := io.ReadFull(f, version); err != nil {
		return nil, fmt.Errorf("failed to read tensor file version: %w", err)
	}
	if version[0] != 1 || version[1] != 0 {
		return nil, fmt.Errorf("invalid tensor file: unsupported version %d.%d", version[0], version[1])
	}

	var nFields uint32
	if err := binary.Read(f, binary.LittleEndian, &nFields); err != nil {
		return nil, fmt.Errorf("failed to read tensor file field count: %w", err)
	}

	fields := make(map[string]TensorField, nFields)
	for i := uint32(0); i < nFields; i++ {
		var nameLen uint16
		if err := binary.Read(f, binary.LittleEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("failed to read field %d name length: %w", i, err)
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(f, nameBytes); err != nil {
			return nil, fmt.Errorf("failed to read field %d name: %w", i, err)
		}
		name := string(nameBytes)

		var ndim uint16
		if err := binary.Read(f, binary.LittleEndian, &ndim); err != nil {
			return nil, fmt.Errorf("failed to read field %q ndim: %w", name, err)
		}

		var dtypeByte uint8
		if err := binary.Read(f, binary.LittleEndian, &dtypeByte); err != nil {
			return nil, fmt.Errorf("failed to read field %q dtype: %w", name, err)
		}
		dtype := TensorDtype(dtypeByte)
		if dtype.size() == 0 {
			return nil, fmt.Errorf("invalid tensor file: unknown dtype %d for field %q", dtypeByte, name)
		}

		var offset uint64
		if err := binary.Read(f, binary.LittleEndian, &offset); err != nil {
			return nil, fmt.Errorf("failed to read field %q offset: %w", name, err)
		}

		shape := make([]int, ndim)
		totalSize := dtype.size()
		for d := 0; d < int(ndim); d++ {
			var dim uint64
			if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
				return nil, fmt.Errorf("failed to read field %q shape[%d]: %w", name, d, err)
			}
			shape[d] = int(dim)
			totalSize *= int(dim)
		}

		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, fmt.Errorf("failed to save stream position: %w", err)
		}

		data := make([]byte, totalSize)
		if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek to field %q payload: %w", name, err)
		}
		if _, err := io.ReadFull(f, data); err != nil {
			return nil, fmt.Errorf("failed to read field %q payload: %w", name, err)
		}

		if _, err := f.Seek(pos, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to restore stream position: %w", err)
		}

		fields[name] = TensorField{Dtype: dtype, Shape: shape, Data: data}
	}

	return &TensorFile{Fields: fields}, nil
}
