package loaders

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/aeonrender/photon/pkg/core"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}

// ImageData contains loaded image data as a flat, row-major Vec3 array in
// linear [0,1] color.
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a raster image (PNG, JPEG, BMP, TIFF, or Radiance HDR)
// and converts it to a Vec3 color array. Format is auto-detected from the
// file's magic bytes, except HDR, which is identified by its ".hdr"/".pic"
// extension since RGBE has no distinctive binary signature the stdlib
// image.Decode registry can sniff.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if isHDRPath(filename) {
		return decodeHDR(file)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

func isHDRPath(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".hdr") || strings.HasSuffix(lower, ".pic")
}

// decodeHDR reads a Radiance RGBE (".hdr"/".pic") image: a text header
// terminated by a blank line, a "-Y height +X width" resolution line, then
// either flat or run-length-encoded scanlines of 4-byte (r,g,b,e) pixels.
// There is no ecosystem Go decoder for this format in the pack (checked:
// neither golang.org/x/image nor any example repo's dependencies carry
// one), so this reader is hand-written, justified in DESIGN.md.
func decodeHDR(r *os.File) (*ImageData, error) {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("hdr: unexpected end of header: %w", err)
		}
		if strings.TrimRight(line, "\r\n") == "" {
			break
		}
	}

	resLine, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("hdr: missing resolution line: %w", err)
	}
	fields := strings.Fields(resLine)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return nil, fmt.Errorf("hdr: unsupported resolution line %q", resLine)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("hdr: invalid height %q: %w", fields[1], err)
	}
	width, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("hdr: invalid width %q: %w", fields[3], err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("hdr: invalid dimensions %dx%d", width, height)
	}

	pixels := make([]core.Vec3, width*height)
	scanline := make([]byte, width*4)

	for y := 0; y < height; y++ {
		if err := readHDRScanline(br, scanline, width); err != nil {
			return nil, fmt.Errorf("hdr: scanline %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			pixels[y*width+x] = rgbeToVec3(scanline[x*4], scanline[x*4+1], scanline[x*4+2], scanline[x*4+3])
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

// readHDRScanline fills dst (len == width*4) with one scanline's RGBE
// bytes, transparently handling both the legacy flat encoding and the
// "new" run-length-encoded format (marker pixel 2,2,hi,lo).
func readHDRScanline(br *bufio.Reader, dst []byte, width int) error {
	if width < 8 || width > 0x7fff {
		return readHDRFlat(br, dst, width)
	}

	header := make([]byte, 4)
	if _, err := readFull(br, header); err != nil {
		return err
	}
	if header[0] != 2 || header[1] != 2 || (int(header[2])<<8|int(header[3])) != width {
		// Not RLE-marked: treat header as the first pixel of a flat scanline.
		copy(dst[0:4], header)
		return readHDRFlat(br, dst[4:], width-1)
	}

	for channel := 0; channel < 4; channel++ {
		x := 0
		for x < width {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				n := int(count) - 128
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < n; i++ {
					dst[(x+i)*4+channel] = value
				}
				x += n
			} else {
				n := int(count)
				buf := make([]byte, n)
				if _, err := readFull(br, buf); err != nil {
					return err
				}
				for i := 0; i < n; i++ {
					dst[(x+i)*4+channel] = buf[i]
				}
				x += n
			}
		}
	}
	return nil
}

func readHDRFlat(br *bufio.Reader, dst []byte, width int) error {
	_, err := readFull(br, dst[:width*4])
	return err
}

func readFull(br *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := br.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// rgbeToVec3 decodes one RGBE-encoded pixel into linear radiance. Exponent
// 0 is the hard-coded "black" case the format reserves.
func rgbeToVec3(r, g, b, e byte) core.Vec3 {
	if e == 0 {
		return core.Vec3{}
	}
	scale := math.Ldexp(1.0, int(e)-(128+8))
	return core.NewVec3(float64(r)*scale, float64(g)*scale, float64(b)*scale)
}
