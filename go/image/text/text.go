// Package text contains an image plain text file format encoder and decoder.
//
// A super simple format of the form:
//
// ! SKTEXTSIMPLE
// width height
// 0x000000ff 0xffffffff ...
// 0xddddddff 0xffffff88 ...
// ...
//
// Where the pixel values are encoded as 0xRRGGBBAA.
//
// Grayscale pixels can be encoded as 0xXX. The two images below are equivalent:
//
// ! SKTEXTSIMPLE
// 2 2
// 0x00 0x11
// 0xaa 0xbb
//
// ! SKTEXTSIMPLE
// 2 2
// 0x000000ff 0x111111ff
// 0xaaaaaaff 0xbbbbbbff
package text

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
)

const header = "! SKTEXTSIMPLE"

// Decode reads a SKTEXT image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != header {
		return nil, fmt.Errorf("not a valid SKTEXT file, missing %q header", header)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing dimensions in SKTEXT file")
	}
	var width, height int
	if n, err := fmt.Sscanf(scanner.Text(), "%d %d", &width, &height); err != nil || n != 2 {
		return nil, fmt.Errorf("invalid dimensions in SKTEXT file: %q", scanner.Text())
	}
	ret := image.NewNRGBA(image.Rect(0, 0, width, height))
	y := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if y >= height {
			return nil, fmt.Errorf("too many rows: %d > %d", y+1, height)
		}
		fields := strings.Fields(line)
		if len(fields) != width {
			return nil, fmt.Errorf("row %d has %d pixels, want %d", y, len(fields), width)
		}
		for x, field := range fields {
			r, g, b, a, err := parsePixel(field)
			if err != nil {
				return nil, err
			}
			offset := ret.PixOffset(x, y)
			ret.Pix[offset+0] = r
			ret.Pix[offset+1] = g
			ret.Pix[offset+2] = b
			ret.Pix[offset+3] = a
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading SKTEXT file contents: %w", err)
	}
	if y != height {
		return nil, fmt.Errorf("got %d rows, want %d", y, height)
	}
	return ret, nil
}

// parsePixel parses a single 0xRRGGBBAA or 0xXX pixel value.
func parsePixel(s string) (uint8, uint8, uint8, uint8, error) {
	if !strings.HasPrefix(s, "0x") || (len(s) != 4 && len(s) != 10) {
		return 0, 0, 0, 0, fmt.Errorf("invalid pixel format, must be 0xRRGGBBAA or 0xXX (for color or grayscale pixels, respectively), got %q", s)
	}
	pixel, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(s) == 4 {
		// Grayscale notation.
		v := uint8(pixel)
		return v, v, v, 0xff, nil
	}
	return uint8(pixel >> 24), uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel), nil
}

// Encode encodes the image in SKTEXT format.
func Encode(w io.Writer, m *image.NRGBA) error {
	width := m.Bounds().Dx()
	height := m.Bounds().Dy()
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n", header, width, height); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := m.PixOffset(m.Bounds().Min.X+x, m.Bounds().Min.Y+y)
			sep := " "
			if x == width-1 {
				sep = "\n"
			}
			_, err := fmt.Fprintf(w, "0x%02x%02x%02x%02x%s", m.Pix[offset+0], m.Pix[offset+1], m.Pix[offset+2], m.Pix[offset+3], sep)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// MustToNRGBA returns an *image.NRGBA from a given string, which is assumed
// to be an image in the SKTEXTSIMPLE "codec". It panics if the string cannot
// be processed into an image, suitable only for testing code.
func MustToNRGBA(s string) *image.NRGBA {
	img, err := Decode(strings.NewReader(strings.TrimSpace(s) + "\n"))
	if err != nil {
		// This indicates an error with the static test data.
		panic(fmt.Sprintf("Failed to decode a valid image: %s", err))
	}
	return img
}
