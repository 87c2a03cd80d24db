package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrInvalidPPM is returned for malformed or unsupported PPM input
var ErrInvalidPPM = errors.New("invalid PPM image")

// MaxValue is the only channel maximum written and accepted
const MaxValue = 255

// MaxPixels caps the image size DecodePPM will allocate for
const MaxPixels = 1 << 26

// EncodePPM writes pix as a binary PPM: the header "P6 <w> <h> 255\n"
// followed by width*height*3 row-major RGB bytes.
func EncodePPM(w io.Writer, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidPPM, width, height)
	}
	if len(pix) != width*height*3 {
		return fmt.Errorf("%w: have %d bytes, %dx%d needs %d", ErrInvalidPPM, len(pix), width, height, width*height*3)
	}
	if _, err := fmt.Fprintf(w, "P6 %d %d %d\n", width, height, MaxValue); err != nil {
		return err
	}
	_, err := w.Write(pix)
	return err
}

// Image is a decoded PPM
type Image struct {
	Width    int
	Height   int
	MaxValue int
	Pix      []byte
}

// DecodePPM reads a binary (P6) PPM with 8-bit channels
func DecodePPM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q, want P6", ErrInvalidPPM, magic)
	}

	var fields [3]int
	for i, name := range []string{"width", "height", "max value"} {
		token, err := readToken(br)
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(token)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidPPM, name, token)
		}
		fields[i] = v
	}
	img := &Image{Width: fields[0], Height: fields[1], MaxValue: fields[2]}
	if img.Width > MaxPixels/img.Height {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d pixels", ErrInvalidPPM, img.Width, img.Height, MaxPixels)
	}
	if img.MaxValue > MaxValue {
		return nil, fmt.Errorf("%w: 16-bit samples (max value %d) are not supported", ErrInvalidPPM, img.MaxValue)
	}

	// readToken consumed exactly one whitespace byte after the max value
	img.Pix = make([]byte, img.Width*img.Height*3)
	if _, err := io.ReadFull(br, img.Pix); err != nil {
		return nil, fmt.Errorf("%w: pixel data: %v", ErrInvalidPPM, err)
	}
	return img, nil
}

// readToken returns the next whitespace-delimited header token, skipping
// comments, and consumes the single whitespace byte that ends it.
func readToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("%w: truncated header", ErrInvalidPPM)
			}
			return "", err
		}
		switch {
		case c == '#' && len(token) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("%w: truncated header", ErrInvalidPPM)
			}
		case isSpace(c):
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, c)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
