// Package palette stores color sequences as RIFF PAL files and as
// one-row strip images.
package palette

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/esimov/imalgo"
	"golang.org/x/image/riff"
)

/*
The data chunk holds a LOGPALETTE:

	WORD         palVersion;
	WORD         palNumEntries;
	PALETTEENTRY palPalEntry[palNumEntries]; // R, G, B, flags
*/

const palVersion = 3

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// Read decodes the first palette of a RIFF PAL stream as RGB colors.
func Read(r io.Reader) ([]imalgo.Color8u, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	for {
		id, _, data, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("no palette chunk in RIFF stream")
			}
			return nil, fmt.Errorf("could not read chunk: %w", err)
		}
		if id == dataType {
			return readPalette(data)
		}
	}
}

func readPalette(r io.Reader) ([]imalgo.Color8u, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}

	if ver := binary.BigEndian.Uint16(hdr[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %d", ver)
	}

	count := int(binary.LittleEndian.Uint16(hdr[2:]))
	res := make([]imalgo.Color8u, count)
	var entry [4]byte
	for i := range res {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, fmt.Errorf("could not read color %d/%d: %w", i, count, err)
		}
		res[i] = imalgo.RGB(entry[0], entry[1], entry[2])
	}
	return res, nil
}

// Write encodes colors as a single palette RIFF PAL stream.
// Single channel colors are stored as equal RGB components.
func Write(w io.Writer, colors []imalgo.Color8u) error {
	if len(colors) > 0xffff {
		return fmt.Errorf("too many colors for a palette: %d", len(colors))
	}

	chunkSize := 4 + len(colors)*4
	buf := make([]byte, 0, 12+8+chunkSize)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunkSize))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkSize))
	buf = binary.BigEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(colors)))

	for _, c := range colors {
		r, g, b := rgbOf(c)
		buf = append(buf, r, g, b, 0x00)
	}

	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("could not write palette: %w", err)
	} else if n != len(buf) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(buf))
	}
	return nil
}

func rgbOf(c imalgo.Color8u) (uint8, uint8, uint8) {
	if c.Channels() == 1 {
		v := c.At(0)
		return v, v, v
	}
	return c.At(0), c.At(1), c.At(2)
}
