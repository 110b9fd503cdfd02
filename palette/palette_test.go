package palette

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/esimov/imalgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette_ShouldWriteRIFFLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []imalgo.Color8u{
		imalgo.RGB[uint8](1, 2, 3),
		imalgo.Gray[uint8](9),
	}))

	data := buf.Bytes()
	require.Len(t, data, 12+8+4+2*4)
	assert.Equal(t, []byte("RIFF"), data[0:4])
	assert.Equal(t, uint32(len(data)-8), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, []byte("PAL data"), data[8:16])
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, []byte{0, 3, 2, 0}, data[20:24])
	assert.Equal(t, []byte{1, 2, 3, 0, 9, 9, 9, 0}, data[24:])
}

func TestPalette_ShouldReadWrittenColors(t *testing.T) {
	colors := []imalgo.Color8u{
		imalgo.RGB[uint8](255, 0, 0),
		imalgo.RGB[uint8](0, 128, 64),
		imalgo.RGB[uint8](7, 7, 7),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, colors))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, colors, got)
}

func TestPalette_ShouldRejectForeignRIFF(t *testing.T) {
	data := []byte("RIFF\x04\x00\x00\x00WAVE")
	_, err := Read(bytes.NewReader(data))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader([]byte("nope")))
	assert.Error(t, err)
}

func TestPalette_ShouldRejectUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []imalgo.Color8u{imalgo.Gray[uint8](1)}))
	data := buf.Bytes()
	data[21] = 4

	_, err := Read(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestStrip_ShouldRoundTripColors(t *testing.T) {
	colors := []imalgo.Color8u{
		imalgo.RGB[uint8](10, 20, 30),
		imalgo.RGB[uint8](40, 50, 60),
	}

	img, err := ToStrip(colors, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 4, img.Height())
	assert.Equal(t, uint8(60), img.At(3, 1, 2))

	assert.Equal(t, colors, FromStrip(img))
}

func TestStrip_ShouldKeepGrayColors(t *testing.T) {
	img, err := ToStrip([]imalgo.Color8u{imalgo.Gray[uint8](5), imalgo.Gray[uint8](6)}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, img.Channels())
	assert.Equal(t, []imalgo.Color8u{imalgo.Gray[uint8](5), imalgo.Gray[uint8](6)}, FromStrip(img))
}

func TestStrip_ShouldRejectInvalidInput(t *testing.T) {
	_, err := ToStrip(nil, 2)
	assert.Error(t, err)

	_, err = ToStrip([]imalgo.Color8u{imalgo.Gray[uint8](1)}, 0)
	assert.Error(t, err)

	_, err = ToStrip([]imalgo.Color8u{imalgo.Gray[uint8](1), imalgo.RGB[uint8](1, 2, 3)}, 1)
	assert.Error(t, err)
}
