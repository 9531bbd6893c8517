package imgutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0, 0, 0, 0, 0}, KindJPEG},
		{"png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}, KindPNG},
		{"gif87a", []byte("GIF87a\x01\x00\x01\x00\x00\x00"), KindGIF},
		{"gif89a", []byte("GIF89a\x01\x00\x01\x00\x00\x00"), KindGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBP"), KindWebP},
		{"tiff le", []byte{0x49, 0x49, 0x2a, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}, KindTIFF},
		{"tiff be", []byte{0x4d, 0x4d, 0x00, 0x2a, 0, 0, 0, 0, 0, 0, 0, 0}, KindTIFF},
		{"unknown", []byte("not an image"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := DetectHeader(tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	_, err := DetectHeader([]byte{0xff, 0xd8})
	assert.Error(t, err)
}

func TestSniffReader(t *testing.T) {
	data := append([]byte("RIFF\x10\x00\x00\x00WEBP"), bytes.Repeat([]byte{0}, 16)...)

	kind, err := SniffReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, KindWebP, kind)
}

func TestKindMIME(t *testing.T) {
	assert.Equal(t, "image/jpeg", KindJPEG.MIME())
	assert.Equal(t, "image/png", KindPNG.MIME())
	assert.Equal(t, "image/gif", KindGIF.MIME())
	assert.Equal(t, "image/webp", KindWebP.MIME())
	assert.Equal(t, "image/tiff", KindTIFF.MIME())
	assert.Equal(t, "", KindUnknown.MIME())
}

func TestMatchesMIME(t *testing.T) {
	assert.True(t, KindJPEG.MatchesMIME("image/jpeg"))
	assert.True(t, KindJPEG.MatchesMIME("image/jpg"), "jpg alias must match jpeg content")
	assert.False(t, KindJPEG.MatchesMIME("image/png"))
	assert.True(t, KindPNG.MatchesMIME("image/png"))
	assert.False(t, KindPNG.MatchesMIME("image/jpg"))
}
