package pipeline

import (
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreviewRoundTrip(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3, 4}
	f := FileFromBytes("dot.png", "image/png", payload)

	uri, err := CreatePreview(f)
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix), "got %q", uri)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCreatePreviewEmptyFile(t *testing.T) {
	f := FileFromBytes("empty.gif", "image/gif", nil)

	uri, err := CreatePreview(f)
	require.NoError(t, err)
	assert.Equal(t, "data:image/gif;base64,", uri)
}

func TestCreatePreviewReadFailure(t *testing.T) {
	f := File{
		Name:     "gone.jpg",
		MIMEType: "image/jpeg",
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("source revoked")
		},
	}

	_, err := CreatePreview(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.jpg")
	assert.Contains(t, err.Error(), "source revoked")
}

func TestCreatePreviewNoByteSource(t *testing.T) {
	_, err := CreatePreview(File{Name: "nil.png", MIMEType: "image/png"})
	require.Error(t, err)
}

func TestEncodeDataURI(t *testing.T) {
	uri := EncodeDataURI("image/webp", []byte("abc"))
	assert.Equal(t, "data:image/webp;base64,YWJj", uri)
}
