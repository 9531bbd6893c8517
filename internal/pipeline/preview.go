package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CreatePreview reads the file's full content and returns it as a
// self-contained data URI mirroring the file's declared MIME type. The read
// is single-shot: one URI or one error, never both.
func CreatePreview(f File) (string, error) {
	uri, _, err := previewData(f)
	return uri, err
}

// previewData also returns the raw bytes so the batch processor can run its
// content diagnostics without a second read.
func previewData(f File) (string, []byte, error) {
	data, err := readAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("preview %s: %w", f.Name, err)
	}
	return EncodeDataURI(f.MIMEType, data), data, nil
}

// EncodeDataURI renders content as a data:<mime>;base64,<payload> string.
func EncodeDataURI(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

func readAll(f File) ([]byte, error) {
	if f.Open == nil {
		return nil, errors.New("file has no byte source")
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
