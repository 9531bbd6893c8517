package pipeline

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// File describes one user-supplied image. The byte source is opened lazily
// through Open so a batch can be assembled without holding file handles.
type File struct {
	Name     string
	Size     int64
	MIMEType string
	Open     func() (io.ReadCloser, error)
}

// FileFromPath builds a File backed by the filesystem. The MIME type is
// derived from the extension; size from os.Stat.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}

	return File{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FileFromBytes builds a File backed by an in-memory buffer.
func FileFromBytes(name, mimeType string, data []byte) File {
	return File{
		Name:     name,
		Size:     int64(len(data)),
		MIMEType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// ValidationResult reports whether a file passed policy checks. Errors holds
// one human-readable entry per violated rule, in check order.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ProcessedImage is produced for every file that passed validation and
// yielded a preview.
type ProcessedImage struct {
	File       File
	PreviewURI string
	Name       string
	Size       int64
	MIMEType   string
}

// UploadResult records the outcome of one upload attempt. Err is nil on
// success, in which case URL holds the simulated server location.
type UploadResult struct {
	Filename string
	URL      string
	Size     int64
	UploadID string
	Err      error
}

// Failed reports whether the attempt ended in error.
func (r UploadResult) Failed() bool {
	return r.Err != nil
}

type Options struct {
	// YieldEvery controls how many files are processed between cooperative
	// yields to the scheduler. Zero means the default of 10.
	YieldEvery int
	// PrivacyScan enables EXIF inspection of accepted files.
	PrivacyScan bool
}

type Summary struct {
	Total        int
	Accepted     int
	Rejected     int
	Errors       int
	PrivacyFlags int
	BytesEncoded int64
}

type ProgressUpdate struct {
	TotalDelta        int
	AcceptedDelta     int
	RejectedDelta     int
	ErrorDelta        int
	PrivacyFlagDelta  int
	BytesEncodedDelta int64
}
