package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultUploadDelay models network latency for a simulated transfer.
const DefaultUploadDelay = 500 * time.Millisecond

// Uploader simulates transferring files to a server. No real transport is
// involved: the "server" location reported back is the file's own data URI.
type Uploader struct {
	delay time.Duration
	log   zerolog.Logger

	sleep func(time.Duration)
}

func NewUploader(delay time.Duration, log zerolog.Logger) *Uploader {
	if delay <= 0 {
		delay = DefaultUploadDelay
	}
	return &Uploader{
		delay: delay,
		log:   log,
		sleep: time.Sleep,
	}
}

// Upload simulates a single transfer: wait out the artificial latency,
// re-read the byte source, and report the resulting data URI as the upload
// location. It fails only when the read fails.
func (u *Uploader) Upload(f File) (UploadResult, error) {
	u.sleep(u.delay)

	data, err := readAll(f)
	if err != nil {
		err = fmt.Errorf("upload %s: %w", f.Name, err)
		return UploadResult{Filename: f.Name, Err: err}, err
	}

	res := UploadResult{
		Filename: f.Name,
		URL:      EncodeDataURI(f.MIMEType, data),
		Size:     f.Size,
		UploadID: uuid.NewString(),
	}
	u.log.Debug().
		Str("file", f.Name).
		Str("upload_id", res.UploadID).
		Int64("size", f.Size).
		Msg("upload complete")
	return res, nil
}

// UploadAll uploads every file in order, capturing per-file failures instead
// of propagating them. The result always has exactly one entry per input
// file, in input order, mixing successes and failures freely.
func (u *Uploader) UploadAll(files []File, updates chan<- ProgressUpdate) []UploadResult {
	results := make([]UploadResult, 0, len(files))

	for _, f := range files {
		if updates != nil {
			updates <- ProgressUpdate{TotalDelta: 1}
		}

		res, err := u.Upload(f)
		if err != nil {
			u.log.Error().Str("file", f.Name).Err(err).Msg("upload failed")
			if updates != nil {
				updates <- ProgressUpdate{ErrorDelta: 1}
			}
		} else if updates != nil {
			updates <- ProgressUpdate{AcceptedDelta: 1, BytesEncodedDelta: res.Size}
		}

		results = append(results, res)
	}

	return results
}
