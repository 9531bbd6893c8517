package pipeline

import (
	"runtime"

	"github.com/rs/zerolog"

	"pixlift/pkg/imgutil"
)

// DefaultYieldEvery is how many files are processed between cooperative
// yields to the scheduler.
const DefaultYieldEvery = 10

// Processor validates and previews batches of image files.
type Processor struct {
	policy Policy
	opts   Options
	log    zerolog.Logger

	// yield is called after every opts.YieldEvery files so a large batch
	// cannot monopolize the hosting goroutine's scheduling slot.
	yield func()
}

func NewProcessor(policy Policy, opts Options, log zerolog.Logger) *Processor {
	if opts.YieldEvery <= 0 {
		opts.YieldEvery = DefaultYieldEvery
	}
	return &Processor{
		policy: policy,
		opts:   opts,
		log:    log,
		yield:  runtime.Gosched,
	}
}

// Process runs every file through validation and preview generation in input
// order. Files that fail either step are logged and skipped; the batch never
// aborts on a single bad file. The returned images are an order-preserving
// subsequence of the input. Progress deltas are streamed to updates when it
// is non-nil. Once started, a batch runs to completion.
func (p *Processor) Process(files []File, updates chan<- ProgressUpdate) (Summary, []ProcessedImage, error) {
	summary := Summary{}
	var images []ProcessedImage

	send := func(u ProgressUpdate) {
		if updates != nil {
			updates <- u
		}
	}

	for i, file := range files {
		summary.Total++
		send(ProgressUpdate{TotalDelta: 1})

		if res := Validate(file, p.policy); !res.Valid {
			summary.Rejected++
			p.log.Warn().
				Str("file", file.Name).
				Strs("errors", res.Errors).
				Msg("file rejected")
			send(ProgressUpdate{RejectedDelta: 1})
			p.maybeYield(i)
			continue
		}

		uri, data, err := previewData(file)
		if err != nil {
			summary.Errors++
			p.log.Error().Str("file", file.Name).Err(err).Msg("preview failed")
			send(ProgressUpdate{ErrorDelta: 1})
			p.maybeYield(i)
			continue
		}

		p.inspect(file, data, &summary, send)

		images = append(images, ProcessedImage{
			File:       file,
			PreviewURI: uri,
			Name:       file.Name,
			Size:       file.Size,
			MIMEType:   file.MIMEType,
		})
		summary.Accepted++
		summary.BytesEncoded += int64(len(data))
		p.log.Debug().Str("file", file.Name).Int("bytes", len(data)).Msg("file accepted")
		send(ProgressUpdate{AcceptedDelta: 1, BytesEncodedDelta: int64(len(data))})

		p.maybeYield(i)
	}

	return summary, images, nil
}

func (p *Processor) maybeYield(index int) {
	if index%p.opts.YieldEvery == p.opts.YieldEvery-1 {
		p.yield()
	}
}

// inspect runs the diagnostic-only content checks on an accepted file:
// declared-vs-sniffed MIME agreement and, when enabled, the EXIF privacy
// scan. Neither check can reject a file.
func (p *Processor) inspect(file File, data []byte, summary *Summary, send func(ProgressUpdate)) {
	kind, err := imgutil.SniffBytes(data)
	if err != nil || kind == imgutil.KindUnknown {
		return
	}

	if !kind.MatchesMIME(file.MIMEType) {
		p.log.Warn().
			Str("file", file.Name).
			Str("declared", file.MIMEType).
			Str("sniffed", kind.MIME()).
			Msg("declared type disagrees with content")
	}

	if !p.opts.PrivacyScan {
		return
	}
	if kind != imgutil.KindJPEG && kind != imgutil.KindTIFF {
		return
	}

	report, err := scanPrivacy(data)
	if err != nil {
		p.log.Debug().Str("file", file.Name).Err(err).Msg("privacy scan failed")
		return
	}
	if report.Flagged() {
		summary.PrivacyFlags++
		p.log.Warn().
			Str("file", file.Name).
			Strs("categories", report.Categories()).
			Msg("identifying metadata present")
		send(ProgressUpdate{PrivacyFlagDelta: 1})
	}
}
