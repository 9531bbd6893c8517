package pipeline

import (
	"bytes"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// PrivacyReport summarizes identifying EXIF metadata found in an accepted
// file. It is diagnostic only and never affects acceptance.
type PrivacyReport struct {
	HasGPS       bool
	HasModel     bool
	HasTimestamp bool
	HasSerial    bool
}

// Flagged reports whether any identifying metadata was found.
func (r PrivacyReport) Flagged() bool {
	return r.HasGPS || r.HasModel || r.HasTimestamp || r.HasSerial
}

// Categories lists the found metadata classes in a stable order.
func (r PrivacyReport) Categories() []string {
	cats := []string{}
	if r.HasGPS {
		cats = append(cats, "GPS")
	}
	if r.HasModel {
		cats = append(cats, "Device Model")
	}
	if r.HasTimestamp {
		cats = append(cats, "Timestamp")
	}
	if r.HasSerial {
		cats = append(cats, "Serial Number")
	}
	return cats
}

func scanPrivacy(data []byte) (PrivacyReport, error) {
	report := PrivacyReport{}

	rs := bytes.NewReader(data)
	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return report, nil
		}
		return report, err
	}

	for _, tag := range tags {
		name := tag.TagName

		if strings.HasPrefix(name, "GPS") || strings.Contains(tag.IfdPath, "GPS") {
			report.HasGPS = true
		}
		if name == "Model" || name == "CameraModelName" {
			report.HasModel = true
		}
		if name == "DateTimeOriginal" || name == "DateTimeDigitized" || name == "DateTime" {
			report.HasTimestamp = true
		}
		if strings.Contains(strings.ToLower(name), "serial") {
			report.HasSerial = true
		}
	}

	return report, nil
}

func isNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
