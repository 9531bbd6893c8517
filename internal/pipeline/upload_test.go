package pipeline

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploader(delay time.Duration) (*Uploader, *[]time.Duration) {
	u := NewUploader(delay, zerolog.Nop())
	var slept []time.Duration
	u.sleep = func(d time.Duration) { slept = append(slept, d) }
	return u, &slept
}

func TestUploadSuccess(t *testing.T) {
	payload := []byte("fake jpeg bytes")
	f := FileFromBytes("cat.jpg", "image/jpeg", payload)

	u, slept := newTestUploader(0)
	res, err := u.Upload(f)
	require.NoError(t, err)

	assert.False(t, res.Failed())
	assert.Equal(t, "cat.jpg", res.Filename)
	assert.Equal(t, int64(len(payload)), res.Size)

	_, err = uuid.Parse(res.UploadID)
	assert.NoError(t, err)

	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(res.URL, prefix))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(res.URL, prefix))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)

	// Default latency applies when none was configured.
	require.Len(t, *slept, 1)
	assert.Equal(t, DefaultUploadDelay, (*slept)[0])
}

func TestUploadConfigurableDelay(t *testing.T) {
	u, slept := newTestUploader(25 * time.Millisecond)
	_, err := u.Upload(FileFromBytes("a.png", "image/png", []byte{1}))
	require.NoError(t, err)

	require.Len(t, *slept, 1)
	assert.Equal(t, 25*time.Millisecond, (*slept)[0])
}

func TestUploadReadFailure(t *testing.T) {
	u, _ := newTestUploader(0)
	res, err := u.Upload(unreadableFile("lost.png"))

	require.Error(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, "lost.png", res.Filename)
	assert.Contains(t, err.Error(), "lost.png")
}

func TestUploadAllIsolatesFailures(t *testing.T) {
	files := make([]File, 0, 5)
	for i := 0; i < 5; i++ {
		if i == 2 {
			files = append(files, unreadableFile("broken.png"))
			continue
		}
		files = append(files, FileFromBytes(fmt.Sprintf("ok-%d.png", i), "image/png", []byte{byte(i)}))
	}

	u, _ := newTestUploader(0)
	results := u.UploadAll(files, nil)

	require.Len(t, results, 5)
	for i, res := range results {
		assert.Equal(t, files[i].Name, res.Filename, "result %d out of order", i)
		if i == 2 {
			assert.True(t, res.Failed())
			assert.NotEmpty(t, res.Err.Error())
		} else {
			assert.False(t, res.Failed())
			assert.NotEmpty(t, res.URL)
		}
	}
}

func TestUploadAllStreamsProgress(t *testing.T) {
	files := []File{
		FileFromBytes("a.png", "image/png", []byte{1, 2}),
		unreadableFile("b.png"),
	}

	updates := make(chan ProgressUpdate, 16)
	u, _ := newTestUploader(0)
	results := u.UploadAll(files, updates)
	close(updates)

	require.Len(t, results, 2)

	var got ProgressUpdate
	for upd := range updates {
		got.TotalDelta += upd.TotalDelta
		got.AcceptedDelta += upd.AcceptedDelta
		got.ErrorDelta += upd.ErrorDelta
	}
	assert.Equal(t, 2, got.TotalDelta)
	assert.Equal(t, 1, got.AcceptedDelta)
	assert.Equal(t, 1, got.ErrorDelta)
}

func TestUploadAllEmptyBatch(t *testing.T) {
	u, slept := newTestUploader(0)
	results := u.UploadAll(nil, nil)

	assert.Empty(t, results)
	assert.Empty(t, *slept)
}
