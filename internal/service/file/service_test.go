package file

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentTypeRecorder struct {
	storage.FileStorage
	contentTypes map[string]string
}

func (r *contentTypeRecorder) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	r.contentTypes[path] = contentType
	return r.FileStorage.Upload(ctx, file, path, contentType)
}

func TestUploadLeaveAttachment(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads", []byte("link-key"))
	require.NoError(t, err)
	recorder := &contentTypeRecorder{FileStorage: local, contentTypes: map[string]string{}}

	clock := calendar.NewFixedClock(time.Unix(1710216000, 0))
	svc := NewFileService(recorder, clock)

	tests := []struct {
		filename    string
		ext         string
		contentType string
	}{
		{filename: "Certificate.PDF", ext: ".pdf", contentType: "application/pdf"},
		{filename: "scan.png", ext: ".png", contentType: "image/png"},
		{filename: "notes", ext: "", contentType: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			key, err := svc.UploadLeaveAttachment(ctx, "user-1", strings.NewReader("body"), tt.filename)
			require.NoError(t, err)

			pattern := `^leave/user-1/[0-9a-f-]{36}-1710216000` + regexp.QuoteMeta(tt.ext) + `$`
			assert.Regexp(t, pattern, key)
			assert.Equal(t, tt.contentType, recorder.contentTypes[key])

			exists, err := svc.Exists(ctx, key)
			require.NoError(t, err)
			assert.True(t, exists)

			url, err := svc.GetFileURL(ctx, key, time.Minute)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"+key+"?token="))

			require.NoError(t, svc.DeleteFile(ctx, key))
			exists, err = svc.Exists(ctx, key)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}
