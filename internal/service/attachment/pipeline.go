// internal/service/attachment/pipeline.go
package attachment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/storage"

	"go.uber.org/zap"
)

// MaxFileSize is the upload limit; a file of exactly this size is allowed.
const MaxFileSize = 15 * 1024 * 1024

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":   true, // .xlsx
	"application/vnd.ms-excel":                                            true, // .xls
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
	"application/msword":             true, // .doc
	"image/jpeg":                     true,
	"image/jpg":                      true,
	"image/png":                      true,
	"image/webp":                     true,
	"application/postscript":         true, // .ai
	"image/vnd.adobe.photoshop":      true, // .psd
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".xlsx": true,
	".xls":  true,
	".docx": true,
	".doc":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".ai":   true,
	".psd":  true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Pipeline converts a user-selected file into a durable public URL before
// the owning quote is persisted. Upload failures degrade gracefully: the
// quote proceeds without the attachment.
type Pipeline struct {
	store  storage.BlobStore
	logger *zap.Logger
	now    func() time.Time
}

func NewPipeline(store storage.BlobStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Validate enforces the size limit and the type allow-list. Type is
// checked by both extension and declared content type, and either match
// passes: browsers mislabel content types often enough that the extension
// has to be able to rescue a good file, and vice versa.
func Validate(fileName, contentType string, size int64) error {
	if size > MaxFileSize {
		return fmt.Errorf("file is %.2f MB, limit is 15 MB: %w",
			float64(size)/(1024*1024), xerrors.ErrFileTooLarge)
	}

	lower := strings.ToLower(fileName)
	validExt := false
	if dot := strings.LastIndex(lower, "."); dot >= 0 {
		validExt = allowedExtensions[lower[dot:]]
	}
	validMime := allowedContentTypes[strings.ToLower(strings.TrimSpace(contentType))]

	if !validExt && !validMime {
		return fmt.Errorf("%s: %w", fileName, xerrors.ErrUnsupportedFileType)
	}

	return nil
}

// Validate exposes the package-level validation on the pipeline so one
// value carries the whole upload surface.
func (p *Pipeline) Validate(fileName, contentType string, size int64) error {
	return Validate(fileName, contentType, size)
}

// Upload stores the file and returns its public URL, or "" when storage
// fails. It never returns an error: attachment persistence is a secondary
// effect and must not block quote creation. The object key is the
// sanitized filename behind a millisecond timestamp, so re-uploads land on
// fresh keys and nothing is ever overwritten.
func (p *Pipeline) Upload(ctx context.Context, fileName, contentType string, data []byte) string {
	key := p.objectKey(fileName)

	if err := p.store.Upload(ctx, key, data, contentType); err != nil {
		p.logger.Error("attachment upload failed, continuing without attachment",
			zap.String("file_name", fileName),
			zap.String("key", key),
			zap.Error(err),
		)
		return ""
	}

	url := p.store.PublicURL(key)
	p.logger.Info("attachment uploaded",
		zap.String("key", key),
		zap.String("url", url),
		zap.Int("size", len(data)),
	)

	return url
}

func (p *Pipeline) objectKey(fileName string) string {
	sanitized := unsafeChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf("quotes/%d_%s", p.now().UnixMilli(), sanitized)
}
