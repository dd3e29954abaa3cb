package opener

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"fivec_analysis/internal/ports"
)

// CompoundOpener routes a dataset path to the right backend: https URLs to
// HTTP, s3:// URLs to S3, bare keys to the default bucket, and plain file
// names to the local directory when one is configured.
type CompoundOpener struct {
	HTTP  *HTTPOpener
	S3    *S3Opener
	Local *LocalOpener

	DefaultBucket string
}

func NewCompoundOpener(httpOp *HTTPOpener, s3Op *S3Opener, localOp *LocalOpener, defaultBucket string) *CompoundOpener {
	return &CompoundOpener{
		HTTP:          httpOp,
		S3:            s3Op,
		Local:         localOp,
		DefaultBucket: defaultBucket,
	}
}

func (c *CompoundOpener) Open(ctx context.Context, filePath string) (io.ReadCloser, ports.Meta, error) {
	fp := strings.TrimSpace(filePath)

	switch {
	case strings.HasPrefix(fp, "http://") || strings.HasPrefix(fp, "https://"):
		if c.HTTP == nil {
			return nil, ports.Meta{}, errors.New("http opener not configured")
		}
		return c.HTTP.Open(ctx, fp)

	case strings.HasPrefix(fp, "s3://"):
		if c.S3 == nil {
			return nil, ports.Meta{}, errors.New("s3 opener not configured")
		}
		bkt, key, err := parseS3URL(fp)
		if err != nil {
			return nil, ports.Meta{}, err
		}
		return c.S3.Open(ctx, bkt, key)

	case strings.HasPrefix(fp, "file://"):
		if c.Local == nil {
			return nil, ports.Meta{}, errors.New("local opener not configured")
		}
		return c.Local.Open(ctx, strings.TrimPrefix(fp, "file://"))

	default:
		if c.S3 != nil && c.DefaultBucket != "" {
			return c.S3.Open(ctx, c.DefaultBucket, fp)
		}
		if c.Local != nil {
			return c.Local.Open(ctx, fp)
		}
		return nil, ports.Meta{}, errors.New("no opener for path: pass s3://bucket/key, https url, or file name")
	}
}

func parseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", errors.New("scheme must be s3")
	}
	bucket = u.Host
	key = path.Clean(strings.TrimPrefix(u.Path, "/"))
	if bucket == "" || key == "" || key == "." || key == "/" {
		return "", "", errors.New("empty bucket or key")
	}
	return bucket, key, nil
}
