package media

import "context"

// Kind classifies an uploaded asset
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Asset is the durable result of an upload
type Asset struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"` // seconds, videos only
}

// Storage uploads local files to durable storage and deletes previously
// uploaded assets by their returned URL. Delete is best-effort at call
// sites: a failed cleanup never blocks the primary mutation.
type Storage interface {
	Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	Delete(ctx context.Context, rawURL string) error
}
