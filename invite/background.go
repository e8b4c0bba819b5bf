package invite

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// BackgroundKind says where a background image comes from.
type BackgroundKind int

const (
	BackgroundNone    BackgroundKind = iota // No background layer
	BackgroundAsset                         // Bundled asset, by name
	BackgroundDataURI                       // Uploaded image, inline
)

func (k BackgroundKind) String() string {
	switch k {
	case BackgroundAsset:
		return "asset"
	case BackgroundDataURI:
		return "data-uri"
	}
	return "none"
}

// DataScheme prefixes every uploaded background.
const DataScheme = "data:"

var (
	// ErrNoFile means the upload was started without a file.
	ErrNoFile = errors.New("invite: no file selected")

	// ErrBadDataURI is returned when a data URI cannot be decoded.
	ErrBadDataURI = errors.New("invite: malformed data URI")
)

// Background is the background slot. The zero value is "no background".
type Background struct {
	Kind BackgroundKind
	Ref  string // asset name or data URI
}

// AssetBackground references a bundled image by name.
func AssetBackground(name string) Background {
	return Background{Kind: BackgroundAsset, Ref: name}
}

// DataURIBackground wraps an uploaded image.
func DataURIBackground(uri string) Background {
	return Background{Kind: BackgroundDataURI, Ref: uri}
}

// ParseBackground classifies a raw slot value: empty or "none" clears the
// background, a data: prefix is an upload, anything else names an asset.
func ParseBackground(v string) Background {
	switch {
	case v == "" || strings.EqualFold(v, "none"):
		return Background{}
	case strings.HasPrefix(v, DataScheme):
		return DataURIBackground(v)
	}
	return AssetBackground(v)
}

// IsSet reports whether a background layer should be drawn.
func (b Background) IsSet() bool {
	return b.Kind != BackgroundNone && b.Ref != ""
}

// String returns the raw slot value.
func (b Background) String() string {
	if !b.IsSet() {
		return ""
	}
	return b.Ref
}

// Label is a short description for the form; data URIs are not printable.
func (b Background) Label() string {
	switch {
	case !b.IsSet():
		return "none"
	case b.Kind == BackgroundDataURI:
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(b.Ref, DataScheme), ";")
		return "uploaded " + mediaType
	}
	return b.Ref
}

// EncodeDataURI encodes image bytes as a base64 data URI. The media type is
// sniffed from the content.
func EncodeDataURI(data []byte) string {
	mediaType := mimetype.Detect(data).String()
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return DataScheme + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI returns the payload and media type of a data URI.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, DataScheme)
	if !ok {
		return nil, "", ErrBadDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrBadDataURI
	}

	mediaType, params, _ := strings.Cut(header, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if params == "base64" || strings.HasSuffix(params, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return data, mediaType, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return []byte(text), mediaType, nil
}

// ReadBackground reads a user-selected file into a data URI background.
// An empty path is ErrNoFile; callers leave the slot untouched in that case.
func ReadBackground(ctx context.Context, path string) (Background, error) {
	if path == "" {
		return Background{}, ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return Background{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Background{}, fmt.Errorf("reading background: %w", err)
	}
	return DataURIBackground(EncodeDataURI(data)), nil
}
