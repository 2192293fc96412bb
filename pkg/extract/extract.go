// Package extract turns a transcript source (pasted text or an uploaded
// document) into plain UTF-8 text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// Accepted upload media types.
const (
	MediaTypePlainText = "text/plain"
	MediaTypeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedMediaType is returned for uploads that are neither plain
	// text nor a Word document. Checked before any AI call is made.
	ErrUnsupportedMediaType = errors.New("unsupported file type")

	// ErrEmpty is returned when the source yields no text at all.
	ErrEmpty = errors.New("no transcript content")
)

type kind int

const (
	kindPasted kind = iota
	kindUploaded
)

// Source is a tagged transcript input: either pasted text or an uploaded
// file with a declared media type.
type Source struct {
	kind      kind
	text      string
	data      []byte
	mediaType string
}

// Pasted wraps raw transcript text typed or pasted by the user.
func Pasted(text string) Source {
	return Source{kind: kindPasted, text: text}
}

// Uploaded wraps the bytes of an uploaded file and its declared media type.
func Uploaded(data []byte, mediaType string) Source {
	return Source{kind: kindUploaded, data: data, mediaType: mediaType}
}

// IsUpload reports whether the source came from a file upload.
func (s Source) IsUpload() bool {
	return s.kind == kindUploaded
}

// Text extracts the plain-text transcript from the source.
func (s Source) Text() (string, error) {
	switch s.kind {
	case kindPasted:
		if strings.TrimSpace(s.text) == "" {
			return "", ErrEmpty
		}
		return s.text, nil
	case kindUploaded:
		return extractUpload(s.data, s.mediaType)
	default:
		return "", ErrEmpty
	}
}

func extractUpload(data []byte, mediaType string) (string, error) {
	// Strip parameters like "; charset=utf-8" before matching.
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(mediaType)

	var text string
	switch mediaType {
	case MediaTypePlainText:
		text = string(data)
	case MediaTypeDocx:
		res, err := docconv.Convert(bytes.NewReader(data), mediaType, true)
		if err != nil {
			return "", fmt.Errorf("parse document: %w", err)
		}
		text = res.Body
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}
