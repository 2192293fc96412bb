package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPastedText(t *testing.T) {
	text, err := Pasted("Alice: let's ship on Friday.").Text()
	require.NoError(t, err)
	assert.Equal(t, "Alice: let's ship on Friday.", text)
}

func TestPastedEmpty(t *testing.T) {
	_, err := Pasted("   \n\t").Text()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestUploadedPlainText(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
	}{
		{"bare media type", "text/plain"},
		{"with charset parameter", "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Uploaded([]byte("meeting notes"), tt.mediaType).Text()
			require.NoError(t, err)
			assert.Equal(t, "meeting notes", text)
		})
	}
}

func TestUploadedUnsupportedType(t *testing.T) {
	for _, mt := range []string{"application/pdf", "image/png", ""} {
		_, err := Uploaded([]byte{0x25, 0x50}, mt).Text()
		assert.ErrorIs(t, err, ErrUnsupportedMediaType, "media type %q", mt)
	}
}

func TestUploadedEmptyPlainText(t *testing.T) {
	_, err := Uploaded(nil, "text/plain").Text()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestIsUpload(t *testing.T) {
	assert.False(t, Pasted("x").IsUpload())
	assert.True(t, Uploaded([]byte("x"), "text/plain").IsUpload())
}
