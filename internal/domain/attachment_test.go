package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentFormattedSize(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"zero", 0, "0 bytes"},
		{"negative treated as zero", -1, "0 bytes"},
		{"single byte", 1, "1 bytes"},
		{"just below one KB", 1023, "1023 bytes"},
		{"exactly one KB", 1024, "1.0 KB"},
		{"fractional KB", 1536, "1.5 KB"},
		{"just below one MB", 1024*1024 - 1, "1024.0 KB"},
		{"exactly one MB", 1024 * 1024, "1.0 MB"},
		{"fractional MB", 5*1024*1024 + 512*1024, "5.5 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := Attachment{SizeBytes: tt.size}
			assert.Equal(t, tt.want, att.FormattedSize())
		})
	}
}
