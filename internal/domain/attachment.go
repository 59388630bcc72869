package domain

import (
	"fmt"
	"time"
)

// Attachment stores metadata for a file uploaded to a ticket. The binary
// payload lives in object storage under StorageKey; deleting the record
// must also delete the backing file.
type Attachment struct {
	ID           string
	TicketID     string
	StorageKey   string
	OriginalName string
	SizeBytes    int64
	ContentType  string
	UploadedByID string
	CreatedAt    time.Time
}

// FormattedSize renders the byte size for display: bytes below 1 KiB,
// one-decimal KB below 1 MiB, one-decimal MB above.
func (a *Attachment) FormattedSize() string {
	if a.SizeBytes <= 0 {
		return "0 bytes"
	}
	switch {
	case a.SizeBytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(a.SizeBytes)/(1024*1024))
	case a.SizeBytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(a.SizeBytes)/1024)
	}
	return fmt.Sprintf("%d bytes", a.SizeBytes)
}
