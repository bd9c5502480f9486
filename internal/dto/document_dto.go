package dto

import "time"

// DocumentMeta describes a stored upload. The client attaches it to its
// profile with a separate update.
type DocumentMeta struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimetype"`
	UploadDate time.Time `json:"uploadDate"`
}
