package models

import "time"

// FileResourceType identifies which entity a stored file belongs to
type FileResourceType string

const (
	FileResourceLesson     FileResourceType = "LESSON"
	FileResourceSubmission FileResourceType = "SUBMISSION"
)

// File represents an uploaded file in the 'files' table
type File struct {
	ID           int64            `json:"id" db:"id"`
	FileName     string           `json:"fileName" db:"file_name"` // original filename as uploaded
	FilePath     string           `json:"filePath" db:"file_path"` // accessible path under /uploads
	FileSize     int64            `json:"fileSize" db:"file_size"` // size in bytes
	MimeType     string           `json:"mimeType" db:"mime_type"`
	ResourceType FileResourceType `json:"resourceType" db:"resource_type"`
	ResourceID   int64            `json:"resourceId" db:"resource_id"`
	UploadedBy   int64            `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
}
