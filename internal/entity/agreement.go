package entity

import "time"

// Agreement хранит метаданные загруженного документа-соглашения;
// содержимое файла лежит в файловом хранилище по StoredPath
type Agreement struct {
	ID         int64     `json:"id" db:"id"`
	BookingID  int64     `json:"booking_id" db:"booking_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	StoredPath string    `json:"stored_path" db:"stored_path"`
	MimeType   string    `json:"mime_type" db:"mime_type"`
	SizeBytes  int64     `json:"size_bytes" db:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}
