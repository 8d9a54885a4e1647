package models

import (
	"gorm.io/gorm"
)

type EventLocation struct {
	gorm.Model
	GUID   string `gorm:"uniqueIndex;size:36" json:"guid"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

func (l *EventLocation) BeforeCreate(tx *gorm.DB) error {
	ensureGUID(&l.GUID)
	return nil
}

// FileUpload holds the metadata of an uploaded event image. The bytes live
// in external storage addressed by URL.
type FileUpload struct {
	gorm.Model
	GUID        string `gorm:"uniqueIndex;size:36" json:"guid"`
	FileName    string `json:"file_name"`
	URL         string `json:"url"`
	MimeType    string `json:"mime_type"`
	CreatedByID uint   `json:"-"`
}

func (f *FileUpload) BeforeCreate(tx *gorm.DB) error {
	ensureGUID(&f.GUID)
	return nil
}
