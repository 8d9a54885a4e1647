package models

import (
	"time"

	"gorm.io/gorm"
)

// EventText is the bilingual text shared by single and recurring events.
type EventText struct {
	TitleDe       string `json:"title_de"`
	TitleEn       string `json:"title_en"`
	DescriptionDe string `json:"description_de"`
	DescriptionEn string `json:"description_en"`
}

// Title returns the title for lang ("de" or "en"), falling back to German.
func (t EventText) Title(lang string) string {
	if lang == "en" && t.TitleEn != "" {
		return t.TitleEn
	}
	return t.TitleDe
}

func (t EventText) Description(lang string) string {
	if lang == "en" && t.DescriptionEn != "" {
		return t.DescriptionEn
	}
	return t.DescriptionDe
}

// SingleEvent is one concrete event on the calendar, either standalone or an
// occurrence materialized from a RecurringEvent.
type SingleEvent struct {
	gorm.Model
	GUID             string `gorm:"uniqueIndex;size:36" json:"guid"`
	EventText        `gorm:"embedded"`
	Start            time.Time     `gorm:"column:start_at;index" json:"start"`
	End              time.Time     `gorm:"column:end_at;index" json:"end"`
	IsPublic         bool          `json:"is_public"`
	IsRecurring      bool          `json:"is_recurring"`
	RecurringEventID *uint         `gorm:"index" json:"-"`
	EventLocationID  uint          `json:"-"`
	EventLocation    EventLocation `json:"event_location"`
	FileUploadID     uint          `json:"-"`
	FileUpload       FileUpload    `json:"file_upload"`
	CreatedByID      uint          `json:"-"`
	CreatedBy        User          `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (e *SingleEvent) BeforeCreate(tx *gorm.DB) error {
	ensureGUID(&e.GUID)
	return nil
}

// RecurringEvent is the template of a series. Its occurrences are
// materialized as SingleEvent rows pointing back via RecurringEventID.
// GeneratedUntil is the series end used by the latest generation run;
// occurrences starting before it have been materialized.
type RecurringEvent struct {
	gorm.Model
	GUID                 string `gorm:"uniqueIndex;size:36" json:"guid"`
	EventText            `gorm:"embedded"`
	Recurrence           Recurrence    `gorm:"size:32" json:"recurrence"`
	RecurrenceMetadata   int           `json:"recurrence_metadata"`
	StartFirstOccurrence time.Time     `json:"start_first_occurrence"`
	EndFirstOccurrence   time.Time     `json:"end_first_occurrence"`
	EndRecurrence        *time.Time    `json:"end_recurrence"`
	RRule                string        `gorm:"column:rrule" json:"rrule"`
	GeneratedUntil       time.Time     `json:"generated_until"`
	EventLocationID      uint          `json:"-"`
	EventLocation        EventLocation `json:"event_location"`
	FileUploadID         uint          `json:"-"`
	FileUpload           FileUpload    `json:"file_upload"`
	CreatedByID          uint          `json:"-"`
	CreatedBy            User          `gorm:"foreignKey:CreatedByID" json:"-"`
	Occurrences          []SingleEvent `gorm:"foreignKey:RecurringEventID" json:"-"`
}

func (e *RecurringEvent) BeforeCreate(tx *gorm.DB) error {
	ensureGUID(&e.GUID)
	return nil
}
