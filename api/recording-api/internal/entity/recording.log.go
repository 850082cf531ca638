package internal_entity

import "time"

// RecordingLog is one appended row per accepted submission, re-recordings
// included. It mirrors the meta.csv columns of the original collection runs.
type RecordingLog struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedDate time.Time `json:"createdDate" gorm:"not null;autoCreateTime"`
	SpeakerID   string    `json:"speakerId" gorm:"type:string;size:255;not null;index"`
	PromptIndex int       `json:"promptIndex" gorm:"type:bigint;not null"`
	PromptText  string    `json:"promptText" gorm:"type:text;not null"`
	Location    string    `json:"location" gorm:"type:text;not null"`
}
