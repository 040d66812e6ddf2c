package statestore

import "time"

// RunRecord is the persistence model for a workflow run.
// Table name: runs
type RunRecord struct {
	ID           string    `gorm:"primaryKey;type:text;not null"`
	ClusterLabel string    `gorm:"type:text;not null;index"`
	Phase        string    `gorm:"type:text;not null"`
	Error        string    `gorm:"type:text"`
	StartedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (RunRecord) TableName() string { return "runs" }

// TransitionRecord is the persistence model for a single phase transition.
// Table name: transitions
type TransitionRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	RunID     string    `gorm:"type:text;not null;index"`
	FromPhase string    `gorm:"type:text;not null"`
	ToPhase   string    `gorm:"type:text;not null"`
	Detail    string    `gorm:"type:text"`
	At        time.Time `gorm:"not null"`
}

func (TransitionRecord) TableName() string { return "transitions" }
