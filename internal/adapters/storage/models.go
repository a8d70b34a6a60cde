package storage

import "time"

// RunModel is the GORM model for the runs table
type RunModel struct {
	Args       []string  `gorm:"serializer:json;not null"`
	CreatedAt  time.Time `gorm:"not null;index:idx_created_at"`
	DurationMS int64     `gorm:"not null;default:0"`
	ExitCode   int       `gorm:"not null;default:0"`
	ID         string    `gorm:"primaryKey"`
	Scenario   string    `gorm:"not null;default:'';index:idx_scenario"`
	Stderr     string    `gorm:"not null;default:''"`
	Stdout     string    `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string { return "runs" }
