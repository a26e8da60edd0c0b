package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindExtract = "extract"
	KindRename  = "rename"
)

func init() {
	registerForAutomigration(&Run{})
}

// Run is one invocation of either tool. Source is the video path or
// frames directory, Target the output directory, Count the number of
// frames written or renamed before the run ended.
type Run struct {
	gorm.Model
	UUID     string `gorm:"uniqueIndex"`
	Kind     string `gorm:"index"`
	Source   string
	Target   string
	Count    int
	Failed   bool
	ErrorMsg string
}

func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if len(r.UUID) == 0 {
		r.UUID = uuid.NewString()
	}
	return nil
}
