package models

import (
	"time"

	"gorm.io/datatypes"
)

type TestCase struct {
	BaseModel

	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	Steps          datatypes.JSON `json:"steps"`
	ExpectedResult string         `json:"expected_result"`
	Status         string         `gorm:"not null;default:pending" json:"status"`
	Priority       string         `gorm:"not null;default:medium" json:"priority"`
	ProjectID      uint           `gorm:"not null;index" json:"project_id"`
	CreatedBy      uint           `gorm:"not null;index" json:"created_by"`
	LastTestedBy   *uint          `json:"last_tested_by"`
	LastTestedAt   *time.Time     `json:"last_tested_at"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Creator    User    `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	LastTester *User   `gorm:"foreignKey:LastTestedBy" json:"-"`
}
