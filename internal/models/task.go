package models

import "time"

type Task struct {
	BaseModel

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"not null;default:pending" json:"status"`
	Priority    string     `gorm:"not null;default:medium" json:"priority"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"-"`
}
