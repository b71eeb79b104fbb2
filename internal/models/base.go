package models

import "time"

// BaseModel is the shared primary key and timestamp set. Rows are hard
// deleted, so there is no DeletedAt column.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
