package models

import "time"

// Log is one append-only activity event.
type Log struct {
	ID        uint      `gorm:"primaryKey"                            json:"id"`
	UserID    uint      `gorm:"not null;index:idx_logs_user_time,priority:1" json:"user_id"`
	Action    string    `gorm:"size:50;not null"                      json:"action"`
	Entity    string    `gorm:"size:50;not null"                      json:"entity"`
	EntityID  *uint     `json:"entity_id"`
	Timestamp time.Time `gorm:"not null;index;index:idx_logs_user_time,priority:2" json:"timestamp"`
}

// MonitoredUser flags an actor that exceeded the activity threshold.
// Username is a snapshot taken at promotion time.
type MonitoredUser struct {
	UserID   uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Username string `gorm:"size:255;not null"             json:"username"`
}

// Activity actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Activity entities.
const (
	EntityProduct  = "product"
	EntityCategory = "category"
)
