package model

import "time"

// Ticket 訂票紀錄；ShowName 與 Place 為訂票當下的快照
type Ticket struct {
	ID        int       `json:"id" db:"id"`
	NumTicket int       `json:"num_ticket" db:"num_ticket"`
	ShowName  string    `json:"show_name" db:"show_name"`
	Place     string    `json:"place" db:"place"`
	UserID    int       `json:"user_id" db:"user_id"`
	ShowID    int       `json:"show_id" db:"show_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
