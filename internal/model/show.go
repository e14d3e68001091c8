package model

import "time"

// DateLayout 場次日期格式
const DateLayout = "2006-01-02"

// Show 場次模型，TicketAvailable 為剩餘可售票數
type Show struct {
	ID              int       `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Rating          int       `json:"rating" db:"rating"`
	Price           int       `json:"price" db:"price"`
	Date            string    `json:"date" db:"date"`
	Time            string    `json:"time" db:"time"`
	TicketAvailable int       `json:"ticket_available" db:"ticket_available"`
	VenueID         int       `json:"venue_id" db:"venue_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Venue *Venue `json:"venue,omitempty" db:"-"`
}

// IsSoldOut 檢查是否已售完
func (s *Show) IsSoldOut() bool {
	return s.TicketAvailable <= 0
}

// UpdateShowParams 編輯場次時可修改的欄位；評分不在其中
type UpdateShowParams struct {
	Name      string
	Price     int
	Date      string
	Time      string
	VenueName string
}
