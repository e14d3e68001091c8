// Package request 表單欄位與驗證規則
package request

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"show-booking/internal/model"
	"show-booking/internal/service"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errNotInteger     = errors.New("must be an integer between -2147483648 and 2147483647")
	errNegative       = errors.New("must not be negative")
	errNotPositive    = errors.New("must be greater than zero")
	errInvalidDateFmt = errors.New("must be a date in YYYY-MM-DD format")
)

func integer(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	// 資料表數值欄位皆為 INTEGER
	if _, err := strconv.ParseInt(s, 10, 32); err != nil {
		return errNotInteger
	}
	return nil
}

func nonNegative(value interface{}) error {
	s, _ := value.(string)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil && n < 0 {
		return errNegative
	}
	return nil
}

func positive(value interface{}) error {
	s, _ := value.(string)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil && n <= 0 {
		return errNotPositive
	}
	return nil
}

func date(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return errInvalidDateFmt
	}
	return nil
}

// atoi 只在 Validate 通過後使用
func atoi(s string) int {
	n, _ := strconv.ParseInt(s, 10, 32)
	return int(n)
}

type SignupForm struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (f *SignupForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return validation.ValidateStruct(f,
		validation.Field(&f.Username, validation.Required, validation.Length(1, 1000)),
		validation.Field(&f.Email, validation.Required, validation.Length(1, 100)),
		// bcrypt 只接受 72 bytes 以內的密碼
		validation.Field(&f.Password, validation.Required, validation.Length(1, 72)),
	)
}

func (f *SignupForm) Params() service.SignupParams {
	return service.SignupParams{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}
}

type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (f *LoginForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	return validation.ValidateStruct(f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

type VenueForm struct {
	Name     string `form:"venue_name" json:"venue_name"`
	Place    string `form:"place" json:"place"`
	Capacity string `form:"capacity" json:"capacity"`
}

func (f *VenueForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Place = strings.TrimSpace(f.Place)
	f.Capacity = strings.TrimSpace(f.Capacity)
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Place, validation.Required, validation.Length(1, 1000)),
		validation.Field(&f.Capacity, validation.Required, validation.By(integer), validation.By(nonNegative)),
	)
}

func (f *VenueForm) Venue() *model.Venue {
	return &model.Venue{
		Name:     f.Name,
		Place:    f.Place,
		Capacity: atoi(f.Capacity),
	}
}

func (f *VenueForm) Params() model.UpdateVenueParams {
	return model.UpdateVenueParams{
		Name:     f.Name,
		Place:    f.Place,
		Capacity: atoi(f.Capacity),
	}
}

type ShowForm struct {
	Name      string `form:"show_name" json:"show_name"`
	VenueName string `form:"venue_name" json:"venue_name"`
	Rating    string `form:"rating" json:"rating"`
	Price     string `form:"price" json:"price"`
	Date      string `form:"date" json:"date"`
	Time      string `form:"time" json:"time"`
}

func (f *ShowForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.VenueName = strings.TrimSpace(f.VenueName)
	f.Rating = strings.TrimSpace(f.Rating)
	f.Price = strings.TrimSpace(f.Price)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.VenueName, validation.Required),
		validation.Field(&f.Rating, validation.Required, validation.By(integer)),
		validation.Field(&f.Price, validation.Required, validation.By(integer), validation.By(nonNegative)),
		validation.Field(&f.Date, validation.Required, validation.By(date)),
		validation.Field(&f.Time, validation.Required, validation.Length(1, 100)),
	)
}

func (f *ShowForm) Params() service.CreateShowParams {
	return service.CreateShowParams{
		Name:      f.Name,
		VenueName: f.VenueName,
		Rating:    atoi(f.Rating),
		Price:     atoi(f.Price),
		Date:      f.Date,
		Time:      f.Time,
	}
}

// EditShowForm 編輯場次不含評分
type EditShowForm struct {
	Name      string `form:"show_name" json:"show_name"`
	VenueName string `form:"venue_name" json:"venue_name"`
	Price     string `form:"price" json:"price"`
	Date      string `form:"date" json:"date"`
	Time      string `form:"time" json:"time"`
}

func (f *EditShowForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.VenueName = strings.TrimSpace(f.VenueName)
	f.Price = strings.TrimSpace(f.Price)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.VenueName, validation.Required),
		validation.Field(&f.Price, validation.Required, validation.By(integer), validation.By(nonNegative)),
		validation.Field(&f.Date, validation.Required, validation.By(date)),
		validation.Field(&f.Time, validation.Required, validation.Length(1, 100)),
	)
}

func (f *EditShowForm) Params() model.UpdateShowParams {
	return model.UpdateShowParams{
		Name:      f.Name,
		Price:     atoi(f.Price),
		Date:      f.Date,
		Time:      f.Time,
		VenueName: f.VenueName,
	}
}

type BookTicketForm struct {
	NumTicket string `form:"num_ticket" json:"num_ticket"`
}

func (f *BookTicketForm) Validate() error {
	f.NumTicket = strings.TrimSpace(f.NumTicket)
	return validation.ValidateStruct(f,
		validation.Field(&f.NumTicket, validation.Required, validation.By(integer), validation.By(positive)),
	)
}

func (f *BookTicketForm) Quantity() int {
	return atoi(f.NumTicket)
}
