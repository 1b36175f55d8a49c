package model

import "time"

// SportCategory is a kind of sport, e.g. "Lari" or "Sepeda".
type SportCategory struct {
	ID   int    `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// Organization is a community club listed in the sports directory.
//
// SportCategoryID is a plain integer; nothing checks that the category exists.
// IsOkb marks clubs affiliated with the umbrella body (OKB) as opposed to
// unaffiliated ones (OKTB).
type Organization struct {
	ID              int    `json:"id"              db:"id"`
	Name            string `json:"name"            db:"name"`
	SportCategoryID int    `json:"sportCategoryId" db:"sport_category_id"`
	IsOkb           bool   `json:"isOkb"           db:"is_okb"`
	Location        string `json:"location"        db:"location"`
	Schedule        string `json:"schedule"        db:"schedule"`
	Contact         string `json:"contact"         db:"contact"`
	Icon            string `json:"icon"            db:"icon"` // icon key, e.g. "bicycle"
}

type Event struct {
	ID       int    `json:"id"       db:"id"`
	Title    string `json:"title"    db:"title"`
	Date     Date   `json:"date"     db:"date"`
	Location string `json:"location" db:"location"`
	Time     string `json:"time"     db:"time"` // free text, e.g. "07:00 - 11:00 WIB"
	Fee      string `json:"fee"      db:"fee"`  // free text, e.g. "Gratis"
	ImageURL string `json:"imageUrl" db:"image_url"`
}

// News categories used by the front-end tabs. Category is free text, these
// are only the conventional values.
const (
	NewsCategoryArticle   = "Artikel"
	NewsCategoryEvent     = "Event"
	NewsCategoryCommunity = "Komunitas"
)

type News struct {
	ID       int    `json:"id"       db:"id"`
	Title    string `json:"title"    db:"title"`
	Date     Date   `json:"date"     db:"date"`
	Category string `json:"category" db:"category"`
	Content  string `json:"content"  db:"content"`
	Excerpt  string `json:"excerpt"  db:"excerpt"`
	ImageURL string `json:"imageUrl" db:"image_url"`
}

type GalleryItem struct {
	ID       int    `json:"id"       db:"id"`
	Title    string `json:"title"    db:"title"`
	Category string `json:"category" db:"category"`
	ImageURL string `json:"imageUrl" db:"image_url"`
}

// Message is a contact form submission. CreatedAt is assigned by the store.
type Message struct {
	ID        int       `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	Subject   string    `json:"subject"   db:"subject"`
	Message   string    `json:"message"   db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// JoinRequest is a membership application. Message is optional and
// serializes as null when absent.
type JoinRequest struct {
	ID              int       `json:"id"              db:"id"`
	Name            string    `json:"name"            db:"name"`
	Email           string    `json:"email"           db:"email"`
	Phone           string    `json:"phone"           db:"phone"`
	SportCategoryID int       `json:"sportCategoryId" db:"sport_category_id"`
	Message         *string   `json:"message"         db:"message"`
	CreatedAt       time.Time `json:"createdAt"       db:"created_at"`
}
