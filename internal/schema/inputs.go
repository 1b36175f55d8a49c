package schema

import "github.com/ghiffarsabda/kormimvp/internal/model"

// Required fields are pointers so `required` means "present and not null".
// An empty string is a value like any other.

type SportCategoryInput struct {
	Name *string `json:"name" validate:"required"`
}

func (in SportCategoryInput) Model() model.SportCategory {
	return model.SportCategory{Name: deref(in.Name)}
}

// OrganizationInput is the writable part of an organization. IsOkb is
// optional and defaults to true. SportCategoryID is not checked against the
// stored categories.
type OrganizationInput struct {
	Name            *string `json:"name"            validate:"required"`
	SportCategoryID *int    `json:"sportCategoryId" validate:"required"`
	IsOkb           *bool   `json:"isOkb"`
	Location        *string `json:"location"        validate:"required"`
	Schedule        *string `json:"schedule"        validate:"required"`
	Contact         *string `json:"contact"         validate:"required"`
	Icon            *string `json:"icon"            validate:"required"`
}

func (in OrganizationInput) Model() model.Organization {
	isOkb := true
	if in.IsOkb != nil {
		isOkb = *in.IsOkb
	}
	return model.Organization{
		Name:            deref(in.Name),
		SportCategoryID: deref(in.SportCategoryID),
		IsOkb:           isOkb,
		Location:        deref(in.Location),
		Schedule:        deref(in.Schedule),
		Contact:         deref(in.Contact),
		Icon:            deref(in.Icon),
	}
}

type EventInput struct {
	Title    *string `json:"title"    validate:"required"`
	Date     *string `json:"date"     validate:"required,date"`
	Location *string `json:"location" validate:"required"`
	Time     *string `json:"time"     validate:"required"`
	Fee      *string `json:"fee"      validate:"required"`
	ImageURL *string `json:"imageUrl" validate:"required"`
}

func (in EventInput) Model() model.Event {
	return model.Event{
		Title:    deref(in.Title),
		Date:     mustDate(in.Date),
		Location: deref(in.Location),
		Time:     deref(in.Time),
		Fee:      deref(in.Fee),
		ImageURL: deref(in.ImageURL),
	}
}

// NewsInput takes the date as a string so it round-trips through an HTML
// date input unchanged.
type NewsInput struct {
	Title    *string `json:"title"    validate:"required"`
	Date     *string `json:"date"     validate:"required,date"`
	Category *string `json:"category" validate:"required"`
	Content  *string `json:"content"  validate:"required"`
	Excerpt  *string `json:"excerpt"  validate:"required"`
	ImageURL *string `json:"imageUrl" validate:"required"`
}

func (in NewsInput) Model() model.News {
	return model.News{
		Title:    deref(in.Title),
		Date:     mustDate(in.Date),
		Category: deref(in.Category),
		Content:  deref(in.Content),
		Excerpt:  deref(in.Excerpt),
		ImageURL: deref(in.ImageURL),
	}
}

type GalleryItemInput struct {
	Title    *string `json:"title"    validate:"required"`
	Category *string `json:"category" validate:"required"`
	ImageURL *string `json:"imageUrl" validate:"required"`
}

func (in GalleryItemInput) Model() model.GalleryItem {
	return model.GalleryItem{
		Title:    deref(in.Title),
		Category: deref(in.Category),
		ImageURL: deref(in.ImageURL),
	}
}

type MessageInput struct {
	Name    *string `json:"name"    validate:"required"`
	Email   *string `json:"email"   validate:"required,email"`
	Subject *string `json:"subject" validate:"required"`
	Message *string `json:"message" validate:"required"`
}

func (in MessageInput) Model() model.Message {
	return model.Message{
		Name:    deref(in.Name),
		Email:   deref(in.Email),
		Subject: deref(in.Subject),
		Message: deref(in.Message),
	}
}

// JoinRequestInput is a membership application. Message may be omitted or null.
type JoinRequestInput struct {
	Name            *string `json:"name"            validate:"required"`
	Email           *string `json:"email"           validate:"required,email"`
	Phone           *string `json:"phone"           validate:"required"`
	SportCategoryID *int    `json:"sportCategoryId" validate:"required"`
	Message         *string `json:"message"`
}

func (in JoinRequestInput) Model() model.JoinRequest {
	return model.JoinRequest{
		Name:            deref(in.Name),
		Email:           deref(in.Email),
		Phone:           deref(in.Phone),
		SportCategoryID: deref(in.SportCategoryID),
		Message:         in.Message,
	}
}

// LoginInput carries admin credentials. Unlike the content schemas, blank
// credentials are rejected outright. Password shares bcrypt's 72-byte cap.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// mustDate converts a string that already passed the date check.
func mustDate(s *string) model.Date {
	d, _ := model.ParseDate(deref(s))
	return d
}
