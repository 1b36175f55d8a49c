// Package repository declares the storage contract the rest of the site is
// written against.
//
// A Store groups one repository per record kind. Every repository offers the
// same CRUD shape: Create assigns the next id for that kind (monotonic from 1,
// never reused) and writes it back into the record, GetByID returns
// apperror.ErrNotFound for unknown ids, List returns a fresh slice the caller
// may modify freely, Update replaces every field except the id (and a
// server-assigned CreatedAt), and Delete removes the record for good. Update
// and Delete on an unknown id fail with apperror.ErrNotFound and change
// nothing.
//
// Two implementations exist: repository/memory (process lifetime only) and
// repository/sqlstore (SQLite or PostgreSQL).
package repository

import (
	"context"

	"github.com/ghiffarsabda/kormimvp/internal/model"
)

// Store is the system of record for every kind. It is constructed once at
// startup and handed to whoever needs it.
type Store interface {
	Users() UserRepository
	SportCategories() SportCategoryRepository
	Organizations() OrganizationRepository
	Events() EventRepository
	News() NewsRepository
	Gallery() GalleryRepository
	Messages() MessageRepository
	JoinRequests() JoinRequestRepository
	Close() error
}

type UserRepository interface {
	// Create fails with apperror.ErrConflict when the username is taken.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int) error
}

type SportCategoryRepository interface {
	Create(ctx context.Context, category *model.SportCategory) error
	GetByID(ctx context.Context, id int) (*model.SportCategory, error)
	List(ctx context.Context) ([]model.SportCategory, error)
	Update(ctx context.Context, category *model.SportCategory) error
	Delete(ctx context.Context, id int) error
}

// OrganizationFilter narrows an organization listing. Nil fields match
// everything; set fields must all match.
type OrganizationFilter struct {
	IsOkb           *bool
	SportCategoryID *int
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id int) (*model.Organization, error)
	List(ctx context.Context, filter OrganizationFilter) ([]model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int) error
}

// EventRepository lists events most recent date first.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int) error
}

// NewsRepository lists news most recent date first.
type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	GetByID(ctx context.Context, id int) (*model.News, error)
	List(ctx context.Context) ([]model.News, error)
	Update(ctx context.Context, news *model.News) error
	Delete(ctx context.Context, id int) error
}

// GalleryFilter narrows a gallery listing. Category matches case-insensitively;
// empty matches everything.
type GalleryFilter struct {
	Category string
}

type GalleryRepository interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	GetByID(ctx context.Context, id int) (*model.GalleryItem, error)
	List(ctx context.Context, filter GalleryFilter) ([]model.GalleryItem, error)
	Update(ctx context.Context, item *model.GalleryItem) error
	Delete(ctx context.Context, id int) error
}

// MessageRepository stores contact form submissions. CreatedAt is set by
// Create and preserved by Update.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id int) (*model.Message, error)
	List(ctx context.Context) ([]model.Message, error)
	Update(ctx context.Context, msg *model.Message) error
	Delete(ctx context.Context, id int) error
}

// JoinRequestRepository stores membership applications. CreatedAt is set by
// Create and preserved by Update.
type JoinRequestRepository interface {
	Create(ctx context.Context, req *model.JoinRequest) error
	GetByID(ctx context.Context, id int) (*model.JoinRequest, error)
	List(ctx context.Context) ([]model.JoinRequest, error)
	Update(ctx context.Context, req *model.JoinRequest) error
	Delete(ctx context.Context, id int) error
}
