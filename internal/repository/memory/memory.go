// Package memory is a repository.Store that lives in process memory.
//
// Nothing survives a restart: every kind starts empty with its id counter at
// one. It is the default store and the one handler tests run against.
package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	users         *UserRepo
	categories    *SportCategoryRepo
	organizations *OrganizationRepo
	events        *EventRepo
	news          *NewsRepo
	gallery       *GalleryRepo
	messages      *MessageRepo
	joinRequests  *JoinRequestRepo

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	s := &Store{now: time.Now}

	s.users = &UserRepo{t: newTable("user", func(u *model.User) *int { return &u.ID }), now: s.clock}
	s.categories = &SportCategoryRepo{t: newTable("sport category", func(c *model.SportCategory) *int { return &c.ID })}
	s.organizations = &OrganizationRepo{t: newTable("organization", func(o *model.Organization) *int { return &o.ID })}
	s.events = &EventRepo{t: newTable("event", func(e *model.Event) *int { return &e.ID })}
	s.news = &NewsRepo{t: newTable("news item", func(n *model.News) *int { return &n.ID })}
	s.gallery = &GalleryRepo{t: newTable("gallery item", func(g *model.GalleryItem) *int { return &g.ID })}
	s.messages = &MessageRepo{t: newTable("message", func(m *model.Message) *int { return &m.ID }), now: s.clock}

	joins := newTable("join request", func(j *model.JoinRequest) *int { return &j.ID })
	joins.clone = func(j model.JoinRequest) model.JoinRequest {
		if j.Message != nil {
			msg := *j.Message
			j.Message = &msg
		}
		return j
	}
	s.joinRequests = &JoinRequestRepo{t: joins, now: s.clock}

	return s
}

func (s *Store) clock() time.Time { return s.now().UTC() }

func (s *Store) Users() repository.UserRepository                   { return s.users }
func (s *Store) SportCategories() repository.SportCategoryRepository { return s.categories }
func (s *Store) Organizations() repository.OrganizationRepository   { return s.organizations }
func (s *Store) Events() repository.EventRepository                 { return s.events }
func (s *Store) News() repository.NewsRepository                    { return s.news }
func (s *Store) Gallery() repository.GalleryRepository              { return s.gallery }
func (s *Store) Messages() repository.MessageRepository             { return s.messages }
func (s *Store) JoinRequests() repository.JoinRequestRepository     { return s.joinRequests }

// Close is a no-op; it exists to satisfy repository.Store.
func (s *Store) Close() error { return nil }

// ---------------------------------------------------------------------------
// Users

type UserRepo struct {
	t   *table[model.User]
	now func() time.Time
}

func (r *UserRepo) Create(_ context.Context, user *model.User) error {
	user.CreatedAt = r.now()
	return r.t.insert(user, func(rows map[int]model.User) error {
		for _, u := range rows {
			if u.Username == user.Username {
				return apperror.Conflict("user", "username "+user.Username)
			}
		}
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	return r.t.get(id)
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	users := r.t.list(func(u model.User) bool { return u.Username == username })
	if len(users) == 0 {
		return nil, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "user not found with username " + username,
		}
	}
	return &users[0], nil
}

func (r *UserRepo) List(_ context.Context) ([]model.User, error) {
	return r.t.list(nil), nil
}

func (r *UserRepo) Update(_ context.Context, user *model.User) error {
	return r.t.replace(user, func(old model.User, u *model.User) {
		u.CreatedAt = old.CreatedAt
	})
}

func (r *UserRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// Sport categories

type SportCategoryRepo struct {
	t *table[model.SportCategory]
}

func (r *SportCategoryRepo) Create(_ context.Context, category *model.SportCategory) error {
	return r.t.insert(category, nil)
}

func (r *SportCategoryRepo) GetByID(_ context.Context, id int) (*model.SportCategory, error) {
	return r.t.get(id)
}

func (r *SportCategoryRepo) List(_ context.Context) ([]model.SportCategory, error) {
	return r.t.list(nil), nil
}

func (r *SportCategoryRepo) Update(_ context.Context, category *model.SportCategory) error {
	return r.t.replace(category, nil)
}

func (r *SportCategoryRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// Organizations

type OrganizationRepo struct {
	t *table[model.Organization]
}

func (r *OrganizationRepo) Create(_ context.Context, org *model.Organization) error {
	return r.t.insert(org, nil)
}

func (r *OrganizationRepo) GetByID(_ context.Context, id int) (*model.Organization, error) {
	return r.t.get(id)
}

func (r *OrganizationRepo) List(_ context.Context, filter repository.OrganizationFilter) ([]model.Organization, error) {
	return r.t.list(func(o model.Organization) bool {
		if filter.IsOkb != nil && o.IsOkb != *filter.IsOkb {
			return false
		}
		if filter.SportCategoryID != nil && o.SportCategoryID != *filter.SportCategoryID {
			return false
		}
		return true
	}), nil
}

func (r *OrganizationRepo) Update(_ context.Context, org *model.Organization) error {
	return r.t.replace(org, nil)
}

func (r *OrganizationRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// Events

type EventRepo struct {
	t *table[model.Event]
}

func (r *EventRepo) Create(_ context.Context, event *model.Event) error {
	return r.t.insert(event, nil)
}

func (r *EventRepo) GetByID(_ context.Context, id int) (*model.Event, error) {
	return r.t.get(id)
}

// List returns events newest date first; events on the same day keep
// insertion order.
func (r *EventRepo) List(_ context.Context) ([]model.Event, error) {
	events := r.t.list(nil)
	slices.SortStableFunc(events, func(a, b model.Event) int {
		return b.Date.Compare(a.Date)
	})
	return events, nil
}

func (r *EventRepo) Update(_ context.Context, event *model.Event) error {
	return r.t.replace(event, nil)
}

func (r *EventRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// News

type NewsRepo struct {
	t *table[model.News]
}

func (r *NewsRepo) Create(_ context.Context, news *model.News) error {
	return r.t.insert(news, nil)
}

func (r *NewsRepo) GetByID(_ context.Context, id int) (*model.News, error) {
	return r.t.get(id)
}

// List returns news newest date first; items on the same day keep insertion
// order.
func (r *NewsRepo) List(_ context.Context) ([]model.News, error) {
	news := r.t.list(nil)
	slices.SortStableFunc(news, func(a, b model.News) int {
		return b.Date.Compare(a.Date)
	})
	return news, nil
}

func (r *NewsRepo) Update(_ context.Context, news *model.News) error {
	return r.t.replace(news, nil)
}

func (r *NewsRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// Gallery

type GalleryRepo struct {
	t *table[model.GalleryItem]
}

func (r *GalleryRepo) Create(_ context.Context, item *model.GalleryItem) error {
	return r.t.insert(item, nil)
}

func (r *GalleryRepo) GetByID(_ context.Context, id int) (*model.GalleryItem, error) {
	return r.t.get(id)
}

func (r *GalleryRepo) List(_ context.Context, filter repository.GalleryFilter) ([]model.GalleryItem, error) {
	if filter.Category == "" {
		return r.t.list(nil), nil
	}
	return r.t.list(func(g model.GalleryItem) bool {
		return strings.EqualFold(g.Category, filter.Category)
	}), nil
}

func (r *GalleryRepo) Update(_ context.Context, item *model.GalleryItem) error {
	return r.t.replace(item, nil)
}

func (r *GalleryRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// Contact messages

type MessageRepo struct {
	t   *table[model.Message]
	now func() time.Time
}

func (r *MessageRepo) Create(_ context.Context, msg *model.Message) error {
	msg.CreatedAt = r.now()
	return r.t.insert(msg, nil)
}

func (r *MessageRepo) GetByID(_ context.Context, id int) (*model.Message, error) {
	return r.t.get(id)
}

func (r *MessageRepo) List(_ context.Context) ([]model.Message, error) {
	return r.t.list(nil), nil
}

func (r *MessageRepo) Update(_ context.Context, msg *model.Message) error {
	return r.t.replace(msg, func(old model.Message, m *model.Message) {
		m.CreatedAt = old.CreatedAt
	})
}

func (r *MessageRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}

// ---------------------------------------------------------------------------
// Join requests

type JoinRequestRepo struct {
	t   *table[model.JoinRequest]
	now func() time.Time
}

func (r *JoinRequestRepo) Create(_ context.Context, req *model.JoinRequest) error {
	req.CreatedAt = r.now()
	return r.t.insert(req, nil)
}

func (r *JoinRequestRepo) GetByID(_ context.Context, id int) (*model.JoinRequest, error) {
	return r.t.get(id)
}

func (r *JoinRequestRepo) List(_ context.Context) ([]model.JoinRequest, error) {
	return r.t.list(nil), nil
}

func (r *JoinRequestRepo) Update(_ context.Context, req *model.JoinRequest) error {
	return r.t.replace(req, func(old model.JoinRequest, j *model.JoinRequest) {
		j.CreatedAt = old.CreatedAt
	})
}

func (r *JoinRequestRepo) Delete(_ context.Context, id int) error {
	return r.t.remove(id)
}
