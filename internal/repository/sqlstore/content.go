package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
)

var (
	_ repository.SportCategoryRepository = (*SportCategoryDB)(nil)
	_ repository.OrganizationRepository  = (*OrganizationDB)(nil)
	_ repository.EventRepository         = (*EventDB)(nil)
	_ repository.NewsRepository          = (*NewsDB)(nil)
	_ repository.GalleryRepository       = (*GalleryDB)(nil)
)

// getOne runs a single-row SELECT and maps sql.ErrNoRows to NotFound.
func getOne[T any](ctx context.Context, db *DB, resource string, id int, query string, scan func(scanner, *T) error) (*T, error) {
	var rec T
	err := scan(db.queryRow(ctx, query, id), &rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound(resource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: getting %s %d: %w", resource, id, err)
	}
	return &rec, nil
}

// update runs an UPDATE whose last argument is the id.
func update(ctx context.Context, db *DB, resource string, id int, query string, args ...any) error {
	res, err := db.exec(ctx, query, append(args, id)...)
	if err != nil {
		return fmt.Errorf("sqlstore: updating %s %d: %w", resource, id, err)
	}
	return affected(res, apperror.NotFound(resource, id))
}

func remove(ctx context.Context, db *DB, resource, table string, id int) error {
	res, err := db.exec(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting %s %d: %w", resource, id, err)
	}
	return affected(res, apperror.NotFound(resource, id))
}

// ---------------------------------------------------------------------------
// Sport categories

type SportCategoryDB struct {
	db *DB
}

func scanSportCategory(s scanner, c *model.SportCategory) error {
	return s.Scan(&c.ID, &c.Name)
}

func (r *SportCategoryDB) Create(ctx context.Context, category *model.SportCategory) error {
	id, err := r.db.insert(ctx, `INSERT INTO sport_categories (name) VALUES (?)`, category.Name)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting sport category %q: %w", category.Name, err)
	}
	category.ID = id
	return nil
}

func (r *SportCategoryDB) GetByID(ctx context.Context, id int) (*model.SportCategory, error) {
	return getOne(ctx, r.db, "sport category", id,
		`SELECT id, name FROM sport_categories WHERE id = ?`, scanSportCategory)
}

func (r *SportCategoryDB) List(ctx context.Context) ([]model.SportCategory, error) {
	rows, err := r.db.query(ctx, `SELECT id, name FROM sport_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing sport categories: %w", err)
	}
	return collect(rows, scanSportCategory)
}

func (r *SportCategoryDB) Update(ctx context.Context, category *model.SportCategory) error {
	return update(ctx, r.db, "sport category", category.ID,
		`UPDATE sport_categories SET name = ? WHERE id = ?`, category.Name)
}

func (r *SportCategoryDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "sport category", "sport_categories", id)
}

// ---------------------------------------------------------------------------
// Organizations

type OrganizationDB struct {
	db *DB
}

const organizationColumns = `id, name, sport_category_id, is_okb, location, schedule, contact, icon`

func scanOrganization(s scanner, o *model.Organization) error {
	return s.Scan(&o.ID, &o.Name, &o.SportCategoryID, &o.IsOkb, &o.Location, &o.Schedule, &o.Contact, &o.Icon)
}

func (r *OrganizationDB) Create(ctx context.Context, org *model.Organization) error {
	id, err := r.db.insert(ctx,
		`INSERT INTO organizations (name, sport_category_id, is_okb, location, schedule, contact, icon)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		org.Name, org.SportCategoryID, org.IsOkb, org.Location, org.Schedule, org.Contact, org.Icon,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting organization %q: %w", org.Name, err)
	}
	org.ID = id
	return nil
}

func (r *OrganizationDB) GetByID(ctx context.Context, id int) (*model.Organization, error) {
	return getOne(ctx, r.db, "organization", id,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ?`, scanOrganization)
}

// List builds its WHERE clause from whichever filter fields are set.
func (r *OrganizationDB) List(ctx context.Context, filter repository.OrganizationFilter) ([]model.Organization, error) {
	var (
		where []string
		args  []any
	)
	if filter.IsOkb != nil {
		where = append(where, "is_okb = ?")
		args = append(args, *filter.IsOkb)
	}
	if filter.SportCategoryID != nil {
		where = append(where, "sport_category_id = ?")
		args = append(args, *filter.SportCategoryID)
	}

	query := `SELECT ` + organizationColumns + ` FROM organizations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing organizations: %w", err)
	}
	return collect(rows, scanOrganization)
}

func (r *OrganizationDB) Update(ctx context.Context, org *model.Organization) error {
	return update(ctx, r.db, "organization", org.ID,
		`UPDATE organizations SET name = ?, sport_category_id = ?, is_okb = ?,
		 location = ?, schedule = ?, contact = ?, icon = ? WHERE id = ?`,
		org.Name, org.SportCategoryID, org.IsOkb, org.Location, org.Schedule, org.Contact, org.Icon,
	)
}

func (r *OrganizationDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "organization", "organizations", id)
}

// ---------------------------------------------------------------------------
// Events

type EventDB struct {
	db *DB
}

const eventColumns = `id, title, date, location, time, fee, image_url`

func scanEvent(s scanner, e *model.Event) error {
	return s.Scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Time, &e.Fee, &e.ImageURL)
}

func (r *EventDB) Create(ctx context.Context, event *model.Event) error {
	id, err := r.db.insert(ctx,
		`INSERT INTO events (title, date, location, time, fee, image_url) VALUES (?, ?, ?, ?, ?, ?)`,
		event.Title, event.Date, event.Location, event.Time, event.Fee, event.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting event %q: %w", event.Title, err)
	}
	event.ID = id
	return nil
}

func (r *EventDB) GetByID(ctx context.Context, id int) (*model.Event, error) {
	return getOne(ctx, r.db, "event", id,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, scanEvent)
}

// List returns events newest date first; same-day events keep insertion order.
func (r *EventDB) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing events: %w", err)
	}
	return collect(rows, scanEvent)
}

func (r *EventDB) Update(ctx context.Context, event *model.Event) error {
	return update(ctx, r.db, "event", event.ID,
		`UPDATE events SET title = ?, date = ?, location = ?, time = ?, fee = ?, image_url = ? WHERE id = ?`,
		event.Title, event.Date, event.Location, event.Time, event.Fee, event.ImageURL,
	)
}

func (r *EventDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "event", "events", id)
}

// ---------------------------------------------------------------------------
// News

type NewsDB struct {
	db *DB
}

const newsColumns = `id, title, date, category, content, excerpt, image_url`

func scanNews(s scanner, n *model.News) error {
	return s.Scan(&n.ID, &n.Title, &n.Date, &n.Category, &n.Content, &n.Excerpt, &n.ImageURL)
}

func (r *NewsDB) Create(ctx context.Context, news *model.News) error {
	id, err := r.db.insert(ctx,
		`INSERT INTO news (title, date, category, content, excerpt, image_url) VALUES (?, ?, ?, ?, ?, ?)`,
		news.Title, news.Date, news.Category, news.Content, news.Excerpt, news.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting news %q: %w", news.Title, err)
	}
	news.ID = id
	return nil
}

func (r *NewsDB) GetByID(ctx context.Context, id int) (*model.News, error) {
	return getOne(ctx, r.db, "news item", id,
		`SELECT `+newsColumns+` FROM news WHERE id = ?`, scanNews)
}

// List returns news newest date first; same-day items keep insertion order.
func (r *NewsDB) List(ctx context.Context) ([]model.News, error) {
	rows, err := r.db.query(ctx, `SELECT `+newsColumns+` FROM news ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing news: %w", err)
	}
	return collect(rows, scanNews)
}

func (r *NewsDB) Update(ctx context.Context, news *model.News) error {
	return update(ctx, r.db, "news item", news.ID,
		`UPDATE news SET title = ?, date = ?, category = ?, content = ?, excerpt = ?, image_url = ? WHERE id = ?`,
		news.Title, news.Date, news.Category, news.Content, news.Excerpt, news.ImageURL,
	)
}

func (r *NewsDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "news item", "news", id)
}

// ---------------------------------------------------------------------------
// Gallery

type GalleryDB struct {
	db *DB
}

const galleryColumns = `id, title, category, image_url`

func scanGalleryItem(s scanner, g *model.GalleryItem) error {
	return s.Scan(&g.ID, &g.Title, &g.Category, &g.ImageURL)
}

func (r *GalleryDB) Create(ctx context.Context, item *model.GalleryItem) error {
	id, err := r.db.insert(ctx,
		`INSERT INTO gallery_items (title, category, image_url) VALUES (?, ?, ?)`,
		item.Title, item.Category, item.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting gallery item %q: %w", item.Title, err)
	}
	item.ID = id
	return nil
}

func (r *GalleryDB) GetByID(ctx context.Context, id int) (*model.GalleryItem, error) {
	return getOne(ctx, r.db, "gallery item", id,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE id = ?`, scanGalleryItem)
}

// List matches the category with strings.EqualFold in Go. SQL LOWER only
// folds ASCII in SQLite, so filtering there would disagree with the memory
// store on categories such as "Öffentlich".
func (r *GalleryDB) List(ctx context.Context, filter repository.GalleryFilter) ([]model.GalleryItem, error) {
	rows, err := r.db.query(ctx, `SELECT `+galleryColumns+` FROM gallery_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing gallery items: %w", err)
	}
	items, err := collect(rows, scanGalleryItem)
	if err != nil || filter.Category == "" {
		return items, err
	}
	return slices.DeleteFunc(items, func(g model.GalleryItem) bool {
		return !strings.EqualFold(g.Category, filter.Category)
	}), nil
}

func (r *GalleryDB) Update(ctx context.Context, item *model.GalleryItem) error {
	return update(ctx, r.db, "gallery item", item.ID,
		`UPDATE gallery_items SET title = ?, category = ?, image_url = ? WHERE id = ?`,
		item.Title, item.Category, item.ImageURL,
	)
}

func (r *GalleryDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "gallery item", "gallery_items", id)
}
