package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/repository/memory"
)

// newTestDB opens a fresh in-memory SQLite database; it disappears when the
// test ends.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =========================================================================
// OPEN / DIALECT
// =========================================================================

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.ErrorContains(t, err, `unsupported driver "mysql"`)
}

func TestOpen_MigrationsAreRepeatable(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.migrate(context.Background()))
}

func TestRebind(t *testing.T) {
	lite := &DB{driver: DriverSQLite}
	pg := &DB{driver: DriverPostgres}
	q := `UPDATE news SET title = ?, date = ? WHERE id = ?`

	assert.Equal(t, q, lite.rebind(q))
	assert.Equal(t, `UPDATE news SET title = $1, date = $2 WHERE id = $3`, pg.rebind(q))
}

// =========================================================================
// CREATE / GET
// =========================================================================

func TestCreate_AssignsIDsPerTable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		c := &model.SportCategory{Name: "Lari"}
		require.NoError(t, db.SportCategories().Create(ctx, c))
		assert.Equal(t, i, c.ID)
	}

	g := &model.GalleryItem{Title: "Foto", Category: "Event", ImageURL: "u"}
	require.NoError(t, db.Gallery().Create(ctx, g))
	assert.Equal(t, 1, g.ID, "each table counts on its own")
}

func TestDelete_IDsAreNotReused(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := &model.SportCategory{Name: "a"}
	b := &model.SportCategory{Name: "b"}
	require.NoError(t, db.SportCategories().Create(ctx, a))
	require.NoError(t, db.SportCategories().Create(ctx, b))
	require.NoError(t, db.SportCategories().Delete(ctx, b.ID))

	c := &model.SportCategory{Name: "c"}
	require.NoError(t, db.SportCategories().Create(ctx, c))
	assert.Equal(t, 3, c.ID)
}

func TestGetByID_RoundTripsEveryColumn(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	org := &model.Organization{
		Name: "Bandung Hiking Society", SportCategoryID: 5, IsOkb: false,
		Location: "Manglayang", Schedule: "Sebulan sekali", Contact: "0822", Icon: "hiking",
	}
	require.NoError(t, db.Organizations().Create(ctx, org))

	got, err := db.Organizations().GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, org, got)

	event := &model.Event{
		Title: "Fun Run", Date: model.NewDate(2023, time.November, 25),
		Location: "Tegallega", Time: "07:00 - 11:00 WIB", Fee: "Gratis", ImageURL: "u",
	}
	require.NoError(t, db.Events().Create(ctx, event))

	gotEvent, err := db.Events().GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event, gotEvent)
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.News().GetByID(ctx, 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.EqualError(t, err, "news item not found with id 9999")
}

func TestJoinRequest_NullableMessage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	note := "ingin ikut"
	with := &model.JoinRequest{Name: "Budi", Email: "b@example.com", Phone: "0812", SportCategoryID: 2, Message: &note}
	without := &model.JoinRequest{Name: "Sari", Email: "s@example.com", Phone: "0813", SportCategoryID: 3}
	require.NoError(t, db.JoinRequests().Create(ctx, with))
	require.NoError(t, db.JoinRequests().Create(ctx, without))

	got, err := db.JoinRequests().GetByID(ctx, with.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Message)
	assert.Equal(t, note, *got.Message)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = db.JoinRequests().GetByID(ctx, without.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Message)
}

// =========================================================================
// LIST
// =========================================================================

func TestList_EmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)

	list, err := db.Messages().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestNewsList_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, d := range []model.Date{
		model.NewDate(2023, time.January, 1),
		model.NewDate(2023, time.June, 1),
		model.NewDate(2023, time.March, 1),
	} {
		n := &model.News{Title: d.String(), Date: d, Category: "Artikel", Content: "c", Excerpt: "e", ImageURL: "u"}
		require.NoError(t, db.News().Create(ctx, n))
	}

	list, err := db.News().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2023-06-01", list[0].Title)
	assert.Equal(t, "2023-03-01", list[1].Title)
	assert.Equal(t, "2023-01-01", list[2].Title)
}

func TestEventList_SameDayKeepsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	day := model.NewDate(2023, time.December, 10)
	for _, title := range []string{"first", "second"} {
		e := &model.Event{Title: title, Date: day, Location: "l", Time: "t", Fee: "f", ImageURL: "u"}
		require.NoError(t, db.Events().Create(ctx, e))
	}

	list, err := db.Events().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
}

func TestOrganizationList_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, o := range []model.Organization{
		{Name: "a", SportCategoryID: 1, IsOkb: true},
		{Name: "b", SportCategoryID: 2, IsOkb: false},
		{Name: "c", SportCategoryID: 1, IsOkb: false},
	} {
		require.NoError(t, db.Organizations().Create(ctx, &o))
	}

	yes, no, one := true, false, 1
	tests := []struct {
		name   string
		filter repository.OrganizationFilter
		want   []string
	}{
		{name: "none", want: []string{"a", "b", "c"}},
		{name: "okb", filter: repository.OrganizationFilter{IsOkb: &yes}, want: []string{"a"}},
		{name: "not okb", filter: repository.OrganizationFilter{IsOkb: &no}, want: []string{"b", "c"}},
		{name: "category", filter: repository.OrganizationFilter{SportCategoryID: &one}, want: []string{"a", "c"}},
		{name: "both", filter: repository.OrganizationFilter{IsOkb: &no, SportCategoryID: &one}, want: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := db.Organizations().List(ctx, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(list))
			for _, o := range list {
				names = append(names, o.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGalleryList_CategoryIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, cat := range []string{"Komunitas", "Event", "komunitas", "Öffentlich", "öffentlich"} {
		require.NoError(t, db.Gallery().Create(ctx, &model.GalleryItem{Title: cat, Category: cat, ImageURL: "u"}))
	}

	tests := []struct {
		category string
		want     []string
	}{
		{"KOMUNITAS", []string{"Komunitas", "komunitas"}},
		{"ÖFFENTLICH", []string{"Öffentlich", "öffentlich"}},
		{"Lainnya", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			list, err := db.Gallery().List(ctx, repository.GalleryFilter{Category: tt.category})
			require.NoError(t, err)
			assert.NotNil(t, list)

			titles := make([]string, 0, len(list))
			for _, g := range list {
				titles = append(titles, g.Title)
			}
			assert.Equal(t, tt.want, titles)

			// Both stores must agree.
			mem := memory.New()
			for _, cat := range []string{"Komunitas", "Event", "komunitas", "Öffentlich", "öffentlich"} {
				require.NoError(t, mem.Gallery().Create(ctx, &model.GalleryItem{Title: cat, Category: cat, ImageURL: "u"}))
			}
			memList, err := mem.Gallery().List(ctx, repository.GalleryFilter{Category: tt.category})
			require.NoError(t, err)
			assert.Len(t, memList, len(tt.want))
		})
	}
}

// =========================================================================
// UPDATE / DELETE
// =========================================================================

func TestUpdate_ReplacesFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n := &model.News{Title: "old", Date: model.NewDate(2023, time.October, 1), Category: "Artikel", Content: "c", Excerpt: "e", ImageURL: "u"}
	require.NoError(t, db.News().Create(ctx, n))

	n.Title = "new"
	n.Date = model.NewDate(2024, time.January, 2)
	require.NoError(t, db.News().Update(ctx, n))

	got, err := db.News().GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "2024-01-02", got.Date.String())
}

func TestUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Gallery().Update(context.Background(), &model.GalleryItem{ID: 42, Title: "x"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return created }

	msg := &model.Message{Name: "Ani", Email: "ani@example.com", Subject: "Halo", Message: "Apa kabar"}
	require.NoError(t, db.Messages().Create(ctx, msg))

	db.now = func() time.Time { return created.Add(time.Hour) }
	msg.Subject = "Halo lagi"
	msg.CreatedAt = time.Time{}
	require.NoError(t, db.Messages().Update(ctx, msg))

	assert.True(t, created.Equal(msg.CreatedAt), "CreatedAt = %v, want %v", msg.CreatedAt, created)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	e := &model.Event{Title: "t", Date: model.NewDate(2023, time.May, 5), Location: "l", Time: "t", Fee: "f", ImageURL: "u"}
	require.NoError(t, db.Events().Create(ctx, e))

	require.NoError(t, db.Events().Delete(ctx, e.ID))
	_, err := db.Events().GetByID(ctx, e.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = db.Events().Delete(ctx, e.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "second delete")
}

// =========================================================================
// USERS
// =========================================================================

func TestUsers_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Users().Create(ctx, &model.User{Username: "admin", PasswordHash: "h1"}))
	err := db.Users().Create(ctx, &model.User{Username: "admin", PasswordHash: "h2"})
	assert.True(t, errors.Is(err, apperror.ErrConflict), "got %v", err)

	u, err := db.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "h1", u.PasswordHash)

	_, err = db.Users().GetByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

// =========================================================================
// SEED
// =========================================================================

func TestSeed_TwiceDoublesEveryKind(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for n := 0; n < 2; n++ {
		_, err := repository.Seed(ctx, db)
		require.NoError(t, err)
	}

	cats, err := db.SportCategories().List(ctx)
	require.NoError(t, err)
	orgs, err := db.Organizations().List(ctx, repository.OrganizationFilter{})
	require.NoError(t, err)
	gallery, err := db.Gallery().List(ctx, repository.GalleryFilter{})
	require.NoError(t, err)

	assert.Len(t, cats, 14)
	assert.Len(t, orgs, 12)
	assert.Len(t, gallery, 16)
}
