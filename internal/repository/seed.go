package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ghiffarsabda/kormimvp/internal/model"
)

// SeedCounts is how many records of each kind one Seed call appends.
type SeedCounts struct {
	SportCategories int `json:"sportCategories"`
	Organizations   int `json:"organizations"`
	Events          int `json:"events"`
	News            int `json:"news"`
	Gallery         int `json:"gallery"`
}

// Seed appends the demo dataset through the regular Create path.
//
// It is not idempotent: every call adds the whole dataset again under new
// ids. Organizations point at the categories created by the same call.
func Seed(ctx context.Context, s Store) (SeedCounts, error) {
	var counts SeedCounts

	categoryIDs := make(map[string]int)
	for _, name := range []string{"Lari", "Sepeda", "Senam", "Yoga", "Hiking", "Renang", "Pingpong"} {
		c := &model.SportCategory{Name: name}
		if err := s.SportCategories().Create(ctx, c); err != nil {
			return counts, fmt.Errorf("seeding sport category %q: %w", name, err)
		}
		categoryIDs[name] = c.ID
		counts.SportCategories++
	}

	orgs := []struct {
		category string
		org      model.Organization
	}{
		{"Sepeda", model.Organization{
			Name: "Bandung Bike Community", IsOkb: true,
			Location: "Taman Lansia, Bandung", Schedule: "Minggu, 06:00 WIB",
			Contact: "0812-3456-7890", Icon: "bicycle",
		}},
		{"Lari", model.Organization{
			Name: "Bandung Runners", IsOkb: true,
			Location: "Track Stadion Siliwangi", Schedule: "Sabtu & Minggu, 05:30 WIB",
			Contact: "0877-8765-4321", Icon: "running",
		}},
		{"Yoga", model.Organization{
			Name: "Yoga for Everyone", IsOkb: true,
			Location: "Taman Film, Bandung", Schedule: "Sabtu, 07:00 WIB",
			Contact: "0856-7890-1234", Icon: "spa",
		}},
		{"Hiking", model.Organization{
			Name: "Bandung Hiking Society", IsOkb: false,
			Location: "Bervariasi (Tangkuban Perahu, Manglayang)", Schedule: "Satu bulan sekali",
			Contact: "0822-1234-5678", Icon: "hiking",
		}},
		{"Pingpong", model.Organization{
			Name: "Bandung Pingpong Club", IsOkb: false,
			Location: "GOR Saparua, Bandung", Schedule: "Rabu & Jumat, 18:00 WIB",
			Contact: "0813-2345-6789", Icon: "table-tennis",
		}},
		{"Renang", model.Organization{
			Name: "Bandung Swimming Community", IsOkb: true,
			Location: "Kolam Renang UPI, Bandung", Schedule: "Minggu, 07:00 WIB",
			Contact: "0878-9012-3456", Icon: "swimmer",
		}},
	}
	for _, o := range orgs {
		org := o.org
		org.SportCategoryID = categoryIDs[o.category]
		if err := s.Organizations().Create(ctx, &org); err != nil {
			return counts, fmt.Errorf("seeding organization %q: %w", org.Name, err)
		}
		counts.Organizations++
	}

	events := []model.Event{
		{
			Title: "Bandung Fun Run 2023", Date: model.NewDate(2023, time.November, 25),
			Location: "Taman Tegallega, Bandung", Time: "07:00 - 11:00 WIB", Fee: "Gratis",
			ImageURL: "https://images.unsplash.com/photo-1517649763962-0c623066013b",
		},
		{
			Title: "Bandung Sport Festival", Date: model.NewDate(2023, time.December, 10),
			Location: "Lapangan Gasibu, Bandung", Time: "08:00 - 17:00 WIB", Fee: "Rp 75.000",
			ImageURL: "https://images.unsplash.com/photo-1564349683136-77e08dba1ef3",
		},
		{
			Title: "Yoga di Taman", Date: model.NewDate(2023, time.December, 15),
			Location: "Taman Film, Bandung", Time: "06:00 - 08:00 WIB", Fee: "Gratis",
			ImageURL: "https://images.unsplash.com/photo-1565992441121-4367c2967103",
		},
	}
	for i := range events {
		if err := s.Events().Create(ctx, &events[i]); err != nil {
			return counts, fmt.Errorf("seeding event %q: %w", events[i].Title, err)
		}
		counts.Events++
	}

	news := []model.News{
		{
			Title:    "Festival Olahraga Rekreasi Kota Bandung 2023 Sukses Digelar",
			Date:     model.NewDate(2023, time.October, 15),
			Category: model.NewsCategoryEvent,
			Content:  "Festival Olahraga Rekreasi Kota Bandung 2023 yang diselenggarakan KORMI Kota Bandung sukses menarik ribuan peserta dari berbagai komunitas olahraga.",
			ImageURL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b",
		},
		{
			Title:    "5 Manfaat Olahraga Rekreasi untuk Kesehatan Mental",
			Date:     model.NewDate(2023, time.October, 10),
			Category: model.NewsCategoryArticle,
			Content:  "Olahraga rekreasi terbukti tidak hanya bermanfaat untuk kesehatan fisik, tetapi juga memiliki dampak positif terhadap kesehatan mental.",
			ImageURL: "https://images.unsplash.com/photo-1551632811-561732d1e306",
		},
		{
			Title:    "Bandung Bike Community: Pedal untuk Lingkungan",
			Date:     model.NewDate(2023, time.October, 8),
			Category: model.NewsCategoryCommunity,
			Content:  "Bandung Bike Community bukan hanya komunitas bersepeda, tetapi juga aktif dalam kegiatan peduli lingkungan di Kota Bandung.",
			ImageURL: "https://images.unsplash.com/photo-1526676037777-05a232554f77",
		},
		{
			Title:    "Yoga di Taman Kota: Menyatu dengan Alam",
			Date:     model.NewDate(2023, time.October, 5),
			Category: model.NewsCategoryEvent,
			Content:  "Kegiatan Yoga di Taman Kota yang diinisiasi KORMI Bandung bersama komunitas yoga lokal telah menjadi rutinitas mingguan yang populer.",
			ImageURL: "https://images.unsplash.com/photo-1516939884455-1445c8652f83",
		},
		{
			Title:    "5 Spot Terbaik untuk Lari Pagi di Bandung",
			Date:     model.NewDate(2023, time.October, 1),
			Category: model.NewsCategoryArticle,
			Content:  "Bandung memiliki beragam lokasi yang cocok untuk aktivitas lari pagi. Berikut 5 spot terbaik yang direkomendasikan para pelari lokal.",
			ImageURL: "https://images.unsplash.com/photo-1533107862482-0e6974b06ec4",
		},
	}
	for i := range news {
		// The demo excerpts are the full (short) content.
		news[i].Excerpt = news[i].Content
		if err := s.News().Create(ctx, &news[i]); err != nil {
			return counts, fmt.Errorf("seeding news %q: %w", news[i].Title, err)
		}
		counts.News++
	}

	gallery := []model.GalleryItem{
		{Title: "Festival Olahraga 2023", Category: "Event", ImageURL: "https://images.unsplash.com/photo-1517649763962-0c623066013b"},
		{Title: "Yoga di Taman Film", Category: "Komunitas", ImageURL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b"},
		{Title: "Bandung Bike Community", Category: "Komunitas", ImageURL: "https://images.unsplash.com/photo-1526676037777-05a232554f77"},
		{Title: "Bandung Runners", Category: "Komunitas", ImageURL: "https://images.unsplash.com/photo-1533107862482-0e6974b06ec4"},
		{Title: "Turnamen Antar Komunitas", Category: "Event", ImageURL: "https://images.unsplash.com/photo-1574271143515-5cddf8da19be"},
		{Title: "Yoga for Everyone", Category: "Komunitas", ImageURL: "https://images.unsplash.com/photo-1565992441121-4367c2967103"},
		{Title: "Pelatihan Pelatih Rekreasi", Category: "Pelatihan", ImageURL: "https://images.unsplash.com/photo-1540539234-c14a20fb7c7b"},
		{Title: "Bandung Pingpong Club", Category: "Komunitas", ImageURL: "https://images.unsplash.com/photo-1564349683136-77e08dba1ef3"},
	}
	for i := range gallery {
		if err := s.Gallery().Create(ctx, &gallery[i]); err != nil {
			return counts, fmt.Errorf("seeding gallery item %q: %w", gallery[i].Title, err)
		}
		counts.Gallery++
	}

	return counts, nil
}
