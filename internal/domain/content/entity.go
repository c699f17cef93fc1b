// internal/domain/content/entity.go
package content

import (
	"time"

	"github.com/lib/pq"
)

// BlogPost is a locale-scoped article. Public reads see only published
// posts, newest first.
type BlogPost struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Excerpt  string `json:"excerpt" db:"excerpt"`
	Content  string `json:"content" db:"content"`
	Image    string `json:"image" db:"image"`
	Category string `json:"category" db:"category"`
	Date     string `json:"date" db:"date"`
	Locale   string `json:"locale" db:"locale"`

	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Project is a locale-scoped portfolio entry.
type Project struct {
	ID             string         `json:"id" db:"id"`
	Slug           string         `json:"slug" db:"slug"`
	Title          string         `json:"title" db:"title"`
	TitleKey       *string        `json:"title_key,omitempty" db:"title_key"`
	Description    string         `json:"description" db:"description"`
	DescriptionKey *string        `json:"description_key,omitempty" db:"description_key"`
	Category       string         `json:"category" db:"category"`
	Year           string         `json:"year" db:"year"`
	Location       string         `json:"location" db:"location"`
	Client         string         `json:"client" db:"client"`
	HeroImage      string         `json:"hero_image" db:"hero_image"`
	GalleryImages  pq.StringArray `json:"gallery_images" db:"gallery_images"`
	Locale         string         `json:"locale" db:"locale"`

	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
