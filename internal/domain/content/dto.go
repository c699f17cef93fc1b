// internal/domain/content/dto.go
package content

type BlogPostInput struct {
	Title    string `json:"title" binding:"required,max=255"`
	Excerpt  string `json:"excerpt" binding:"max=1000"`
	Content  string `json:"content" binding:"required"`
	Image    string `json:"image" binding:"max=1000"`
	Category string `json:"category" binding:"max=100"`
	Date     string `json:"date" binding:"max=20"`
	Locale   string `json:"locale" binding:"required,max=10"`

	Published bool `json:"published"`
}

// ProjectInput carries the admin project form. GalleryImages arrives as a
// comma-delimited string and is normalized before persistence.
type ProjectInput struct {
	Slug           string `json:"slug" binding:"required,max=255"`
	Title          string `json:"title" binding:"required,max=255"`
	TitleKey       string `json:"title_key" binding:"max=255"`
	Description    string `json:"description" binding:"max=5000"`
	DescriptionKey string `json:"description_key" binding:"max=255"`
	Category       string `json:"category" binding:"max=100"`
	Year           string `json:"year" binding:"max=10"`
	Location       string `json:"location" binding:"max=255"`
	Client         string `json:"client" binding:"max=255"`
	HeroImage      string `json:"hero_image" binding:"max=1000"`
	GalleryImages  string `json:"gallery_images"`
	Locale         string `json:"locale" binding:"required,max=10"`

	Published bool `json:"published"`
}
