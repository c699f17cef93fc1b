// internal/repository/postgres/content_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/content"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ContentRepository covers the two locale-scoped content collections,
// blog posts and projects.
type ContentRepository struct {
	db *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

const blogColumns = `id, title, excerpt, content, image, category, date, locale, published, created_at, updated_at`

const projectColumns = `id, slug, title, title_key, description, description_key, category, year,
	location, client, hero_image, gallery_images, locale, published, created_at, updated_at`

// ---------- Blog posts ----------

// ListBlogPosts returns posts for a locale ordered date-descending.
// publishedOnly narrows to the public read path.
func (r *ContentRepository) ListBlogPosts(ctx context.Context, locale string, publishedOnly bool) ([]content.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE locale = $1`
	if publishedOnly {
		query += ` AND published = true`
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, locale)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var posts []content.BlogPost
	for rows.Next() {
		var p content.BlogPost
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Image, &p.Category,
			&p.Date, &p.Locale, &p.Published, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// FindBlogPost retrieves a single post by id.
func (r *ContentRepository) FindBlogPost(ctx context.Context, id string) (*content.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`

	var p content.BlogPost
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Image, &p.Category,
		&p.Date, &p.Locale, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &p, nil
}

// CreateBlogPost inserts a post.
func (r *ContentRepository) CreateBlogPost(ctx context.Context, p *content.BlogPost) error {
	query := `
		INSERT INTO blog_posts (id, title, excerpt, content, image, category, date, locale, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Excerpt, p.Content, p.Image, p.Category, p.Date, p.Locale, p.Published,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", mapError(err))
	}

	return nil
}

// UpdateBlogPost replaces the editable fields of a post.
func (r *ContentRepository) UpdateBlogPost(ctx context.Context, id string, in *content.BlogPostInput) error {
	query := `
		UPDATE blog_posts SET
			title = $1, excerpt = $2, content = $3, image = $4, category = $5,
			date = $6, locale = $7, published = $8, updated_at = now()
		WHERE id = $9
	`

	tag, err := r.db.Exec(ctx, query,
		in.Title, in.Excerpt, in.Content, in.Image, in.Category, in.Date, in.Locale, in.Published, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("blog post", id)
	}

	return nil
}

// DeleteBlogPost removes a post permanently.
func (r *ContentRepository) DeleteBlogPost(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("blog post", id)
	}

	return nil
}

// ---------- Projects ----------

// ListProjects returns portfolio entries for a locale, newest first.
func (r *ContentRepository) ListProjects(ctx context.Context, locale string, publishedOnly bool) ([]content.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE locale = $1`
	if publishedOnly {
		query += ` AND published = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, locale)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var projects []content.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}

	return projects, rows.Err()
}

// FindProjectBySlug retrieves a project for a locale by its slug.
func (r *ContentRepository) FindProjectBySlug(ctx context.Context, locale, slug string) (*content.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE locale = $1 AND slug = $2`

	p, err := scanProject(r.db.QueryRow(ctx, query, locale, slug))
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}

// CreateProject inserts a project.
func (r *ContentRepository) CreateProject(ctx context.Context, p *content.Project) error {
	query := `
		INSERT INTO projects (
			id, slug, title, title_key, description, description_key, category,
			year, location, client, hero_image, gallery_images, locale, published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	if p.GalleryImages == nil {
		p.GalleryImages = pq.StringArray{}
	}

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Slug, p.Title, p.TitleKey, p.Description, p.DescriptionKey, p.Category,
		p.Year, p.Location, p.Client, p.HeroImage, p.GalleryImages, p.Locale, p.Published,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", mapError(err))
	}

	return nil
}

// UpdateProject replaces the editable fields of a project.
func (r *ContentRepository) UpdateProject(ctx context.Context, id string, p *content.Project) error {
	query := `
		UPDATE projects SET
			slug = $1, title = $2, title_key = $3, description = $4, description_key = $5,
			category = $6, year = $7, location = $8, client = $9, hero_image = $10,
			gallery_images = $11, locale = $12, published = $13, updated_at = now()
		WHERE id = $14
	`

	if p.GalleryImages == nil {
		p.GalleryImages = pq.StringArray{}
	}

	tag, err := r.db.Exec(ctx, query,
		p.Slug, p.Title, p.TitleKey, p.Description, p.DescriptionKey,
		p.Category, p.Year, p.Location, p.Client, p.HeroImage,
		p.GalleryImages, p.Locale, p.Published, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("project", id)
	}

	return nil
}

// DeleteProject removes a project permanently.
func (r *ContentRepository) DeleteProject(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("project", id)
	}

	return nil
}

func scanProject(row pgx.Row) (*content.Project, error) {
	var p content.Project
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.TitleKey, &p.Description, &p.DescriptionKey,
		&p.Category, &p.Year, &p.Location, &p.Client, &p.HeroImage, &p.GalleryImages,
		&p.Locale, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.GalleryImages == nil {
		p.GalleryImages = pq.StringArray{}
	}
	return &p, nil
}
