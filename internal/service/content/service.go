// internal/service/content/service.go
package content

import (
	"context"
	"sort"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/content"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/attachment"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/reconciler"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const defaultLocale = "en"

// ContentRepo is the primary record store surface for site content.
type ContentRepo interface {
	ListBlogPosts(ctx context.Context, locale string, publishedOnly bool) ([]content.BlogPost, error)
	FindBlogPost(ctx context.Context, id string) (*content.BlogPost, error)
	CreateBlogPost(ctx context.Context, p *content.BlogPost) error
	UpdateBlogPost(ctx context.Context, id string, in *content.BlogPostInput) error
	DeleteBlogPost(ctx context.Context, id string) error

	ListProjects(ctx context.Context, locale string, publishedOnly bool) ([]content.Project, error)
	FindProjectBySlug(ctx context.Context, locale, slug string) (*content.Project, error)
	CreateProject(ctx context.Context, p *content.Project) error
	UpdateProject(ctx context.Context, id string, p *content.Project) error
	DeleteProject(ctx context.Context, id string) error
}

// SnapshotStore is the fallback channel for public content reads.
type SnapshotStore interface {
	Save(ctx context.Context, collection string, v interface{}) error
	Load(ctx context.Context, collection string, dest interface{}) error
}

type Service struct {
	repo         ContentRepo
	snapshots    SnapshotStore
	mirrorWrites bool
	logger       *zap.Logger
}

func NewService(repo ContentRepo, snapshots SnapshotStore, mirrorWrites bool, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		snapshots:    snapshots,
		mirrorWrites: mirrorWrites,
		logger:       logger,
	}
}

// ---------- Blog posts ----------

// PublishedPosts is the public blog list: published posts for the locale,
// date-descending, with snapshot fallback when the record store is down.
func (s *Service) PublishedPosts(ctx context.Context, locale string) ([]content.BlogPost, error) {
	locale = normalizeLocale(locale)

	primary := func(ctx context.Context) ([]content.BlogPost, error) {
		return s.repo.ListBlogPosts(ctx, locale, true)
	}

	fallback := func(ctx context.Context) ([]content.BlogPost, error) {
		var all []content.BlogPost
		if err := s.snapshots.Load(ctx, "blog_posts", &all); err != nil {
			return nil, err
		}
		var posts []content.BlogPost
		for _, p := range all {
			if p.Locale == locale && p.Published {
				posts = append(posts, p)
			}
		}
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
		return posts, nil
	}

	rows, fromFallback, err := reconciler.Read(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		s.logger.Warn("blog list served from snapshot fallback", zap.String("locale", locale))
	}
	return rows, nil
}

// AllPosts is the admin blog list, drafts included.
func (s *Service) AllPosts(ctx context.Context, locale string) ([]content.BlogPost, error) {
	return s.repo.ListBlogPosts(ctx, normalizeLocale(locale), false)
}

func (s *Service) GetPost(ctx context.Context, id string) (*content.BlogPost, error) {
	return s.repo.FindBlogPost(ctx, id)
}

func (s *Service) CreatePost(ctx context.Context, in *content.BlogPostInput) (*content.BlogPost, error) {
	p := &content.BlogPost{
		ID:        ulid.Make().String(),
		Title:     strings.TrimSpace(in.Title),
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Image:     in.Image,
		Category:  in.Category,
		Date:      in.Date,
		Locale:    normalizeLocale(in.Locale),
		Published: in.Published,
	}

	if err := s.repo.CreateBlogPost(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("blog post created", zap.String("post_id", p.ID), zap.String("locale", p.Locale))
	s.mirrorBlogSnapshot(ctx)
	return p, nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, in *content.BlogPostInput) (*content.BlogPost, error) {
	in.Locale = normalizeLocale(in.Locale)
	if err := s.repo.UpdateBlogPost(ctx, id, in); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindBlogPost(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog post updated", zap.String("post_id", id))
	s.mirrorBlogSnapshot(ctx)
	return updated, nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.repo.DeleteBlogPost(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog post deleted", zap.String("post_id", id))
	s.mirrorBlogSnapshot(ctx)
	return nil
}

// ---------- Projects ----------

// PublishedProjects is the public portfolio list with snapshot fallback.
func (s *Service) PublishedProjects(ctx context.Context, locale string) ([]content.Project, error) {
	locale = normalizeLocale(locale)

	primary := func(ctx context.Context) ([]content.Project, error) {
		return s.repo.ListProjects(ctx, locale, true)
	}

	fallback := func(ctx context.Context) ([]content.Project, error) {
		var all []content.Project
		if err := s.snapshots.Load(ctx, "projects", &all); err != nil {
			return nil, err
		}
		var projects []content.Project
		for _, p := range all {
			if p.Locale == locale && p.Published {
				projects = append(projects, p)
			}
		}
		sort.SliceStable(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
		return projects, nil
	}

	rows, fromFallback, err := reconciler.Read(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		s.logger.Warn("project list served from snapshot fallback", zap.String("locale", locale))
	}
	return rows, nil
}

// AllProjects is the admin portfolio list, drafts included.
func (s *Service) AllProjects(ctx context.Context, locale string) ([]content.Project, error) {
	return s.repo.ListProjects(ctx, normalizeLocale(locale), false)
}

func (s *Service) GetProject(ctx context.Context, locale, slug string) (*content.Project, error) {
	return s.repo.FindProjectBySlug(ctx, normalizeLocale(locale), slug)
}

func (s *Service) CreateProject(ctx context.Context, in *content.ProjectInput) (*content.Project, error) {
	p := projectFromInput(ulid.Make().String(), in)

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", p.ID),
		zap.String("slug", p.Slug),
		zap.String("locale", p.Locale),
	)
	s.mirrorProjectSnapshot(ctx)
	return p, nil
}

func (s *Service) UpdateProject(ctx context.Context, id string, in *content.ProjectInput) (*content.Project, error) {
	p := projectFromInput(id, in)

	if err := s.repo.UpdateProject(ctx, id, p); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", zap.String("project_id", id))
	s.mirrorProjectSnapshot(ctx)
	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", zap.String("project_id", id))
	s.mirrorProjectSnapshot(ctx)
	return nil
}

func projectFromInput(id string, in *content.ProjectInput) *content.Project {
	return &content.Project{
		ID:             id,
		Slug:           strings.TrimSpace(in.Slug),
		Title:          strings.TrimSpace(in.Title),
		TitleKey:       optional(in.TitleKey),
		Description:    in.Description,
		DescriptionKey: optional(in.DescriptionKey),
		Category:       in.Category,
		Year:           in.Year,
		Location:       in.Location,
		Client:         in.Client,
		HeroImage:      in.HeroImage,
		GalleryImages:  attachment.NormalizeURLList(in.GalleryImages),
		Locale:         normalizeLocale(in.Locale),
		Published:      in.Published,
	}
}

func (s *Service) mirrorBlogSnapshot(ctx context.Context) {
	if !s.mirrorWrites {
		return
	}
	// Mirror both locales so the fallback stays complete.
	var all []content.BlogPost
	for _, locale := range []string{"en", "nl"} {
		rows, err := s.repo.ListBlogPosts(ctx, locale, false)
		if err != nil {
			s.logger.Warn("blog snapshot mirror skipped", zap.Error(err))
			return
		}
		all = append(all, rows...)
	}
	if err := s.snapshots.Save(ctx, "blog_posts", all); err != nil {
		s.logger.Warn("blog snapshot mirror write failed", zap.Error(err))
	}
}

func (s *Service) mirrorProjectSnapshot(ctx context.Context) {
	if !s.mirrorWrites {
		return
	}
	var all []content.Project
	for _, locale := range []string{"en", "nl"} {
		rows, err := s.repo.ListProjects(ctx, locale, false)
		if err != nil {
			s.logger.Warn("project snapshot mirror skipped", zap.Error(err))
			return
		}
		all = append(all, rows...)
	}
	if err := s.snapshots.Save(ctx, "projects", all); err != nil {
		s.logger.Warn("project snapshot mirror write failed", zap.Error(err))
	}
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return defaultLocale
	}
	return locale
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
