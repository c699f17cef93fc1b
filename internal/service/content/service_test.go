package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/content"

	"go.uber.org/zap"
)

type fakeContentRepo struct {
	posts    []content.BlogPost
	listErr  error
	projects []content.Project

	lastLocale        string
	lastPublishedOnly bool
}

func (f *fakeContentRepo) ListBlogPosts(ctx context.Context, locale string, publishedOnly bool) ([]content.BlogPost, error) {
	f.lastLocale = locale
	f.lastPublishedOnly = publishedOnly
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []content.BlogPost
	for _, p := range f.posts {
		if p.Locale != locale {
			continue
		}
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeContentRepo) FindBlogPost(ctx context.Context, id string) (*content.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeContentRepo) CreateBlogPost(ctx context.Context, p *content.BlogPost) error {
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakeContentRepo) UpdateBlogPost(ctx context.Context, id string, in *content.BlogPostInput) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Title = in.Title
			f.posts[i].Published = in.Published
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeContentRepo) DeleteBlogPost(ctx context.Context, id string) error { return nil }

func (f *fakeContentRepo) ListProjects(ctx context.Context, locale string, publishedOnly bool) ([]content.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []content.Project
	for _, p := range f.projects {
		if p.Locale != locale {
			continue
		}
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeContentRepo) FindProjectBySlug(ctx context.Context, locale, slug string) (*content.Project, error) {
	for i := range f.projects {
		if f.projects[i].Locale == locale && f.projects[i].Slug == slug {
			return &f.projects[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeContentRepo) CreateProject(ctx context.Context, p *content.Project) error {
	f.projects = append(f.projects, *p)
	return nil
}

func (f *fakeContentRepo) UpdateProject(ctx context.Context, id string, p *content.Project) error {
	return nil
}

func (f *fakeContentRepo) DeleteProject(ctx context.Context, id string) error { return nil }

type fakeSnapshot struct {
	data map[string][]byte
}

func (f *fakeSnapshot) Save(ctx context.Context, collection string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.data[collection] = raw
	return nil
}

func (f *fakeSnapshot) Load(ctx context.Context, collection string, dest interface{}) error {
	raw, ok := f.data[collection]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func newService(repo *fakeContentRepo, snap *fakeSnapshot) *Service {
	if repo == nil {
		repo = &fakeContentRepo{}
	}
	if snap == nil {
		snap = &fakeSnapshot{}
	}
	return NewService(repo, snap, false, zap.NewNop())
}

func TestPublishedPosts(t *testing.T) {
	t.Run("missing locale defaults to en", func(t *testing.T) {
		repo := &fakeContentRepo{}
		svc := newService(repo, nil)

		if _, err := svc.PublishedPosts(context.Background(), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastLocale != "en" {
			t.Fatalf("expected en default, got %q", repo.lastLocale)
		}
		if !repo.lastPublishedOnly {
			t.Fatal("public list must request published posts only")
		}
	})

	t.Run("snapshot fallback filters locale and published, newest first", func(t *testing.T) {
		repo := &fakeContentRepo{listErr: errors.New("store down")}
		snap := &fakeSnapshot{}
		_ = snap.Save(context.Background(), "blog_posts", []content.BlogPost{
			{ID: "p1", Locale: "en", Published: true, Date: "2025-01-10"},
			{ID: "p2", Locale: "en", Published: false, Date: "2025-05-01"},
			{ID: "p3", Locale: "nl", Published: true, Date: "2025-06-01"},
			{ID: "p4", Locale: "en", Published: true, Date: "2025-03-20"},
		})
		svc := newService(repo, snap)

		posts, err := svc.PublishedPosts(context.Background(), "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(posts) != 2 {
			t.Fatalf("expected 2 posts, got %d", len(posts))
		}
		if posts[0].ID != "p4" || posts[1].ID != "p1" {
			t.Fatalf("posts not date-descending: %s, %s", posts[0].ID, posts[1].ID)
		}
	})
}

func TestPublishedProjects_SnapshotFallback(t *testing.T) {
	repo := &fakeContentRepo{listErr: errors.New("store down")}
	snap := &fakeSnapshot{}
	// Stored oldest-first: the snapshot blob carries no ordering of its
	// own, the read has to restore newest-first.
	_ = snap.Save(context.Background(), "projects", []content.Project{
		{ID: "pr1", Slug: "canal-house", Locale: "nl", Published: true, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "pr2", Slug: "loft", Locale: "nl", Published: false, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "pr3", Slug: "office", Locale: "en", Published: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "pr4", Slug: "penthouse", Locale: "nl", Published: true, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
	svc := newService(repo, snap)

	projects, err := svc.PublishedProjects(context.Background(), "NL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("unexpected projects %v", projects)
	}
	if projects[0].ID != "pr4" || projects[1].ID != "pr1" {
		t.Fatalf("fallback not newest-first: got %s, %s", projects[0].ID, projects[1].ID)
	}
}

func TestCreateProject_NormalizesGallery(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := newService(repo, nil)

	p, err := svc.CreateProject(context.Background(), &content.ProjectInput{
		Slug:          " canal-house ",
		Title:         "Canal House",
		Locale:        "EN",
		GalleryImages: "https://cdn/a.jpg, https://cdn/b.jpg,",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slug != "canal-house" {
		t.Fatalf("slug not trimmed: %q", p.Slug)
	}
	if p.Locale != "en" {
		t.Fatalf("locale not normalized: %q", p.Locale)
	}
	if len(p.GalleryImages) != 2 {
		t.Fatalf("gallery not normalized: %v", p.GalleryImages)
	}
	if p.ID == "" {
		t.Fatal("project id not assigned")
	}
}

func TestAllPosts_IncludesDrafts(t *testing.T) {
	repo := &fakeContentRepo{posts: []content.BlogPost{
		{ID: "p1", Locale: "en", Published: true},
		{ID: "p2", Locale: "en", Published: false},
	}}
	svc := newService(repo, nil)

	posts, err := svc.AllPosts(context.Background(), "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("admin list should include drafts, got %d", len(posts))
	}
}
