package feed

import (
	"testing"

	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	posts        []models.Post
	filtered     []models.Post
	likedIDs     []uint
	interactions []models.UserInteraction
	reviews      []models.Review

	filterCategoryIDs []uint
	filterTagIDs      []uint
}

func (f *fakePostRepo) Create(post *models.Post) error {
	post.ID = uint(len(f.posts) + 1)
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) GetByID(id uint) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (f *fakePostRepo) ListByArtisan(artisanProfileID uint) ([]models.Post, error) {
	return f.posts, nil
}

func (f *fakePostRepo) ListRecent(limit int) ([]models.Post, error) {
	if len(f.posts) > limit {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func (f *fakePostRepo) ListByCategoriesOrTags(categoryIDs, tagIDs []uint, limit int) ([]models.Post, error) {
	f.filterCategoryIDs = categoryIDs
	f.filterTagIDs = tagIDs
	if len(f.filtered) > limit {
		return f.filtered[:limit], nil
	}
	return f.filtered, nil
}

func (f *fakePostRepo) LikedPostIDs(userID uint) ([]uint, error) {
	return f.likedIDs, nil
}

func (f *fakePostRepo) UpsertInteraction(interaction *models.UserInteraction) error {
	f.interactions = append(f.interactions, *interaction)
	return nil
}

func (f *fakePostRepo) CreateReview(review *models.Review) error {
	review.ID = uint(len(f.reviews) + 1)
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakePostRepo) ListReviewsByArtisan(artisanProfileID uint) ([]models.Review, error) {
	return f.reviews, nil
}

type fakeProfileRepo struct {
	clients  map[uint]*models.ClientProfile
	artisans map[uint]*models.ArtisanProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		clients:  make(map[uint]*models.ClientProfile),
		artisans: make(map[uint]*models.ArtisanProfile),
	}
}

func (f *fakeProfileRepo) GetClientByUserID(userID uint) (*models.ClientProfile, error) {
	if p, ok := f.clients[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetArtisanByUserID(userID uint) (*models.ArtisanProfile, error) {
	if p, ok := f.artisans[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetArtisanByID(id uint) (*models.ArtisanProfile, error) {
	for _, p := range f.artisans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) EnsureClient(userID uint) (*models.ClientProfile, error) {
	return f.clients[userID], nil
}

func (f *fakeProfileRepo) EnsureArtisan(userID uint) (*models.ArtisanProfile, error) {
	return f.artisans[userID], nil
}

func (f *fakeProfileRepo) DeleteClient(userID uint) error  { return nil }
func (f *fakeProfileRepo) DeleteArtisan(userID uint) error { return nil }

func (f *fakeProfileRepo) UpdateClient(p *models.ClientProfile) error   { return nil }
func (f *fakeProfileRepo) UpdateArtisan(p *models.ArtisanProfile) error { return nil }

func (f *fakeProfileRepo) ReplacePreferredCategories(p *models.ClientProfile, categories []models.Category) error {
	return nil
}
func (f *fakeProfileRepo) ReplaceFollowedTags(p *models.ClientProfile, tags []models.Tag) error {
	return nil
}
func (f *fakeProfileRepo) ReplaceOfferedServices(p *models.ArtisanProfile, services []models.Service) error {
	return nil
}

type fakeCatalogRepo struct {
	categories []models.Category
	tags       []models.Tag
}

func (f *fakeCatalogRepo) ListCategories() ([]models.Category, error) { return f.categories, nil }
func (f *fakeCatalogRepo) ListServices() ([]models.Service, error)    { return nil, nil }

func (f *fakeCatalogRepo) GetCategoriesByIDs(ids []uint) ([]models.Category, error) {
	return f.categories, nil
}
func (f *fakeCatalogRepo) GetServicesByIDs(ids []uint) ([]models.Service, error) { return nil, nil }
func (f *fakeCatalogRepo) GetTagsByIDs(ids []uint) ([]models.Tag, error)         { return f.tags, nil }

func (f *fakeCatalogRepo) EnsureTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for i, name := range names {
		tags = append(tags, tag(uint(i+1), name))
	}
	f.tags = tags
	return tags, nil
}

func category(id uint, name string) models.Category {
	c := models.Category{Name: name}
	c.ID = id
	return c
}

func tag(id uint, name string) models.Tag {
	t := models.Tag{Name: name}
	t.ID = id
	return t
}

func post(id uint) models.Post {
	p := models.Post{JobTitle: "job"}
	p.ID = id
	return p
}

func TestPersonalizedFeed(t *testing.T) {
	t.Run("filters by preferences and boosts liked posts", func(t *testing.T) {
		posts := &fakePostRepo{
			filtered: []models.Post{post(1), post(2), post(3), post(4)},
			likedIDs: []uint{3},
		}
		profiles := newFakeProfileRepo()
		profiles.clients[7] = &models.ClientProfile{
			UserID:              7,
			PreferredCategories: []models.Category{category(2, "Home Services")},
			FollowedTags:        []models.Tag{tag(5, "plumbing")},
		}

		svc := NewService(posts, profiles, &fakeCatalogRepo{})
		feed, err := svc.PersonalizedFeed(7, 20)

		require.NoError(t, err)
		assert.Equal(t, []uint{2}, posts.filterCategoryIDs)
		assert.Equal(t, []uint{5}, posts.filterTagIDs)

		ids := make([]uint, 0, len(feed))
		for _, p := range feed {
			ids = append(ids, p.ID)
		}
		// Liked post first, recency order preserved within each group.
		assert.Equal(t, []uint{3, 1, 2, 4}, ids)
	})

	t.Run("no preferences falls back to recent posts", func(t *testing.T) {
		posts := &fakePostRepo{posts: []models.Post{post(1), post(2)}}
		profiles := newFakeProfileRepo()
		profiles.clients[7] = &models.ClientProfile{UserID: 7}

		svc := NewService(posts, profiles, &fakeCatalogRepo{})
		feed, err := svc.PersonalizedFeed(7, 0)

		require.NoError(t, err)
		assert.Len(t, feed, 2)
	})

	t.Run("limit is capped", func(t *testing.T) {
		posts := &fakePostRepo{}
		for i := 1; i <= 30; i++ {
			posts.posts = append(posts.posts, post(uint(i)))
		}
		profiles := newFakeProfileRepo()
		profiles.clients[7] = &models.ClientProfile{UserID: 7}

		svc := NewService(posts, profiles, &fakeCatalogRepo{})
		feed, err := svc.PersonalizedFeed(7, 100)

		require.NoError(t, err)
		assert.Len(t, feed, DefaultLimit)
	})

	t.Run("missing client profile", func(t *testing.T) {
		svc := NewService(&fakePostRepo{}, newFakeProfileRepo(), &fakeCatalogRepo{})
		_, err := svc.PersonalizedFeed(7, 20)

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("publishes under the artisan profile with tags", func(t *testing.T) {
		posts := &fakePostRepo{}
		profiles := newFakeProfileRepo()
		artisan := &models.ArtisanProfile{UserID: 9}
		artisan.ID = 4
		profiles.artisans[9] = artisan

		svc := NewService(posts, profiles, &fakeCatalogRepo{})
		created, err := svc.CreatePost(9, CreatePostInput{
			JobTitle:    "Pipe repair",
			Description: "Fast and clean",
			TagNames:    []string{"plumbing", "repair"},
			Price:       50,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(4), created.ArtisanProfileID)
		assert.Len(t, created.Tags, 2)
	})

	t.Run("requires a job title", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		profiles.artisans[9] = &models.ArtisanProfile{UserID: 9}

		svc := NewService(&fakePostRepo{}, profiles, &fakeCatalogRepo{})
		_, err := svc.CreatePost(9, CreatePostInput{})

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("requires an artisan profile", func(t *testing.T) {
		svc := NewService(&fakePostRepo{}, newFakeProfileRepo(), &fakeCatalogRepo{})
		_, err := svc.CreatePost(9, CreatePostInput{JobTitle: "Pipe repair"})

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestRecordInteraction(t *testing.T) {
	posts := &fakePostRepo{posts: []models.Post{post(1)}}
	profiles := newFakeProfileRepo()
	svc := NewService(posts, profiles, &fakeCatalogRepo{})

	require.NoError(t, svc.RecordInteraction(7, 1, true, true))
	require.Len(t, posts.interactions, 1)
	assert.True(t, posts.interactions[0].Liked)

	err := svc.RecordInteraction(7, 99, true, false)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateReview(t *testing.T) {
	profiles := newFakeProfileRepo()
	client := &models.ClientProfile{UserID: 7}
	client.ID = 2
	profiles.clients[7] = client
	artisan := &models.ArtisanProfile{UserID: 9}
	artisan.ID = 4
	profiles.artisans[9] = artisan

	t.Run("files the review under the client profile", func(t *testing.T) {
		posts := &fakePostRepo{}
		svc := NewService(posts, profiles, &fakeCatalogRepo{})

		review, err := svc.CreateReview(7, CreateReviewInput{
			ArtisanProfileID: 4,
			Rating:           5,
			Comment:          "Great work",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(2), review.ClientProfileID)
		assert.Equal(t, uint(4), review.ArtisanProfileID)
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		svc := NewService(&fakePostRepo{}, profiles, &fakeCatalogRepo{})
		_, err := svc.CreateReview(7, CreateReviewInput{ArtisanProfileID: 4, Rating: 6})

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("rejects unknown artisans", func(t *testing.T) {
		svc := NewService(&fakePostRepo{}, profiles, &fakeCatalogRepo{})
		_, err := svc.CreateReview(7, CreateReviewInput{ArtisanProfileID: 99, Rating: 4})

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}
