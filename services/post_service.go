// services/post_service.go - Blog posts and categories
package services

import (
	"fmt"
	"strings"
	"time"

	"liturgia/models"

	"gorm.io/gorm"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostInput is the editable part of a post. An empty Slug is derived from Title.
type PostInput struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
	CategoryID *uint  `json:"category_id"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Page bounds a listing. Zero values select page 1 of 20.
type Page struct {
	Number int
	Size   int
}

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
	return p
}

func (p Page) offset() int {
	return (p.Number - 1) * p.Size
}

// ================== PUBLIC ==================

// ListPublished returns published posts, newest first, optionally limited to
// one category slug.
func (s *PostService) ListPublished(categorySlug string, page Page) ([]models.Post, int64, error) {
	page = page.normalize()

	query := s.db.Model(&models.Post{}).Where("posts.published = ?", true)
	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	var posts []models.Post
	if err := query.Preload("Category").
		Order("posts.published_at DESC").
		Offset(page.offset()).Limit(page.Size).
		Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	return posts, total, nil
}

// GetPublishedBySlug hides drafts behind ErrNotFound.
func (s *PostService) GetPublishedBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Category").
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// AllPublished returns every published post, used by the sitemap.
func (s *PostService) AllPublished() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Where("published = ?", true).Order("published_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("listing published posts: %w", err)
	}
	return posts, nil
}

// ================== ADMIN: POSTS ==================

// List returns drafts and published posts, most recently edited first.
func (s *PostService) List(search string, page Page) ([]models.Post, int64, error) {
	page = page.normalize()

	query := s.db.Model(&models.Post{})
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	var posts []models.Post
	if err := query.Preload("Category").
		Order("updated_at DESC").
		Offset(page.offset()).Limit(page.Size).
		Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostService) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Category").First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Create stores a new post.
func (s *PostService) Create(in PostInput) (*models.Post, error) {
	post := &models.Post{}
	if err := s.apply(post, in); err != nil {
		return nil, err
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return s.Get(post.ID)
}

// Update replaces the editable fields of a post. The returned flag is true
// when this update published a draft.
func (s *PostService) Update(id uint, in PostInput) (*models.Post, bool, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, false, err
	}
	wasPublished := post.Published

	if err := s.apply(post, in); err != nil {
		return nil, false, err
	}
	post.Category = nil
	if err := s.db.Save(post).Error; err != nil {
		return nil, false, fmt.Errorf("updating post: %w", err)
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, false, err
	}
	return updated, !wasPublished && updated.Published, nil
}

func (s *PostService) Delete(id uint) error {
	res := s.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostService) apply(post *models.Post, in PostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return invalid("title", "is required")
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return invalid("slug", "cannot be derived from title")
	}

	var taken int64
	if err := s.db.Model(&models.Post{}).Where("slug = ? AND id <> ?", slug, post.ID).Count(&taken).Error; err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("post slug %q: %w", slug, ErrConflict)
	}

	if in.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
			return fmt.Errorf("checking category: %w", err)
		}
		if count == 0 {
			return invalid("category_id", "does not exist")
		}
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = strings.TrimSpace(in.Excerpt)
	post.Content = in.Content
	post.CoverImage = strings.TrimSpace(in.CoverImage)
	post.CategoryID = in.CategoryID
	post.Published = in.Published
	if post.Published && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	return nil
}

// ================== ADMIN: CATEGORIES ==================

func (s *PostService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

func (s *PostService) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (s *PostService) CreateCategory(in CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	if err := s.applyCategory(category, in); err != nil {
		return nil, err
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *PostService) UpdateCategory(id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCategory(category, in); err != nil {
		return nil, err
	}
	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}

// DeleteCategory refuses with ErrConflict while posts still use the category.
func (s *PostService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	var posts int64
	if err := s.db.Model(&models.Post{}).Where("category_id = ?", id).Count(&posts).Error; err != nil {
		return fmt.Errorf("counting category posts: %w", err)
	}
	if posts > 0 {
		return fmt.Errorf("category %d has %d posts: %w", id, posts, ErrConflict)
	}

	if err := s.db.Delete(&models.Category{}, id).Error; err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}

func (s *PostService) applyCategory(category *models.Category, in CategoryInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("name", "is required")
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return invalid("slug", "cannot be derived from name")
	}

	var taken int64
	if err := s.db.Model(&models.Category{}).Where("slug = ? AND id <> ?", slug, category.ID).Count(&taken).Error; err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("category slug %q: %w", slug, ErrConflict)
	}

	category.Name = name
	category.Slug = slug
	category.Description = strings.TrimSpace(in.Description)
	return nil
}
