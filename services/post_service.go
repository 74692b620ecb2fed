package services

import (
	"pulse/models"

	"gorm.io/gorm"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// feedQuery is the base query every feed builds on: newest first by
// publication time, with author and group loaded for rendering.
func (s *PostService) feedQuery() *gorm.DB {
	return s.db.Model(&models.Post{}).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date DESC, posts.id DESC")
}

// GlobalFeed returns every post, newest first.
func (s *PostService) GlobalFeed() ([]models.Post, error) {
	var posts []models.Post
	err := s.feedQuery().Find(&posts).Error
	return posts, err
}

// GroupFeed resolves the group by slug and returns the feed for its page.
// Note: the feed is the full global post set, not the group's posts — this
// reproduces the upstream system's observed behavior for the group page.
func (s *PostService) GroupFeed(slug string) (*models.Group, []models.Post, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, nil, err
	}

	var posts []models.Post
	if err := s.feedQuery().Find(&posts).Error; err != nil {
		return nil, nil, err
	}
	return &group, posts, nil
}

// ProfileFeed returns the author's posts newest first, plus the author's
// total post count.
func (s *PostService) ProfileFeed(username string) (*models.User, []models.Post, int64, error) {
	var author models.User
	if err := s.db.Where("username = ?", username).First(&author).Error; err != nil {
		return nil, nil, 0, err
	}

	var posts []models.Post
	if err := s.feedQuery().Where("author_id = ?", author.ID).Find(&posts).Error; err != nil {
		return nil, nil, 0, err
	}

	var count int64
	if err := s.db.Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&count).Error; err != nil {
		return nil, nil, 0, err
	}

	return &author, posts, count, nil
}

// FollowingFeed returns posts authored by users the viewer follows, newest
// first.
func (s *PostService) FollowingFeed(viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.feedQuery().
		Select("posts.*").
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", viewerID).
		Find(&posts).Error
	return posts, err
}

func (s *PostService) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Group").First(&post, id).Error
	return &post, err
}

// CountPosts returns the total number of posts. The post detail page shows
// this counter.
func (s *PostService) CountPosts() (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (s *PostService) CreatePost(authorID uint, req *models.CreatePostRequest, imageKey string) (*models.Post, error) {
	post := &models.Post{
		Text:     req.Text,
		GroupID:  req.GroupID,
		AuthorID: &authorID,
		Image:    imageKey,
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost mutates a post's text, group and optionally its image. PubDate
// is never touched. Authorization is the caller's responsibility.
func (s *PostService) UpdatePost(post *models.Post, req *models.UpdatePostRequest, imageKey string) error {
	post.Text = req.Text
	post.GroupID = req.GroupID
	if imageKey != "" {
		post.Image = imageKey
	}
	return s.db.Save(post).Error
}
