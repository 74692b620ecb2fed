package services

import (
	"errors"

	"pulse/models"

	"gorm.io/gorm"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrAlreadyFollowed is returned when a follow row for the target
	// author already exists. The check is on the author alone, not on the
	// (follower, author) pair, matching the upstream mutation rule.
	ErrAlreadyFollowed = errors.New("author already followed")
)

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) Follow(userID uint, author *models.User) error {
	if author.ID == userID {
		return ErrSelfFollow
	}

	var count int64
	if err := s.db.Model(&models.Follow{}).
		Where("author_id = ?", author.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFollowed
	}

	follow := &models.Follow{
		UserID:   &userID,
		AuthorID: &author.ID,
	}
	return s.db.Create(follow).Error
}

// Unfollow deletes every follow row matching the viewer and the target
// author's username. Deleting zero rows is not an error.
func (s *FollowService) Unfollow(userID uint, username string) error {
	authorIDs := s.db.Model(&models.User{}).Select("id").Where("username = ?", username)
	return s.db.
		Where("user_id = ? AND author_id IN (?)", userID, authorIDs).
		Delete(&models.Follow{}).Error
}

func (s *FollowService) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
