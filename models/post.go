package models

import (
	"time"
)

// Post is a single publication. Author and group are nullable at the schema
// level; every creation path through the app sets the author.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
	GroupID  *uint     `json:"group_id"`
	Group    *Group    `json:"group,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID *uint     `json:"author_id"`
	Author   *User     `json:"author,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Image    string    `json:"image,omitempty"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type CreatePostRequest struct {
	Text    string `json:"text" form:"text" binding:"required"`
	GroupID *uint  `json:"group_id" form:"group"`
}

type UpdatePostRequest struct {
	Text    string `json:"text" form:"text" binding:"required"`
	GroupID *uint  `json:"group_id" form:"group"`
}
