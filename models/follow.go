package models

// Follow links a follower to a followed author. The table deliberately
// carries no (user_id, author_id) uniqueness; deduplication is guarded in
// the mutation path only.
type Follow struct {
	ID       uint  `json:"id" gorm:"primaryKey"`
	UserID   *uint `json:"user_id"`
	User     *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID *uint `json:"author_id"`
	Author   *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
