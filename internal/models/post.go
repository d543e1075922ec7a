package models

import "time"

// Post представляет публикацию пользователя.
type Post struct {
	ID         int       `json:"id"`
	AuthorUID  string    `json:"author_uid"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Comment представляет комментарий к посту.
type Comment struct {
	ID         int       `json:"id"`
	PostID     int       `json:"post_id"`
	AuthorUID  string    `json:"author_uid"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}
