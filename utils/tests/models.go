package tests

import (
	"time"

	"github.com/google/uuid"
)

// Author has many `Posts` (backward fk) and one `Profile` (backward o2o),
// a Post belongs to an Author and has many `Tags` (many to many),
// a Comment references its Post by slug and an optional parent Comment
type Author struct {
	ID    int
	Name  string `tame:"type:text"`
	Email string `tame:"unique;size:120"`
}

type Profile struct {
	Author  *Author `tame:"o2o:blog.Author;pk;related_name:profile"`
	Bio     *string `tame:"type:text"`
	Website string  `tame:"null"`
}

type Post struct {
	ID        int64
	Title     string     `tame:"size:200;index"`
	Slug      string     `tame:"unique;size:64"`
	Author    *Author    `tame:"fk:blog.Author"`
	Tags      []*Tag     `tame:"m2m:blog.Tag"`
	Published bool       `tame:"default:false"`
	CreatedAt time.Time  `tame:"default:2024-01-01 00:00:00"`
	Extra     map[string]interface{}
}

type Tag struct {
	Name string `tame:"pk;size:50"`
}

type Comment struct {
	UUID   uuid.UUID `tame:"pk"`
	Post   *Post     `tame:"fk:blog.Post;to_field:slug;related_name:comments;on_delete:set null;null"`
	Parent *Comment  `tame:"fk:blog.Comment;related_name:-;null"`
	Body   string    `tame:"type:text;description:comment body"`
}
