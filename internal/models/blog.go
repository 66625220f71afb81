// Package models declares the example apps loaded by the tame command:
// `blog` (authors, posts, tags, comments) and `accounts` (users of the blog).
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tameorm/tame"
)

const (
	// BlogModels location of the blog app models
	BlogModels = "blog.models"
	// AccountModels location of the accounts app models
	AccountModels = "accounts.models"
)

func init() {
	tame.RegisterModels(BlogModels, &Author{}, &Post{}, &Tag{}, &Comment{})
	tame.RegisterModels(AccountModels, &User{})
}

type Author struct {
	ID       int
	Name     string `tame:"type:text"`
	Email    string `tame:"unique;size:120"`
	Password string `tame:"size:128;description:password hash"`
}

func (Author) TableComment() string {
	return "Authors of the blog"
}

// DisplayName computed property of Author
func (a *Author) DisplayName() string {
	return a.Name + " <" + a.Email + ">"
}

func (Author) ComputedDescriptions() map[string]string {
	return map[string]string{"display_name": "Name and email of the author"}
}

type Post struct {
	ID        int64
	Title     string    `tame:"size:200;index"`
	Slug      string    `tame:"unique;size:64"`
	Body      string    `tame:"type:text"`
	Author    *Author   `tame:"fk:blog.Author"`
	Tags      []*Tag    `tame:"m2m:blog.Tag;related_name:posts"`
	Published bool      `tame:"default:false"`
	CreatedAt time.Time `tame:"default:now"`
}

type Tag struct {
	Name string `tame:"pk;size:50"`
}

type Comment struct {
	UUID   uuid.UUID `tame:"pk"`
	Post   *Post     `tame:"fk:blog.Post;to_field:slug;related_name:comments"`
	Parent *Comment  `tame:"fk:blog.Comment;related_name:replies;null;on_delete:set null"`
	Body   string    `tame:"type:text"`
}
