// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Post is an article that users can comment on.
type Post struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content,omitempty"`
	User      Ref[User] `db:"user_id" json:"user"`
	CreatedAt time.Time `db:"created_at" json:"createdAt,omitzero"`

	// Comments is filled only when the "comments" relation is populated.
	Comments []Comment `db:"-" json:"comments,omitzero"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

func (p *Post) GetID() string { return p.ID }
func (p *Post) SetID(id string) { p.ID = id }
func (p *Post) OwnerID() string { return p.User.ID }

// Comment is a user's comment on a post.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	Post      Ref[Post] `db:"post_id" json:"post"`
	User      Ref[User] `db:"user_id" json:"user"`
	CreatedAt time.Time `db:"created_at" json:"createdAt,omitzero"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}

func (c *Comment) GetID() string { return c.ID }
func (c *Comment) SetID(id string) { c.ID = id }
func (c *Comment) OwnerID() string { return c.User.ID }
