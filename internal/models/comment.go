package models

import (
	"time"
)

// Comment is a reply on a post. Comments form a forest: top-level
// comments have no parent, replies point at a parent comment on the
// same post. BodyHTML is always a re-derivation of Body; every write
// path that changes Body must recompute it via RenderBody.
type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PostID    uint       `gorm:"not null;index" json:"post_id"`
	Post      Post       `gorm:"foreignKey:PostID" json:"-"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	BodyHTML  string     `gorm:"type:text" json:"body_html"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
	Timestamp time.Time  `gorm:"autoCreateTime;index" json:"timestamp"`
	EditTime  *time.Time `json:"edit_time,omitempty"`
	ParentID  *uint      `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Comment   `gorm:"foreignKey:ParentID" json:"-"`
	Children  []Comment  `gorm:"foreignKey:ParentID" json:"-"`
}

// CommentNode is a comment with its resolved replies, assembled from
// the flat parent-indexed rows.
type CommentNode struct {
	Comment  *Comment       `json:"comment"`
	Children []*CommentNode `json:"children"`
}

// BuildThread arranges a post's comments into a forest. Rows must all
// belong to one post; ordering within a level follows the input order.
func BuildThread(comments []*Comment) []*CommentNode {
	index := make(map[uint]*CommentNode, len(comments))
	for _, c := range comments {
		index[c.ID] = &CommentNode{Comment: c}
	}

	var roots []*CommentNode
	for _, c := range comments {
		node := index[c.ID]
		if c.ParentID != nil {
			if parent, ok := index[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
