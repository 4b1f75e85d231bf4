package domain

import "time"

type ThreadSummary struct {
	Id         ThreadId  `json:"id"`
	Title      string    `json:"title"`
	Thumbnail  *string   `json:"thumbnail"` // nil when the opening post has no files
	ImageURL   *string   `json:"image_url"`
	Date       string    `json:"date,omitempty"` // upstream display date
	CreatedAt  time.Time `json:"created_at"`
	PostsCount int       `json:"posts_count"`
	FilesCount int       `json:"files_count"`
	Views      int       `json:"views"`
	Score      float64   `json:"score"`
}

type ThreadPage struct {
	Board    BoardId         `json:"board"`
	Threads  []ThreadSummary `json:"threads"`
	Page     int             `json:"page"`
	Pages    int             `json:"pages"`
	Fallback bool            `json:"fallback"`
}

type ThreadDetail struct {
	Board      BoardId  `json:"board"`
	Id         ThreadId `json:"id"`
	Title      string   `json:"title"`
	PostsCount int      `json:"posts_count"`
	FilesCount int      `json:"files_count"`
	Posts      []Post   `json:"posts"`
}

type Post struct {
	Num       PostNum   `json:"num"`
	Op        bool      `json:"op"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject,omitempty"`
	Comment   string    `json:"comment"` // sanitized HTML
	Date      string    `json:"date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Files     []File    `json:"files"`
}

type File struct {
	Name         string `json:"name"`
	FullName     string `json:"full_name,omitempty"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	SizeKB       int    `json:"size_kb,omitempty"`
}
