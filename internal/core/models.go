package core

import "time"

// Post is a single feed entry as served by the remote service.
type Post struct {
	PostID    string    `json:"postId"`
	Content   string    `json:"content"`
	User      string    `json:"user"`
	Image     []string  `json:"image"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
	Timestamp time.Time `json:"timestamp"`
}

// Comment is an append-only entry of Post.Comments.
type Comment struct {
	User      string    `json:"user"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPost is the payload of the add post endpoint. Likes, Comments and Timestamp
// are only sent when an existing post is resubmitted under its own id.
type NewPost struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	User      string     `json:"user"`
	Image     []string   `json:"image"`
	Likes     int        `json:"likes,omitempty"`
	Comments  []Comment  `json:"comments,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Ack is the common {success, message} answer of the remote service.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Screen string

const (
	ScreenHome  Screen = "Home"
	ScreenLogin Screen = "Login"
)

// NavigationIntent asks the presentation layer to move somewhere. Back means
// "return to the previous screen" and ignores Screen.
type NavigationIntent struct {
	Screen  Screen `json:"screen,omitempty"`
	Replace bool   `json:"replace,omitempty"`
	Back    bool   `json:"back,omitempty"`
}

// Notification is a user visible local alert.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
