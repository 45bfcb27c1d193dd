package adminclient

import "time"

// AboutItem mirrors one row of /api/about.
type AboutItem struct {
	ID         int64  `json:"id,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	IsReverse  bool   `json:"is_reverse"`
	OrderIndex int    `json:"order_index"`
}

// Project mirrors one row of /api/projects. DateAdded is set by the server.
type Project struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Features    []string  `json:"features"`
	Tech        []string  `json:"tech"`
	GitHub      string    `json:"github"`
	Live        string    `json:"live"`
	DateAdded   time.Time `json:"date_added"`
}

// Service mirrors one row of /api/services.
type Service struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Points      []string `json:"points"`
	ImageURL    string   `json:"image_url"`
}

// Session is what the client keeps after a successful login.
type Session struct {
	Token     string    `json:"token"`
	FullName  string    `json:"fullname"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Ack is the server's answer to update and delete.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
