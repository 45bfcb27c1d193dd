package entity

import (
	"time"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/content"
)

// Project is a portfolio entry. DateAdded is stamped by the server on create
// and never changed afterwards.
type Project struct {
	ID          int64              `db:"id" json:"id"`
	Title       string             `db:"title" json:"title"`
	Category    string             `db:"category" json:"category"`
	Description string             `db:"description" json:"description"`
	ImageURL    string             `db:"image_url" json:"image_url"`
	Features    content.StringList `db:"features" json:"features"`
	Tech        content.StringList `db:"tech" json:"tech"`
	GitHub      string             `db:"github" json:"github"`
	Live        string             `db:"live" json:"live"`
	DateAdded   time.Time          `db:"date_added" json:"date_added"`
}

// Input is the body accepted by create and update. A date_added sent by the
// client is ignored.
type Input struct {
	Title       string             `json:"title" validate:"max=255"`
	Category    string             `json:"category" validate:"max=100"`
	Description string             `json:"description" validate:"max=20000"`
	ImageURL    string             `json:"image_url" validate:"max=2048"`
	Features    content.StringList `json:"features" validate:"max=100"`
	Tech        content.StringList `json:"tech" validate:"max=100"`
	GitHub      string             `json:"github" validate:"max=2048"`
	Live        string             `json:"live" validate:"max=2048"`
}

func (in Input) Row(id int64) *Project {
	return &Project{
		ID:          id,
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Features:    in.Features.OrEmpty(),
		Tech:        in.Tech.OrEmpty(),
		GitHub:      in.GitHub,
		Live:        in.Live,
	}
}
