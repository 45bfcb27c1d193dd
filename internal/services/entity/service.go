package entity

import "github.com/ovaphlow/pitchfork/service-portfolio/internal/content"

// ServiceItem is one offering listed on the services page.
type ServiceItem struct {
	ID          int64              `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	Description string             `db:"description" json:"description"`
	Points      content.StringList `db:"points" json:"points"`
	ImageURL    string             `db:"image_url" json:"image_url"`
}

type Input struct {
	Name        string             `json:"name" validate:"max=255"`
	Description string             `json:"description" validate:"max=20000"`
	Points      content.StringList `json:"points" validate:"max=100"`
	ImageURL    string             `json:"image_url" validate:"max=2048"`
}

func (in Input) Row(id int64) *ServiceItem {
	return &ServiceItem{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Points:      in.Points.OrEmpty(),
		ImageURL:    in.ImageURL,
	}
}
