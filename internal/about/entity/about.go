package entity

// About is one section of the about page. Sections render in OrderIndex
// order; IsReverse flips image and text.
type About struct {
	ID         int64  `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Content    string `db:"content" json:"content"`
	ImageURL   string `db:"image_url" json:"image_url"`
	IsReverse  bool   `db:"is_reverse" json:"is_reverse"`
	OrderIndex int    `db:"order_index" json:"order_index"`
}

// Input is the body accepted by create and update. Update replaces every
// field, so omitted fields fall back to their zero values.
type Input struct {
	Title      string `json:"title" validate:"max=255"`
	Content    string `json:"content" validate:"max=20000"`
	ImageURL   string `json:"image_url" validate:"max=2048"`
	IsReverse  bool   `json:"is_reverse"`
	OrderIndex int    `json:"order_index"`
}

// Row builds the stored record from the input.
func (in Input) Row(id int64) *About {
	return &About{
		ID:         id,
		Title:      in.Title,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		IsReverse:  in.IsReverse,
		OrderIndex: in.OrderIndex,
	}
}
