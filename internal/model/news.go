package model

type GetNewsRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit" validate:"gte=0"`
}

type GetNewsResponse struct {
	News []NewsArticle `json:"news"`
}

type CreateNewsRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	URL      string `json:"url" validate:"omitempty,url"`
	ImageURL string `json:"image_url"`
	Category string `json:"category" validate:"required"`
}

type CreateNewsResponse struct {
	News NewsArticle `json:"news"`
}

type UpdateNewsRequest struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	URL      string `json:"url" validate:"omitempty,url"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

type UpdateNewsResponse struct {
	News NewsArticle `json:"news"`
}

type DeleteNewsRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteNewsResponse struct{}

type GetLiveNewsRequest struct {
	Q        string `json:"q"`
	Category string `json:"category"`
}

type LiveArticle struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	ImageURL    string   `json:"image_url"`
	SourceID    string   `json:"source_id"`
	SourceName  string   `json:"source_name"`
	PubDate     string   `json:"pubDate"`
	Category    []string `json:"category"`
}

type GetLiveNewsResponse struct {
	Articles []LiveArticle `json:"articles"`
}
