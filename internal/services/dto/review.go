package dto

import "time"

type CreateReviewRequest struct {
	ArtistID string `json:"artist_id" binding:"required" validate:"required,uuid4"`
	OrderID  string `json:"order_id" binding:"required" validate:"required,uuid4"`
	Rating   int    `json:"rating" binding:"required" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required" validate:"required,notblank,max=2000"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	ArtistID     string    `json:"artist_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	OrderID      string    `json:"order_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ArtistAggregateResponse is the artist's cached rating projection.
type ArtistAggregateResponse struct {
	ArtistID    string  `json:"artist_id"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
}
