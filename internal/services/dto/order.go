package dto

import "time"

type CreateOrderRequest struct {
	ArtistID        string    `json:"artist_id" binding:"required" validate:"required,uuid4"`
	Title           string    `json:"title" binding:"required" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=5000"`
	Category        string    `json:"category" validate:"max=100"`
	ReferenceImages []string  `json:"reference_images" validate:"max=10,dive,url"`
	Budget          float64   `json:"budget" binding:"required" validate:"required,gt=0"`
	Deadline        time.Time `json:"deadline" binding:"required" validate:"required"`
}

type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status" binding:"required" validate:"required,orderstatus"`
}

type OrderResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	ArtistID        string    `json:"artist_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	ReferenceImages []string  `json:"reference_images,omitempty"`
	Budget          float64   `json:"budget"`
	Deadline        time.Time `json:"deadline"`
	Status          string    `json:"status"`
	ProgressIndex   int       `json:"progress_index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}
