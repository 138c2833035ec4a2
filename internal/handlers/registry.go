package handlers

// AppHandlers bundles all HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	OrderHandler        *OrderHandler
	ReviewHandler       *ReviewHandler
	ArtistHandler       *ArtistHandler
	NotificationHandler *NotificationHandler
}
