package services

// ServiceContainer bundles all services for wiring in the app package.
type ServiceContainer struct {
	AuthService         AuthService
	OrderService        OrderService
	ReviewService       ReviewService
	NotificationService NotificationService
}
