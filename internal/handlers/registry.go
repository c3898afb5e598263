package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	SearchHandler *SearchHandler
	MatchHandler  *MatchHandler
	HealthHandler *HealthHandler
}
