package api

// Config holds server configuration.
type Config struct {
	Port              int
	RateLimitRequests int        // Requests per minute (0 = disabled)
	RateLimitBurst    int        // Burst size
	Auth              AuthConfig // Authentication configuration
	AllowedOrigins    []string   // CORS allowed origins (empty = allow all)
}
