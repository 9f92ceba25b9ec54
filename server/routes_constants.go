package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Credential flows
	RouteSignIn  = "/api/auth/signin"
	RouteSignUp  = "/api/auth/signup"
	RouteSignOut = "/api/auth/signout"

	// Auth Routes - Password Management
	RouteNewPassword    = "/api/auth/new-password"
	RouteForgotPassword = "/api/auth/forgot-password"

	// Session Routes
	RouteSession = "/api/auth/session"
	RouteMe      = "/api/auth/me"

	// Operational Routes
	RouteHealth = "/health"
)
