package server

import "net/http"

func (s *Server) initRoutes() {
	// Credential flows
	s.RegisterRouteHandler("POST "+RouteSignIn, ChainMiddleware(s.SignInHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignUp, ChainMiddleware(s.SignUpHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignOut, ChainMiddleware(s.SignOutHandler(), s.APIMiddleware()...))

	// Password management
	s.RegisterRouteHandler("POST "+RouteNewPassword, ChainMiddleware(s.NewPasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), s.APIMiddleware()...))

	// Session
	s.RegisterRouteHandler("GET "+RouteSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireIDToken())...))

	// Browser preflights arrive as OPTIONS and would otherwise 405 against the
	// method-scoped patterns above. CorsMiddleware answers them.
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealth, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
