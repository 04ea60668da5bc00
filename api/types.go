package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler         pageHandler
	authHandler         authHandler
	adminHandler        adminHandler
	skillHandler        skillHandler
	projectHandler      projectHandler
	blogPostHandler     blogPostHandler
	messageHandler      messageHandler
	personalInfoHandler personalInfoHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string              `json:"error" example:"Internal Server Error"`
	Status  string              `json:"status" example:"error"`
	Field   string              `json:"field,omitempty" example:"title"`
	Details string              `json:"details,omitempty" example:"Additional error details"`
	Cause   string              `json:"cause,omitempty" example:"Underlying error cause"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// FormResponse answers AJAX form submissions. It is always sent with status 200.
type FormResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ListResponse is the generic admin listing
type ListResponse struct {
	Entity  string      `json:"entity"`
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}

// IDsRequest selects records for a bulk admin action
type IDsRequest struct {
	IDs []uint `json:"ids"`
}

// BulkActionResponse reports how many records an admin action changed
type BulkActionResponse struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}

// LoginRequest carries the admin password
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries a bearer token for the admin API
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
