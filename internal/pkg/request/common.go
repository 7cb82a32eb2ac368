package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// ListParams holds pagination parameters shared by list endpoints.
type ListParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size" binding:"omitempty,max=100"`
}

// ActorQuery carries the caller identifier for operations gated by the
// user-existence check.
type ActorQuery struct {
	Username string `form:"username" binding:"required"`
}
