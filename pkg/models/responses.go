package models

// ErrorResponse is the generic error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// OKResponse is the minimal success/failure body used by the public
// tracking endpoint, which must never carry more detail than this.
type OKResponse struct {
	OK bool `json:"ok"`
}

// EngagementRow is one user's engagement summary for admin analytics.
type EngagementRow struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	PlayaName       string  `json:"playaName,omitempty"`
	IsAdmin         bool    `json:"isAdmin"`
	LastLoginAt     *string `json:"lastLoginAt"`
	LoginCount      int     `json:"loginCount"`
	ActionsThisWeek int     `json:"actionsThisWeek"`
	LastPage        *string `json:"lastPage"`
	LastActivity    *string `json:"lastActivity"`
}
