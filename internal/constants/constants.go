package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID     = "user_id"
	ContextKeyProject    = "project"
	ContextKeyMembership = "membership"
	ContextKeyTask       = "task"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxTitleLength    = 255
	MaxNameLength     = 255
)

// Token lifetime in hours
const TokenLifetimeHours = 24
