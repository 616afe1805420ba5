package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyLogger = "logger"
)

// List caps
const (
	OpenTaskListLimit       = 50
	RecentlyCompletedLimit  = 2
	FeedLimit               = 200
	FeedDefaultWindowInDays = 7
)

// Progress bounds for projects and progress updates
const (
	MinProgress = 0
	MaxProgress = 100
)

// FeedDateLayout is the MM-DD-YYYY format accepted by the feed endpoint
const FeedDateLayout = "01-02-2006"

// RoleAdmin grants task/project creation and feed access
const RoleAdmin = "admin"
