package constants

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Context / session keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "transition_session"

// MaxAIGeneratedTasks caps how many draft tasks a single AI call may return.
const MaxAIGeneratedTasks = 20

// SortColumns maps allowed sort keys to their database columns for task and
// milestone listings. Anything outside this whitelist falls back to created_at.
var SortColumns = map[string]string{
	"title":     "title",
	"dueDate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"createdAt": "created_at",
}
