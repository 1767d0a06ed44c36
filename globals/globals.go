package globals

import (
	"context"
	"os"
)

var (
	JwtSecret    = []byte(getenv("JWT_SECRET", "change-me-in-production"))
	WebhookToken = getenv("WEBHOOK_TOKEN", "")
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
