package test_utils

import (
	"context"
	"database/sql"
	"testing"

	"github.com/finbook/finbook/pkg/user"
)

// TestUser is the identity used by repository and service tests.
var TestUser = user.User{
	Id:          1,
	Uid:         "11111111-1111-1111-1111-111111111111",
	Username:    "test_user",
	DisplayName: "Test User",
}

// UserCtx returns a context carrying TestUser, mirroring what the X-User-Id
// middleware does for real requests.
func UserCtx() context.Context {
	return user.WithUser(context.Background(), TestUser)
}

// InsertTestUser stores TestUser so foreign keys hold in repository tests.
func InsertTestUser(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO users (id, uid, username, display_name) VALUES (?, ?, ?, ?)",
		TestUser.Id, TestUser.Uid, TestUser.Username, TestUser.DisplayName,
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
}
