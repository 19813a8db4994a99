//go:build integration

package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/rollcall/rollcall/internal/testutil"
)

var testRepo *Repository

func TestMain(m *testing.M) {
	url, cleanup, err := testutil.StartPostgres()
	if err != nil {
		log.Fatalf("start postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	testRepo, err = New(ctx, url)
	cancel()
	if err != nil {
		_ = cleanup()
		log.Fatalf("connect: %v", err)
	}

	code := m.Run()

	testRepo.Close()
	if err := cleanup(); err != nil {
		log.Printf("cleanup: %v", err)
	}
	os.Exit(code)
}

// newUserTestEnv resets the users table and returns a request context.
func newUserTestEnv(t *testing.T) context.Context {
	t.Helper()

	ctx := context.Background()
	if err := testutil.ResetUsersTable(ctx, testRepo.Pool()); err != nil {
		t.Fatalf("reset users table: %v", err)
	}
	return ctx
}

func TestIntegrationUserRepository_CreateUser(t *testing.T) {
	ctx := newUserTestEnv(t)

	start := time.Now().Add(-time.Second)
	user, err := testRepo.CreateUser(ctx, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("ID = %d, want 1 on a fresh table", user.ID)
	}
	if user.FirstName != "Ada" || user.LastName != "Lovelace" {
		t.Errorf("name mismatch: got %q %q", user.FirstName, user.LastName)
	}
	if user.CreatedAt.Before(start) {
		t.Errorf("CreatedAt %v is before request start %v", user.CreatedAt, start)
	}
}

func TestIntegrationUserRepository_CreateUser_IDsIncrease(t *testing.T) {
	ctx := newUserTestEnv(t)

	first, err := testRepo.CreateUser(ctx, "Grace", "Hopper")
	if err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}
	second, err := testRepo.CreateUser(ctx, "Alan", "Turing")
	if err != nil {
		t.Fatalf("CreateUser (second) failed: %v", err)
	}

	if second.ID <= first.ID {
		t.Errorf("IDs not increasing: first=%d second=%d", first.ID, second.ID)
	}
}

func TestIntegrationUserRepository_GetUserByID(t *testing.T) {
	ctx := newUserTestEnv(t)

	created, err := testRepo.CreateUser(ctx, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := testRepo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
	if got.FirstName != created.FirstName || got.LastName != created.LastName {
		t.Errorf("name mismatch: got %q %q", got.FirstName, got.LastName)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestIntegrationUserRepository_GetUserByID_NotFound(t *testing.T) {
	ctx := newUserTestEnv(t)

	_, err := testRepo.GetUserByID(ctx, 999999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_ListUsers_Pagination(t *testing.T) {
	ctx := newUserTestEnv(t)

	names := [][2]string{{"Ada", "Lovelace"}, {"Grace", "Hopper"}, {"Alan", "Turing"}}
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		user, err := testRepo.CreateUser(ctx, n[0], n[1])
		if err != nil {
			t.Fatalf("CreateUser(%q) failed: %v", n[0], err)
		}
		ids = append(ids, user.ID)
	}

	page, err := testRepo.ListUsers(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListUsers(2, 0) failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("ListUsers(2, 0) returned %d users, want 2", len(page))
	}
	if page[0].ID != ids[0] || page[1].ID != ids[1] {
		t.Errorf("first page IDs = [%d %d], want [%d %d]", page[0].ID, page[1].ID, ids[0], ids[1])
	}

	page, err = testRepo.ListUsers(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListUsers(2, 2) failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("ListUsers(2, 2) returned %d users, want 1", len(page))
	}
	if page[0].ID != ids[2] {
		t.Errorf("second page ID = %d, want %d", page[0].ID, ids[2])
	}
}

func TestIntegrationUserRepository_ListUsers_Empty(t *testing.T) {
	ctx := newUserTestEnv(t)

	users, err := testRepo.ListUsers(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty slice, got %d users", len(users))
	}
}

func TestIntegrationUserRepository_CountUsers(t *testing.T) {
	ctx := newUserTestEnv(t)

	if _, err := testRepo.CreateUser(ctx, "Ada", "Lovelace"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	count, err := testRepo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers = %d, want 1", count)
	}
}
