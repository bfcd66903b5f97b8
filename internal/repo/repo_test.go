package repo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"CivilBot/internal/history"
)

func TestWithSSLMode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://u:p@db/civil", "postgres://u:p@db/civil?sslmode=require"},
		{"postgresql://db/civil?connect_timeout=5", "postgresql://db/civil?connect_timeout=5&sslmode=require"},
		{"user=postgres dbname=civil", "user=postgres dbname=civil sslmode=require"},
		{"postgres://db/civil?sslmode=disable", "postgres://db/civil?sslmode=disable"},
	}
	for _, tt := range tests {
		if got := withSSLMode(tt.in); got != tt.want {
			t.Errorf("withSSLMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewPostgresHistoryRepository_DefaultLimit(t *testing.T) {
	r := NewPostgresHistoryRepository(nil, 0)
	if r.max != 50 {
		t.Errorf("max = %d, want 50", r.max)
	}
}

// openTestRepo connects to DATABASE_URL or skips the test.
func openTestRepo(t *testing.T, max int) *PostgresHistoryRepository {
	t.Helper()
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := InitDB(connStr)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := NewPostgresHistoryRepository(db, max)
	if err := r.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return r
}

func TestPostgresHistoryRepository(t *testing.T) {
	r := openTestRepo(t, 2)
	ctx := context.Background()
	conv := history.NewConversationID()
	t.Cleanup(func() { r.Clear(context.Background(), conv) })

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	messages := []string{"first", "second", "third"}
	for i, msg := range messages {
		ex, err := r.Append(ctx, history.Exchange{
			ConversationID: conv,
			UserMessage:    msg,
			BotResponse:    "re: " + msg,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Append %q: %v", msg, err)
		}
		if ex.ID == "" {
			t.Errorf("Append %q returned no ID", msg)
		}
	}

	got, err := r.List(ctx, conv, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d exchanges, want 2 after trimming", len(got))
	}
	if got[0].UserMessage != "second" || got[1].UserMessage != "third" {
		t.Errorf("List = [%q %q], want [second third] oldest first", got[0].UserMessage, got[1].UserMessage)
	}
	if !got[1].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", got[1].CreatedAt, base.Add(2*time.Minute))
	}

	got, err = r.List(ctx, conv, 1)
	if err != nil {
		t.Fatalf("List limit 1: %v", err)
	}
	if len(got) != 1 || got[0].UserMessage != "third" {
		t.Errorf("List limit 1 = %+v, want only the newest", got)
	}

	other, err := r.List(ctx, history.NewConversationID(), 0)
	if err != nil || len(other) != 0 {
		t.Errorf("unknown conversation = %v, %v; want empty", other, err)
	}

	if err := r.Clear(ctx, conv); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = r.List(ctx, conv, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("after Clear List = %v, %v; want empty", got, err)
	}
}

func TestPostgresHistoryRepository_AppendNeedsConversation(t *testing.T) {
	r := openTestRepo(t, 2)
	_, err := r.Append(context.Background(), history.Exchange{UserMessage: "hi"})
	if !errors.Is(err, history.ErrNoConversation) {
		t.Errorf("err = %v, want ErrNoConversation", err)
	}
}
