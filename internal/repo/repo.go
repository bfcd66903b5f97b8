package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"CivilBot/internal/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_exchanges (
	id              TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	user_message    TEXT NOT NULL,
	bot_response    TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS chat_exchanges_conversation_idx
	ON chat_exchanges (conversation_id, created_at);
`

// PostgresHistoryRepository is a history.Store backed by Postgres.
type PostgresHistoryRepository struct {
	db  *sql.DB
	max int
}

var _ history.Store = (*PostgresHistoryRepository)(nil)

func NewPostgresHistoryRepository(db *sql.DB, maxPerConversation int) *PostgresHistoryRepository {
	if maxPerConversation <= 0 {
		maxPerConversation = history.DefaultLimit
	}
	return &PostgresHistoryRepository{db: db, max: maxPerConversation}
}

// Migrate creates the exchanges table if it does not exist.
func (r *PostgresHistoryRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate chat_exchanges: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) Append(ctx context.Context, ex history.Exchange) (history.Exchange, error) {
	ex, err := history.Stamp(ex)
	if err != nil {
		return history.Exchange{}, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return history.Exchange{}, err
	}
	defer tx.Rollback()

	query := "INSERT INTO chat_exchanges (id, conversation_id, user_message, bot_response, created_at) VALUES ($1, $2, $3, $4, $5)"
	if _, err := tx.ExecContext(ctx, query, ex.ID, ex.ConversationID, ex.UserMessage, ex.BotResponse, ex.CreatedAt); err != nil {
		return history.Exchange{}, fmt.Errorf("insert exchange: %w", err)
	}

	trim := `DELETE FROM chat_exchanges WHERE conversation_id = $1 AND id NOT IN (
		SELECT id FROM chat_exchanges WHERE conversation_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2)`
	if _, err := tx.ExecContext(ctx, trim, ex.ConversationID, r.max); err != nil {
		return history.Exchange{}, fmt.Errorf("trim conversation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return history.Exchange{}, err
	}
	return ex, nil
}

func (r *PostgresHistoryRepository) List(ctx context.Context, conversationID string, limit int) ([]history.Exchange, error) {
	if limit <= 0 {
		limit = r.max
	}
	query := `SELECT id, conversation_id, user_message, bot_response, created_at FROM (
		SELECT * FROM chat_exchanges WHERE conversation_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2
	) recent ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()

	out := []history.Exchange{}
	for rows.Next() {
		var ex history.Exchange
		if err := rows.Scan(&ex.ID, &ex.ConversationID, &ex.UserMessage, &ex.BotResponse, &ex.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (r *PostgresHistoryRepository) Clear(ctx context.Context, conversationID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM chat_exchanges WHERE conversation_id = $1", conversationID)
	return err
}

// InitDB opens and pings the database at connStr. TLS is required unless
// connStr sets sslmode itself.
func InitDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", withSSLMode(connStr))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not responding: %w", err)
	}
	log.Println("connected to Postgres")
	return db, nil
}

func withSSLMode(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}
