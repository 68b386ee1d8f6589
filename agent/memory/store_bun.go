package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

type conversationRow struct {
	bun.BaseModel `bun:"table:conversations,alias:c"`

	UserID    string    `bun:"user_id,pk"`
	Turns     []byte    `bun:"turns,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type BunConfig struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

// BunStore persists conversations in Postgres, one row per user identity
// with the turn log as JSONB.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(cfg BunConfig) (*BunStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &BunStore{db: db}, nil
}

// Init creates the conversations table if it does not exist.
func (s *BunStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*conversationRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create conversations table: %w", err)
	}
	return nil
}

func (s *BunStore) Load(ctx context.Context, userID string) (*Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}

	var row conversationRow
	err := s.db.NewSelect().
		Model(&row).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHistoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select conversation: %w", err)
	}

	conv := Conversation{
		UserID:    row.UserID,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.Turns) > 0 {
		var turns []contractx.Turn
		if err := json.Unmarshal(row.Turns, &turns); err != nil {
			return nil, fmt.Errorf("unmarshal turns: %w", err)
		}
		conv.Turns = turns
	}
	return &conv, nil
}

func (s *BunStore) Save(ctx context.Context, c *Conversation) error {
	if c == nil {
		return ErrNilConversation
	}
	if strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidUser
	}

	turns, err := json.Marshal(c.Turns)
	if err != nil {
		return fmt.Errorf("marshal turns: %w", err)
	}

	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	row := conversationRow{
		UserID:    c.UserID,
		Turns:     turns,
		UpdatedAt: updatedAt.UTC(),
	}

	_, err = s.db.NewInsert().
		Model(&row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("turns = EXCLUDED.turns").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert conversation: %w", err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}

	_, err := s.db.NewDelete().
		Model((*conversationRow)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}
