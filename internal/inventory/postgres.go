package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps part quantities in a parts table and relies on
// single-statement updates for per-part atomicity.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(config map[string]string, logger *zap.Logger) (*PostgresStore, error) {
	dsn := buildConnectionString(config)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Decrement reduces a part's quantity by amount in a single UPDATE. Concurrent
// decrements to the same part serialize on the row; there is no read-modify-
// write window on the client.
func (s *PostgresStore) Decrement(ctx context.Context, partID int, amount float64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE parts SET quantity = quantity - $2, updated_at = now() WHERE part_id = $1`,
		partID, amount)
	if err != nil {
		return fmt.Errorf("failed to decrement part %d: %w", partID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundError(partID)
	}
	return nil
}

func (s *PostgresStore) Quantity(ctx context.Context, partID int) (float64, error) {
	var qty float64
	err := s.pool.QueryRow(ctx,
		`SELECT quantity FROM parts WHERE part_id = $1`, partID).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("failed to read quantity for part %d: %w", partID, err)
	}
	return qty, nil
}

func buildConnectionString(config map[string]string) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config["username"], config["password"],
		config["host"], config["port"],
		config["database"], config["sslmode"])

	if connectTimeout := config["connect_timeout"]; connectTimeout != "" {
		// PostgreSQL expects whole seconds here
		if duration, err := time.ParseDuration(connectTimeout); err == nil {
			dsn += fmt.Sprintf("&connect_timeout=%d", int(duration.Seconds()))
		}
	}

	return dsn
}
