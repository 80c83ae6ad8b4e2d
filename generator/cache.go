package generator

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CacheConfig holds generation cache configuration.
type CacheConfig struct {
	TTL    time.Duration // 0 disables caching
	DBPath string
}

// Cache remembers which format/template/data combinations were already
// generated so batch runs can skip unchanged documents.
type Cache struct {
	db     *sql.DB
	config CacheConfig
}

// CacheEntry is one remembered generation.
type CacheEntry struct {
	Format      string
	Template    string
	OutputPath  string
	GeneratedAt time.Time
}

// NewCache opens (or disables, when TTL is 0) the generation cache.
func NewCache(config CacheConfig) (*Cache, error) {
	if config.TTL == 0 {
		return &Cache{config: config}, nil
	}

	if config.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DBPath = filepath.Join(homeDir, ".cache", "doc-studio-gen.db")
	}
	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	cache := &Cache{db: db, config: config}
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	go cache.cleanupExpired()

	return cache, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) key(format, template, dataJSON string) string {
	hash := sha256.Sum256([]byte(format + "|" + template + "|" + dataJSON))
	return fmt.Sprintf("%x", hash)
}

// Get returns the cached entry for the combination, or nil on a miss.
func (c *Cache) Get(format, template, dataJSON string) (*CacheEntry, error) {
	if c.config.TTL == 0 || c.db == nil {
		return nil, nil
	}

	query := `
		SELECT format, template, output_path, generated_at
		FROM generation_cache
		WHERE cache_key = ?
		  AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
		LIMIT 1
	`
	var entry CacheEntry
	err := c.db.QueryRow(query, c.key(format, template, dataJSON)).Scan(
		&entry.Format, &entry.Template, &entry.OutputPath, &entry.GeneratedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return &entry, nil
}

// Set records a completed generation.
func (c *Cache) Set(format, template, dataJSON, outputPath string) error {
	if c.config.TTL == 0 || c.db == nil {
		return nil
	}

	query := `
		INSERT OR REPLACE INTO generation_cache (
			cache_key, format, template, output_path, generated_at, expires_at
		) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
	`
	_, err := c.db.Exec(query,
		c.key(format, template, dataJSON), format, template, outputPath,
		time.Now().Add(c.config.TTL),
	)
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if c.db == nil {
		return nil
	}
	if _, err := c.db.Exec("DELETE FROM generation_cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func (c *Cache) cleanupExpired() {
	if c.db == nil {
		return
	}
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		_, _ = c.db.Exec("DELETE FROM generation_cache WHERE expires_at IS NOT NULL AND expires_at < CURRENT_TIMESTAMP")
	}
}

func (c *Cache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generation_cache (
		cache_key TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		template TEXT NOT NULL,
		output_path TEXT NOT NULL,
		generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_generation_cache_expires
		ON generation_cache(expires_at);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
