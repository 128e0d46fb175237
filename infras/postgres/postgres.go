package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"micelio/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection holds the read and write pools. WriteDSN is kept for consumers
// that need their own session, such as LISTEN.
type Connection struct {
	Read     *sqlx.DB
	Write    *sqlx.DB
	WriteDSN string
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func (e endpoint) dsn() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.username,
		e.password,
		net.JoinHostPort(e.host, e.port),
		e.dbName,
		e.sslMode,
	)
}

func New(config *config.Config) *Connection {
	write := writeEndpoint(*config)

	return &Connection{
		Read:     connect(readEndpoint(*config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write:    connect(write, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		WriteDSN: write.dsn(),
	}
}

// NewFromDB wraps an existing handle for both pools.
func NewFromDB(db *sqlx.DB) *Connection {
	return &Connection{Read: db, Write: db}
}

// WriteDSN returns the connection string of the write endpoint.
func WriteDSN(config *config.Config) string {
	return writeEndpoint(*config).dsn()
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}
	return baseName
}

func writeEndpoint(config config.Config) endpoint {
	return endpoint{
		name:     "write",
		username: config.DB.Postgres.Write.Username,
		password: config.DB.Postgres.Write.Password,
		host:     config.DB.Postgres.Write.Host,
		port:     config.DB.Postgres.Write.Port,
		dbName:   getDBName(config, config.DB.Postgres.Write.Name),
		sslMode:  config.DB.Postgres.Write.SSLMode,
	}
}

func readEndpoint(config config.Config) endpoint {
	return endpoint{
		name:     "read",
		username: config.DB.Postgres.Read.Username,
		password: config.DB.Postgres.Read.Password,
		host:     config.DB.Postgres.Read.Host,
		port:     config.DB.Postgres.Read.Port,
		dbName:   getDBName(config, config.DB.Postgres.Read.Name),
		sslMode:  config.DB.Postgres.Read.SSLMode,
	}
}

func connect(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			log.
				Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Str("port", e.port).
			Str("dbName", e.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", e.name).Msg("Giving up connecting to database")

	return nil
}
