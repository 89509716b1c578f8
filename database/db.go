package database

import (
	"database/sql"
	"log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/DC111-ui/hss-storage-platform/config"
)

// DB is the global database handle for the booking store.
var DB *sql.DB

// InitDB opens the SQLite database and creates the schema.
func InitDB() {
	db, err := sql.Open("sqlite", config.AppConfig.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open SQLite database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping SQLite database: %v", err)
	}
	if err := InitSchema(db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	DB = db
	log.Println("Connected to SQLite successfully!")
}

// InitSchema creates the booking store tables when missing.
func InitSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		email TEXT NOT NULL,
		pickup_date TEXT NOT NULL,
		pickup_window TEXT NOT NULL,
		address TEXT NOT NULL,
		duration_months INTEGER NOT NULL,
		item_count INTEGER NOT NULL,
		monthly_subtotal REAL NOT NULL,
		handling_fee REAL NOT NULL,
		total REAL NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		payment_reference TEXT
	);

	CREATE TABLE IF NOT EXISTS booking_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		booking_id TEXT NOT NULL,
		item_type TEXT NOT NULL,
		item_name TEXT,
		s3_key TEXT,
		FOREIGN KEY (booking_id) REFERENCES bookings(id)
	);

	CREATE TABLE IF NOT EXISTS audit_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		booking_id TEXT,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}
