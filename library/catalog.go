package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a SQLite-backed book list used to seed a Library at startup.
// Only catalog metadata is stored; members and loans are never persisted.
type Catalog struct {
	db *sql.DB

	addBookStmt *sql.Stmt
}

// OpenCatalog opens (or creates) the catalog database at path, applies
// schema migrations, and prepares the insert statement.
func OpenCatalog(path string) (*Catalog, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	c := &Catalog{db: db}
	c.addBookStmt, err = db.Prepare(`INSERT INTO books(title,author,year,isbn,genre) VALUES(?,?,?,?,?)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the prepared statement and closes the DB.
func (c *Catalog) Close() error {
	if c.addBookStmt != nil {
		c.addBookStmt.Close()
	}
	return c.db.Close()
}

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS books (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        title TEXT NOT NULL,
        author TEXT NOT NULL,
        year INTEGER NOT NULL,
        isbn TEXT NOT NULL,
        genre TEXT NOT NULL
    );`); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// AddBook inserts a book into the catalog and returns its row id.
func (c *Catalog) AddBook(b *Book) (int64, error) {
	res, err := c.addBookStmt.Exec(b.Title, b.Author, b.Year, b.ISBN, b.Genre)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Books returns every book in the catalog in insertion (id) order.
func (c *Catalog) Books() ([]*Book, error) {
	rows, err := c.db.Query(`SELECT title,author,year,isbn,genre FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		var (
			title, author, isbn, genre string
			year                       int
		)
		if err := rows.Scan(&title, &author, &year, &isbn, &genre); err != nil {
			return nil, err
		}
		books = append(books, NewBook(title, author, year, isbn, genre))
	}
	return books, rows.Err()
}
