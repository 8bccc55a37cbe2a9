package migrations

import (
	"context"
	"database/sql"
	"time"

	"jewelry-store/internal/auth"
	"jewelry-store/internal/entity"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		first_name VARCHAR(50) NOT NULL DEFAULT '',
		last_name VARCHAR(50) NOT NULL DEFAULT '',
		email VARCHAR(100) NOT NULL DEFAULT '',
		phone_number VARCHAR(30) NOT NULL DEFAULT '',
		password VARCHAR(255) NOT NULL,
		type VARCHAR(20) NOT NULL DEFAULT 'customer',
		status VARCHAR(20) NOT NULL DEFAULT 'activated',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS metals (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		purity VARCHAR(20) NOT NULL,
		density DOUBLE NOT NULL,
		cost_per_gram DOUBLE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS gems (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		shape VARCHAR(30) NOT NULL,
		carat DOUBLE NOT NULL,
		price DOUBLE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS links (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		size DOUBLE NOT NULL,
		volume DOUBLE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS rings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		size DOUBLE NOT NULL,
		volume DOUBLE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS necklaces (
		id INT AUTO_INCREMENT PRIMARY KEY,
		link_id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		link_count INT NOT NULL,
		FOREIGN KEY (link_id) REFERENCES links(id)
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		mass DOUBLE NOT NULL,
		price DOUBLE NOT NULL,
		metal_id INT NOT NULL,
		gem_id INT NOT NULL,
		necklace_id INT NULL,
		ring_id INT NULL,
		creator_id INT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (metal_id) REFERENCES metals(id),
		FOREIGN KEY (gem_id) REFERENCES gems(id),
		FOREIGN KEY (necklace_id) REFERENCES necklaces(id),
		FOREIGN KEY (ring_id) REFERENCES rings(id),
		CONSTRAINT chk_one_geometry CHECK ((necklace_id IS NULL) <> (ring_id IS NULL))
	);`,
}

// AutoMigrate creates the schema if it does not exist.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range ddl {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedAdminUser ensures an admin account exists so the storefront is
// manageable on first boot.
func SeedAdminUser(ctx context.Context, db *sql.DB, username, password string) error {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password, type, status) VALUES (?, ?, ?, ?)`,
		username, hashed, entity.RoleAdmin, entity.StatusActivated)
	return err
}

// SeedCatalog loads a starter set of metals, gems and links the first time
// the service runs against an empty database.
func SeedCatalog(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM metals`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	metals := [][]interface{}{
		{"Gold", "24k", 0.01932, 65.0},
		{"Silver", "925", 0.01049, 0.85},
		{"Platinum", "950", 0.02145, 32.0},
	}
	for _, m := range metals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO metals (name, purity, density, cost_per_gram) VALUES (?, ?, ?, ?)`, m...); err != nil {
			tx.Rollback()
			return err
		}
	}

	gems := [][]interface{}{
		{"Diamond", "Round", 1.0, 4500.0},
		{"Sapphire", "Oval", 1.5, 900.0},
		{"Emerald", "Princess", 1.2, 1100.0},
	}
	for _, g := range gems {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO gems (name, shape, carat, price) VALUES (?, ?, ?, ?)`, g...); err != nil {
			tx.Rollback()
			return err
		}
	}

	links := [][]interface{}{
		{"Cable", 3.0, 1.1},
		{"Curb", 4.0, 1.6},
		{"Figaro", 5.0, 2.2},
	}
	for _, l := range links {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO links (name, size, volume) VALUES (?, ?, ?)`, l...); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
