package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates every table the service needs.  Statements are
// idempotent so EnsureSchema can run on every boot.  The products table
// keeps its slug UNIQUE constraint as the authoritative guard for slug
// assignment; the pre-insert existence check in the service layer is only
// an optimization.  products.category_id carries no ON DELETE action on
// purpose: category deletion cascades over products inside an explicit
// transaction in the repository layer, and leaving the FK restrictive
// surfaces any code path that forgets to do so.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS subcategories (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		category_id BIGINT UNSIGNED NOT NULL,
		name        VARCHAR(100) NOT NULL,
		sort_order  INT NOT NULL DEFAULT 0,
		active      TINYINT(1) NOT NULL DEFAULT 1,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_subcategories_category_name (category_id, name),
		CONSTRAINT fk_subcategories_category FOREIGN KEY (category_id)
			REFERENCES categories (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name           VARCHAR(200) NOT NULL,
		slug           VARCHAR(220) NOT NULL,
		description    TEXT,
		category_id    BIGINT UNSIGNED NULL,
		category_label VARCHAR(100) NOT NULL DEFAULT '',
		tag            VARCHAR(100) NOT NULL DEFAULT 'Base Cementícia',
		image_1        VARCHAR(500) NOT NULL DEFAULT '',
		image_2        VARCHAR(500) NOT NULL DEFAULT '',
		image_3        VARCHAR(500) NOT NULL DEFAULT '',
		image_filename VARCHAR(200) NOT NULL DEFAULT '',
		dimensions     VARCHAR(100) NOT NULL DEFAULT '',
		color          VARCHAR(100) NOT NULL DEFAULT '',
		sale_unit      VARCHAR(100) NOT NULL DEFAULT '',
		specifications TEXT,
		active         TINYINT(1) NOT NULL DEFAULT 1,
		sort_order     INT NOT NULL DEFAULT 0,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_products_slug (slug),
		KEY idx_products_category (category_id),
		CONSTRAINT fk_products_category FOREIGN KEY (category_id)
			REFERENCES categories (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS contact_messages (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		sender_name  VARCHAR(200) NOT NULL,
		sender_email VARCHAR(254) NOT NULL,
		body         TEXT NOT NULL,
		read_flag    TINYINT(1) NOT NULL DEFAULT 0,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(254) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role          VARCHAR(20) NOT NULL DEFAULT 'ADMIN',
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  It runs once at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
