// seed crea el esquema de base de datos del POS y carga datos de demostración:
// un usuario admin, categorías y productos de ejemplo y un cliente de prueba.
//
// Uso: go run ./cmd/seed
// La conexión se toma de las mismas variables de entorno que la API (DATABASE_URL o DB_*).
// Es idempotente: los CREATE usan IF NOT EXISTS y los INSERT usan ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-backend/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-backend/pkg/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		phone         TEXT DEFAULT '',
		role          TEXT NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT true,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		last_login    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT DEFAULT '',
		is_active   BOOLEAN NOT NULL DEFAULT true,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id              UUID PRIMARY KEY,
		sku             TEXT NOT NULL UNIQUE,
		barcode         TEXT DEFAULT '',
		name            TEXT NOT NULL,
		description     TEXT DEFAULT '',
		category_id     UUID NOT NULL REFERENCES categories(id),
		price           NUMERIC(12,2) NOT NULL,
		cost_price      NUMERIC(12,2) NOT NULL DEFAULT 0,
		stock_quantity  INTEGER NOT NULL DEFAULT 0,
		min_stock_level INTEGER NOT NULL DEFAULT 0,
		is_active       BOOLEAN NOT NULL DEFAULT true,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL,
		email          TEXT UNIQUE,
		phone          TEXT UNIQUE,
		address        TEXT DEFAULT '',
		loyalty_points INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id           UUID PRIMARY KEY,
		order_number TEXT NOT NULL UNIQUE,
		customer_id  UUID REFERENCES customers(id),
		user_id      UUID NOT NULL REFERENCES users(id),
		status       TEXT NOT NULL,
		subtotal     NUMERIC(12,2) NOT NULL DEFAULT 0,
		tax          NUMERIC(12,2) NOT NULL DEFAULT 0,
		discount     NUMERIC(12,2) NOT NULL DEFAULT 0,
		total        NUMERIC(12,2) NOT NULL DEFAULT 0,
		notes        TEXT DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id           UUID PRIMARY KEY,
		order_id     UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id   UUID NOT NULL REFERENCES products(id),
		product_name TEXT NOT NULL,
		product_sku  TEXT NOT NULL,
		quantity     INTEGER NOT NULL,
		unit_price   NUMERIC(12,2) NOT NULL,
		discount     NUMERIC(12,2) NOT NULL DEFAULT 0,
		subtotal     NUMERIC(12,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             UUID PRIMARY KEY,
		order_id       UUID NOT NULL REFERENCES orders(id),
		amount         NUMERIC(12,2) NOT NULL,
		method         TEXT NOT NULL,
		transaction_id TEXT UNIQUE,
		status         TEXT NOT NULL,
		notes          TEXT DEFAULT '',
		user_id        UUID REFERENCES users(id),
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments (order_id)`,
	`CREATE TABLE IF NOT EXISTS inventory_logs (
		id               UUID PRIMARY KEY,
		product_id       UUID NOT NULL REFERENCES products(id),
		user_id          UUID REFERENCES users(id),
		action           TEXT NOT NULL,
		quantity_change  INTEGER NOT NULL,
		quantity_before  INTEGER NOT NULL,
		quantity_after   INTEGER NOT NULL,
		reference_number TEXT DEFAULT '',
		notes            TEXT DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_logs_product ON inventory_logs (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_logs_action ON inventory_logs (action)`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("esquema creado")

	if err := seedDemoData(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "datos de demostración: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("datos de demostración cargados")
}

// seedDemoData inserta un admin, categorías, productos con stock inicial y un cliente.
// Los UUID son fijos para que las ejecuciones repetidas no dupliquen filas.
func seedDemoData(ctx context.Context, pool *pgxpool.Pool) error {
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de password: %w", err)
	}

	adminID := uuid.MustParse("c0a80101-0000-4000-8000-000000000001")
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name, phone, role, is_active, created_at, updated_at)
		VALUES ($1, 'admin', 'admin@pos.local', $2, 'Administrador', '', 'admin', true, $3, $3)
		ON CONFLICT (username) DO NOTHING`,
		adminID, string(hash), now)
	if err != nil {
		return fmt.Errorf("usuario admin: %w", err)
	}

	categories := []struct {
		id   uuid.UUID
		name string
		desc string
	}{
		{uuid.MustParse("c0a80102-0000-4000-8000-000000000001"), "Bebidas", "Gaseosas, jugos y agua"},
		{uuid.MustParse("c0a80102-0000-4000-8000-000000000002"), "Snacks", "Pasabocas y dulces"},
		{uuid.MustParse("c0a80102-0000-4000-8000-000000000003"), "Aseo", "Productos de limpieza"},
	}
	for _, c := range categories {
		_, err = pool.Exec(ctx, `
			INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, true, $4, $4)
			ON CONFLICT (name) DO NOTHING`,
			c.id, c.name, c.desc, now)
		if err != nil {
			return fmt.Errorf("categoría %s: %w", c.name, err)
		}
	}

	products := []struct {
		id         uuid.UUID
		sku        string
		barcode    string
		name       string
		categoryID uuid.UUID
		price      string
		cost       string
		stock      int
		minStock   int
	}{
		{uuid.MustParse("c0a80103-0000-4000-8000-000000000001"), "BEB-001", "7701234567890", "Agua 600ml", categories[0].id, "2500.00", "1500.00", 120, 20},
		{uuid.MustParse("c0a80103-0000-4000-8000-000000000002"), "BEB-002", "7701234567891", "Gaseosa cola 400ml", categories[0].id, "3500.00", "2200.00", 80, 15},
		{uuid.MustParse("c0a80103-0000-4000-8000-000000000003"), "SNK-001", "7701234567892", "Papas fritas 40g", categories[1].id, "2800.00", "1800.00", 60, 10},
		{uuid.MustParse("c0a80103-0000-4000-8000-000000000004"), "ASE-001", "7701234567893", "Jabón en barra", categories[2].id, "4200.00", "2900.00", 30, 5},
	}
	for _, p := range products {
		tag, err := pool.Exec(ctx, `
			INSERT INTO products (id, sku, barcode, name, description, category_id, price, cost_price, stock_quantity, min_stock_level, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, '', $5, $6, $7, $8, $9, true, $10, $10)
			ON CONFLICT (sku) DO NOTHING`,
			p.id, p.sku, p.barcode, p.name, p.categoryID, p.price, p.cost, p.stock, p.minStock, now)
		if err != nil {
			return fmt.Errorf("producto %s: %w", p.sku, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		// Asiento de compra inicial en el ledger para que el stock tenga trazabilidad.
		_, err = pool.Exec(ctx, `
			INSERT INTO inventory_logs (id, product_id, user_id, action, quantity_change, quantity_before, quantity_after, reference_number, notes, created_at)
			VALUES ($1, $2, $3, 'purchase', $4, 0, $4, '', 'Stock inicial (seed)', $5)`,
			uuid.New(), p.id, adminID, p.stock, now)
		if err != nil {
			return fmt.Errorf("log inicial %s: %w", p.sku, err)
		}
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, address, loyalty_points, created_at, updated_at)
		VALUES ($1, 'Cliente de Prueba', 'cliente@pos.local', '3001234567', 'Calle 1 # 2-3', 0, $2, $2)
		ON CONFLICT (email) DO NOTHING`,
		uuid.MustParse("c0a80104-0000-4000-8000-000000000001"), now)
	if err != nil {
		return fmt.Errorf("cliente demo: %w", err)
	}

	return nil
}
