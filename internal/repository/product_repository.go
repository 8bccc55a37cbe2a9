package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jewelry-store/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

const productColumns = `id, name, mass, price, metal_id, gem_id, necklace_id, ring_id, creator_id, created_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(&product.ID, &product.Name, &product.Mass, &product.Price, &product.MetalID,
		&product.GemID, &product.NecklaceID, &product.RingID, &product.CreatorID, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (name, mass, price, metal_id, gem_id, necklace_id, ring_id, creator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Mass, product.Price,
		product.MetalID, product.GemID, product.NecklaceID, product.RingID, product.CreatorID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

// CreateCustom inserts the geometry row and the product that references it
// in a single transaction so a failure leaves no orphaned geometry.
func (r *ProductRepository) CreateCustom(ctx context.Context, product *entity.Product, necklace *entity.Necklace, ring *entity.Ring) (*entity.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case necklace != nil:
		res, err := tx.ExecContext(ctx, `INSERT INTO necklaces (link_id, name, link_count) VALUES (?, ?, ?)`,
			necklace.LinkID, necklace.Name, necklace.LinkCount)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		neckID, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		id := int(neckID)
		product.NecklaceID = &id
	case ring != nil:
		res, err := tx.ExecContext(ctx, `INSERT INTO rings (name, size, volume) VALUES (?, ?, ?)`,
			ring.Name, ring.Size, ring.Volume)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		ringID, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		id := int(ringID)
		product.RingID = &id
	default:
		tx.Rollback()
		return nil, fmt.Errorf("%w: geometry is required", entity.ErrValidation)
	}

	query := `INSERT INTO products (name, mass, price, metal_id, gem_id, necklace_id, ring_id, creator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, product.Name, product.Mass, product.Price,
		product.MetalID, product.GemID, product.NecklaceID, product.RingID, product.CreatorID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	productID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(productID))
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `UPDATE products SET name = ?, mass = ?, price = ?, metal_id = ?, gem_id = ?, necklace_id = ?, ring_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, product.Name, product.Mass, product.Price,
		product.MetalID, product.GemID, product.NecklaceID, product.RingID, product.ID)
	if err != nil {
		return nil, err
	}
	// GetByID reports ErrNotFound for an id that was never there.
	return r.GetByID(ctx, product.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", id, entity.ErrNotFound)
	}
	return nil
}
