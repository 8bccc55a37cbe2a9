package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jewelry-store/internal/entity"
)

// CatalogRepository serves the reference data the storefront's product
// configurator is built from: metals, gems, links, rings and necklaces.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db}
}

func (r *CatalogRepository) ListMetals(ctx context.Context) ([]*entity.Metal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, purity, density, cost_per_gram FROM metals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metals []*entity.Metal
	for rows.Next() {
		var m entity.Metal
		if err := rows.Scan(&m.ID, &m.Name, &m.Purity, &m.Density, &m.CostPerGram); err != nil {
			return nil, err
		}
		metals = append(metals, &m)
	}
	return metals, rows.Err()
}

func (r *CatalogRepository) GetMetal(ctx context.Context, id int) (*entity.Metal, error) {
	var m entity.Metal
	err := r.db.QueryRowContext(ctx, `SELECT id, name, purity, density, cost_per_gram FROM metals WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Purity, &m.Density, &m.CostPerGram)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("metal %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) ListGems(ctx context.Context) ([]*entity.Gem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, shape, carat, price FROM gems ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gems []*entity.Gem
	for rows.Next() {
		var g entity.Gem
		if err := rows.Scan(&g.ID, &g.Name, &g.Shape, &g.Carat, &g.Price); err != nil {
			return nil, err
		}
		gems = append(gems, &g)
	}
	return gems, rows.Err()
}

func (r *CatalogRepository) GetGem(ctx context.Context, id int) (*entity.Gem, error) {
	var g entity.Gem
	err := r.db.QueryRowContext(ctx, `SELECT id, name, shape, carat, price FROM gems WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Shape, &g.Carat, &g.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("gem %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return &g, nil
}

func (r *CatalogRepository) ListLinks(ctx context.Context) ([]*entity.Link, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, size, volume FROM links ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*entity.Link
	for rows.Next() {
		var l entity.Link
		if err := rows.Scan(&l.ID, &l.Name, &l.Size, &l.Volume); err != nil {
			return nil, err
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}

func (r *CatalogRepository) GetLink(ctx context.Context, id int) (*entity.Link, error) {
	var l entity.Link
	err := r.db.QueryRowContext(ctx, `SELECT id, name, size, volume FROM links WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Size, &l.Volume)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("link %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

func (r *CatalogRepository) ListRings(ctx context.Context) ([]*entity.Ring, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, size, volume FROM rings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rings []*entity.Ring
	for rows.Next() {
		var ring entity.Ring
		if err := rows.Scan(&ring.ID, &ring.Name, &ring.Size, &ring.Volume); err != nil {
			return nil, err
		}
		rings = append(rings, &ring)
	}
	return rings, rows.Err()
}

func (r *CatalogRepository) CreateRing(ctx context.Context, ring *entity.Ring) (*entity.Ring, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO rings (name, size, volume) VALUES (?, ?, ?)`,
		ring.Name, ring.Size, ring.Volume)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	ring.ID = int(id)
	return ring, nil
}

func (r *CatalogRepository) CreateNecklace(ctx context.Context, necklace *entity.Necklace) (*entity.Necklace, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO necklaces (link_id, name, link_count) VALUES (?, ?, ?)`,
		necklace.LinkID, necklace.Name, necklace.LinkCount)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	necklace.ID = int(id)
	return necklace, nil
}
