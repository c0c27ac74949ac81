package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/storage"
)

func (s *Store) SaveCatalog(cat models.Catalog) (storage.CatalogInfo, error) {
	if cat.Name == "" {
		return storage.CatalogInfo{}, errors.New("catalog name cannot be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storage.CatalogInfo{}, err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	stamp := now.Format(storage.TimeFormat)
	info := storage.CatalogInfo{Name: cat.Name, Courses: len(cat.Courses), UpdatedAt: now}

	// Upsert keeps the id and created_at of an existing catalog with the same name.
	var createdAt string
	err = tx.QueryRow(`
		INSERT INTO catalogs (id, name, created_at, updated_at) VALUES ($1, $2, $3, $3)
		ON CONFLICT (name) DO UPDATE SET updated_at = EXCLUDED.updated_at, deleted_at = NULL
		RETURNING id, created_at
	`, uuid.NewString(), cat.Name, stamp).Scan(&info.ID, &createdAt)
	if err != nil {
		return storage.CatalogInfo{}, fmt.Errorf("failed to upsert catalog: %w", err)
	}
	if info.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return storage.CatalogInfo{}, err
	}

	if _, err := tx.Exec("DELETE FROM catalog_groups WHERE catalog_id = $1", info.ID); err != nil {
		return storage.CatalogInfo{}, err
	}
	if _, err := tx.Exec("DELETE FROM catalog_courses WHERE catalog_id = $1", info.ID); err != nil {
		return storage.CatalogInfo{}, err
	}

	courses, groups := storage.FlattenCatalog(cat)
	for _, row := range courses {
		_, err := tx.Exec(
			"INSERT INTO catalog_courses (catalog_id, position, course_id) VALUES ($1, $2, $3)",
			info.ID, row.Position, row.CourseID,
		)
		if err != nil {
			return storage.CatalogInfo{}, fmt.Errorf("failed to insert course %s: %w", row.CourseID, err)
		}
	}
	for _, row := range groups {
		_, err := tx.Exec(
			"INSERT INTO catalog_groups (catalog_id, course_position, position, group_id, pattern) VALUES ($1, $2, $3, $4, $5)",
			info.ID, row.CoursePosition, row.Position, row.GroupID, row.Pattern,
		)
		if err != nil {
			return storage.CatalogInfo{}, fmt.Errorf("failed to insert group %s: %w", row.GroupID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.CatalogInfo{}, err
	}
	return info, nil
}

func (s *Store) GetCatalog(name string) (models.Catalog, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM catalogs WHERE name = $1 AND deleted_at IS NULL", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Catalog{}, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	if err != nil {
		return models.Catalog{}, err
	}

	courses, err := s.courseRows(id)
	if err != nil {
		return models.Catalog{}, err
	}
	groups, err := s.groupRows(id)
	if err != nil {
		return models.Catalog{}, err
	}
	return storage.AssembleCatalog(name, courses, groups)
}

func (s *Store) courseRows(catalogID string) ([]storage.CourseRow, error) {
	rows, err := s.db.Query("SELECT position, course_id FROM catalog_courses WHERE catalog_id = $1 ORDER BY position", catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.CourseRow
	for rows.Next() {
		var row storage.CourseRow
		if err := rows.Scan(&row.Position, &row.CourseID); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) groupRows(catalogID string) ([]storage.GroupRow, error) {
	rows, err := s.db.Query(
		"SELECT course_position, position, group_id, pattern FROM catalog_groups WHERE catalog_id = $1 ORDER BY course_position, position",
		catalogID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.GroupRow
	for rows.Next() {
		var row storage.GroupRow
		if err := rows.Scan(&row.CoursePosition, &row.Position, &row.GroupID, &row.Pattern); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) ListCatalogs(includeDeleted bool) ([]storage.CatalogInfo, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at, c.deleted_at,
			(SELECT COUNT(*) FROM catalog_courses cc WHERE cc.catalog_id = c.id)
		FROM catalogs c`
	if !includeDeleted {
		query += " WHERE c.deleted_at IS NULL"
	}
	query += " ORDER BY c.name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []storage.CatalogInfo
	for rows.Next() {
		var (
			info                 storage.CatalogInfo
			createdAt, updatedAt string
			deletedAt            sql.NullString
		)
		if err := rows.Scan(&info.ID, &info.Name, &createdAt, &updatedAt, &deletedAt, &info.Courses); err != nil {
			return nil, err
		}
		if info.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
			return nil, err
		}
		if info.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			t, err := storage.ParseTime(deletedAt.String)
			if err != nil {
				return nil, err
			}
			info.DeletedAt = &t
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Store) DeleteCatalog(name string) error {
	res, err := s.db.Exec(
		"UPDATE catalogs SET deleted_at = $1 WHERE name = $2 AND deleted_at IS NULL",
		s.now().UTC().Format(storage.TimeFormat), name,
	)
	if err != nil {
		return err
	}
	return requireRow(res, name)
}

func (s *Store) RestoreCatalog(name string) error {
	res, err := s.db.Exec("UPDATE catalogs SET deleted_at = NULL WHERE name = $1 AND deleted_at IS NOT NULL", name)
	if err != nil {
		return err
	}
	return requireRow(res, name)
}

func requireRow(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	return nil
}
