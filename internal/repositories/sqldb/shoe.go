package sqldb

import (
	"context"
	"database/sql"
	"strings"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

const shoeColumns = `shoe_id, shoe_type, shoe_style, color, size, price, suitable_for`

// ShoeRepository implements repositories.ShoeRepository
type ShoeRepository struct {
	baseRepository
}

// NewShoeRepository creates a new shoe catalog repository
func NewShoeRepository(db *sql.DB, logger *logrus.Logger) repositories.ShoeRepository {
	return &ShoeRepository{
		baseRepository: newBaseRepository(db, "shoes", logger),
	}
}

// GetByID retrieves a shoe by ID
func (r *ShoeRepository) GetByID(ctx context.Context, id int64) (*models.Shoe, error) {
	if err := r.validateID("shoe", id); err != nil {
		return nil, err
	}

	query := `SELECT ` + shoeColumns + ` FROM shoes WHERE shoe_id = ?`

	shoe, err := scanShoe(r.executeQueryRow(ctx, "get_by_id", query, id))
	if err != nil {
		return nil, r.scanError("get_by_id", "shoe", formatID(id), err)
	}

	return shoe, nil
}

// Search returns every shoe matching the filter. Unset filter fields add no condition,
// so an empty filter returns the whole catalog.
func (r *ShoeRepository) Search(ctx context.Context, filter models.ShoeFilter) ([]*models.Shoe, error) {
	query, args := buildShoeSearch(filter)

	rows, err := r.executeQuery(ctx, "search", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shoes []*models.Shoe
	for rows.Next() {
		shoe, err := scanShoe(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("search", "shoe", "", err)
		}
		shoes = append(shoes, shoe)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("search", "shoe", "", err)
	}

	return shoes, nil
}

// buildShoeSearch builds the catalog query from the filter fields that are set
func buildShoeSearch(filter models.ShoeFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.SuitableFor != "" {
		conditions = append(conditions, "LOWER(suitable_for) = LOWER(?)")
		args = append(args, filter.SuitableFor)
	}
	if filter.Size != "" {
		conditions = append(conditions, "size = ?")
		args = append(args, filter.Size)
	}
	if filter.Color != "" {
		conditions = append(conditions, "LOWER(color) = LOWER(?)")
		args = append(args, filter.Color)
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	query := "SELECT " + shoeColumns + " FROM shoes"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY shoe_id"

	return query, args
}

func scanShoe(row rowScanner) (*models.Shoe, error) {
	shoe := &models.Shoe{}
	err := row.Scan(
		&shoe.ID,
		&shoe.ShoeType,
		&shoe.ShoeStyle,
		&shoe.Color,
		&shoe.Size,
		&shoe.Price,
		&shoe.SuitableFor,
	)
	if err != nil {
		return nil, err
	}
	return shoe, nil
}
