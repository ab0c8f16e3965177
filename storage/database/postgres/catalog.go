package pgrepos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/customform/core/form"
)

type fieldRow struct {
	ID         int         `db:"id"`
	CategoryID int         `db:"category_id"`
	ShortName  string      `db:"shortname"`
	Name       string      `db:"name"`
	Type       string      `db:"type"`
	Options    null.String `db:"options"`
	Locked     bool        `db:"locked"`
	Visibility int         `db:"visibility"`
	SortOrder  int         `db:"sortorder"`
}

func (r fieldRow) toDefinition() form.FieldDefinition {
	var options []string
	if r.Options.String != "" {
		// options are stored newline-separated, one label per index
		options = strings.Split(strings.ReplaceAll(r.Options.String, "\r\n", "\n"), "\n")
	}
	return form.FieldDefinition{
		ID:         r.ID,
		ShortName:  r.ShortName,
		Name:       r.Name,
		Type:       form.ParseFieldType(r.Type),
		CategoryID: r.CategoryID,
		Options:    options,
		Locked:     r.Locked,
		Visibility: form.Visibility(r.Visibility),
		SortOrder:  r.SortOrder,
	}
}

type catalogRepository struct {
	db *sqlx.DB
}

var _ form.CatalogRepository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo catalogRepository) QueryAllCategories() ([]form.Category, error) {
	var cats []form.Category
	if err := repo.db.Select(&cats, "SELECT id, name FROM field_categories ORDER BY id"); err != nil {
		return nil, trapConnErr(err, "querying categories")
	}
	return cats, nil
}

func (repo catalogRepository) GetCategoryByID(id int) (form.Category, error) {
	var cat form.Category
	if err := repo.db.Get(&cat, "SELECT id, name FROM field_categories WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return form.Category{}, form.ErrCategoryNotFound
		}
		return form.Category{}, trapConnErr(err, "getting category")
	}
	return cat, nil
}

func (repo catalogRepository) QueryFieldsByCategoryID(categoryID int) ([]form.FieldDefinition, error) {
	var rows []fieldRow
	query := "SELECT * FROM field_definitions WHERE category_id = $1 ORDER BY sortorder, id"
	if err := repo.db.Select(&rows, query, categoryID); err != nil {
		return nil, trapConnErr(err, "querying field definitions")
	}
	catalog := make([]form.FieldDefinition, 0, len(rows))
	for _, row := range rows {
		catalog = append(catalog, row.toDefinition())
	}
	return catalog, nil
}
