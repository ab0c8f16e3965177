package dummydb

import (
	"sort"

	"github.com/trezcool/customform/core/form"
)

var catPkCount int

type catalogRepository struct {
	db *categoryTable
}

var _ form.CatalogRepository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) form.CatalogRepository {
	return &catalogRepository{db: db.categories}
}

// AddCategory seeds a category with its field definitions; test fixture helper.
func AddCategory(db *DB, name string, fields ...form.FieldDefinition) form.Category {
	db.categories.Lock()
	defer db.categories.Unlock()

	catPkCount++
	cat := form.Category{ID: catPkCount, Name: name}
	db.categories.table[cat.ID] = &cat

	for i := range fields {
		fields[i].ID = i + 1
		fields[i].CategoryID = cat.ID
		if fields[i].SortOrder == 0 {
			fields[i].SortOrder = i
		}
	}
	db.categories.fields[cat.ID] = fields
	return cat
}

func (repo *catalogRepository) QueryAllCategories() ([]form.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cats := make([]form.Category, 0, len(repo.db.table))
	for _, cat := range repo.db.table {
		cats = append(cats, *cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats, nil
}

func (repo *catalogRepository) GetCategoryByID(id int) (form.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cat, ok := repo.db.table[id]; ok {
		return *cat, nil
	}
	return form.Category{}, form.ErrCategoryNotFound
}

func (repo *catalogRepository) QueryFieldsByCategoryID(categoryID int) ([]form.FieldDefinition, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	fields := append([]form.FieldDefinition(nil), repo.db.fields[categoryID]...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].SortOrder < fields[j].SortOrder })
	return fields, nil
}
