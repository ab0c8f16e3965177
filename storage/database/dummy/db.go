// Package dummydb provides in-memory repositories for tests and local hacking.
package dummydb

import (
	"sync"

	"github.com/trezcool/customform/core/form"
)

type (
	formTable struct {
		sync.RWMutex
		table map[int]*form.Form
	}

	categoryTable struct {
		sync.RWMutex
		table map[int]*form.Category
		// fields are keyed by category for catalog-order reads
		fields map[int][]form.FieldDefinition
	}

	DB struct {
		forms      *formTable
		categories *categoryTable
	}
)

func Open() (*DB, error) {
	return &DB{
		forms:      &formTable{table: make(map[int]*form.Form)},
		categories: &categoryTable{table: make(map[int]*form.Category), fields: make(map[int][]form.FieldDefinition)},
	}, nil
}
