package dummydb

import (
	"sort"

	"github.com/trezcool/customform/core/form"
)

var pkCount int

type formRepository struct {
	db *formTable
}

var _ form.Repository = (*formRepository)(nil) // interface compliance check

func NewFormRepository(db *DB) form.Repository {
	return &formRepository{db: db.forms}
}

func (repo *formRepository) CreateForm(frm form.Form) (form.Form, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	pkCount++
	frm.ID = pkCount
	repo.db.table[frm.ID] = &frm
	return frm, nil
}

func (repo *formRepository) QueryAllForms() ([]form.Form, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	forms := make([]form.Form, 0, len(repo.db.table))
	for _, frm := range repo.db.table {
		forms = append(forms, *frm)
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms, nil
}

func (repo *formRepository) GetFormByID(id int) (form.Form, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if frm, ok := repo.db.table[id]; ok {
		return *frm, nil
	}
	return form.Form{}, form.ErrNotFound
}

func (repo *formRepository) UpdateForm(frm form.Form, sendEmail *bool) (form.Form, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.table[frm.ID]
	if !ok {
		return form.Form{}, form.ErrNotFound
	}

	if frm.Course != "" {
		stored.Course = frm.Course
	}
	if frm.Name != "" {
		stored.Name = frm.Name
	}
	if frm.Intro != "" {
		stored.Intro = frm.Intro
	}
	if frm.Feedback != "" {
		stored.Feedback = frm.Feedback
		stored.FeedbackFormat = frm.FeedbackFormat
	}
	if frm.URL != "" {
		stored.URL = frm.URL
	}
	if frm.CategoryID != 0 {
		stored.CategoryID = frm.CategoryID
	}
	if frm.EmailTo != "" {
		stored.EmailTo = frm.EmailTo
	}
	if sendEmail != nil {
		stored.SendEmail = *sendEmail
	}
	stored.UpdatedAt = frm.UpdatedAt
	return *stored, nil
}

func (repo *formRepository) DeleteFormsByID(ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
