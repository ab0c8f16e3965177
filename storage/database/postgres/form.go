package pgrepos

import (
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/customform/core"
	"github.com/trezcool/customform/core/form"
)

type formRow struct {
	ID             int         `db:"id"`
	Course         string      `db:"course"`
	Name           string      `db:"name"`
	Intro          null.String `db:"intro"`
	Feedback       null.String `db:"feedback"`
	FeedbackFormat int         `db:"feedback_format"`
	URL            null.String `db:"url"`
	CategoryID     int         `db:"category_id"`
	SendEmail      bool        `db:"send_email"`
	EmailTo        null.String `db:"email_to"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func (r formRow) toForm() form.Form {
	return form.Form{
		ID:             r.ID,
		Course:         r.Course,
		Name:           r.Name,
		Intro:          r.Intro.String,
		Feedback:       r.Feedback.String,
		FeedbackFormat: r.FeedbackFormat,
		URL:            r.URL.String,
		CategoryID:     r.CategoryID,
		SendEmail:      r.SendEmail,
		EmailTo:        r.EmailTo.String,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func newFormRow(frm form.Form) formRow {
	return formRow{
		ID:             frm.ID,
		Course:         frm.Course,
		Name:           frm.Name,
		Intro:          null.NewString(frm.Intro, frm.Intro != ""),
		Feedback:       null.NewString(frm.Feedback, frm.Feedback != ""),
		FeedbackFormat: frm.FeedbackFormat,
		URL:            null.NewString(frm.URL, frm.URL != ""),
		CategoryID:     frm.CategoryID,
		SendEmail:      frm.SendEmail,
		EmailTo:        null.NewString(frm.EmailTo, frm.EmailTo != ""),
		CreatedAt:      frm.CreatedAt.UTC(),
		UpdatedAt:      frm.UpdatedAt.UTC(),
	}
}

type formRepository struct {
	db *sqlx.DB
}

var _ form.Repository = (*formRepository)(nil) // interface compliance check

func NewFormRepository(db *sqlx.DB) *formRepository {
	return &formRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to form.ErrNotFound
func (repo formRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return form.ErrNotFound
	}
	return trapConnErr(err, msg)
}

// trapConnErr maps a lost database connection to a shutdown request so
// the server stops gracefully instead of failing every request.
func trapConnErr(err error, msg string) error {
	if err == driver.ErrBadConn {
		return core.NewShutdownError(msg + ": database connection lost")
	}
	return errors.Wrap(err, msg)
}

func (repo formRepository) CreateForm(frm form.Form) (form.Form, error) {
	row := newFormRow(frm)
	query := `
		INSERT INTO forms (course, name, intro, feedback, feedback_format, url, category_id, send_email, email_to, created_at, updated_at)
		VALUES (:course, :name, :intro, :feedback, :feedback_format, :url, :category_id, :send_email, :email_to, :created_at, :updated_at)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return form.Form{}, trapConnErr(err, "creating form")
	}
	defer func() { _ = stmt.Close() }()

	if err = stmt.Get(&row.ID, row); err != nil {
		return form.Form{}, trapConnErr(err, "creating form")
	}
	return row.toForm(), nil
}

func (repo formRepository) QueryAllForms() ([]form.Form, error) {
	var rows []formRow
	if err := repo.db.Select(&rows, "SELECT * FROM forms ORDER BY id"); err != nil {
		return nil, trapConnErr(err, "querying forms")
	}
	forms := make([]form.Form, 0, len(rows))
	for _, row := range rows {
		forms = append(forms, row.toForm())
	}
	return forms, nil
}

func (repo formRepository) GetFormByID(id int) (form.Form, error) {
	var row formRow
	if err := repo.db.Get(&row, "SELECT * FROM forms WHERE id = $1", id); err != nil {
		return form.Form{}, repo.trapNoRowsErr(err, "getting form")
	}
	return row.toForm(), nil
}

// UpdateForm merges non-zero fields of frm into the stored instance.
func (repo formRepository) UpdateForm(frm form.Form, sendEmail *bool) (form.Form, error) {
	stored, err := repo.GetFormByID(frm.ID)
	if err != nil {
		return form.Form{}, err
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

	row := newFormRow(stored)
	query := `
		UPDATE forms
		SET course = :course, name = :name, intro = :intro, feedback = :feedback,
		    feedback_format = :feedback_format, url = :url, category_id = :category_id,
		    send_email = :send_email, email_to = :email_to, updated_at = :updated_at
		WHERE id = :id`
	if _, err = repo.db.NamedExec(query, row); err != nil {
		return form.Form{}, trapConnErr(err, "updating form")
	}
	return stored, nil
}

func (repo formRepository) DeleteFormsByID(ids ...int) error {
	query, args, err := sqlx.In("DELETE FROM forms WHERE id IN (?)", ids)
	if err != nil {
		return trapConnErr(err, "deleting forms")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return trapConnErr(err, "deleting forms")
	}
	return nil
}
