package pgrepos

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/customform/core"
	"github.com/trezcool/customform/core/form"
)

func Test_trapNoRowsErr(t *testing.T) {
	repo := formRepository{}

	assert.Equal(t, form.ErrNotFound, repo.trapNoRowsErr(sql.ErrNoRows, "getting form"))
	assert.True(t, core.IsShutdown(repo.trapNoRowsErr(driver.ErrBadConn, "getting form")))

	err := repo.trapNoRowsErr(errors.New("boom"), "getting form")
	assert.False(t, core.IsShutdown(err))
	assert.Contains(t, err.Error(), "getting form")
}

func Test_trapConnErr(t *testing.T) {
	assert.True(t, core.IsShutdown(trapConnErr(driver.ErrBadConn, "querying forms")))
	assert.False(t, core.IsShutdown(trapConnErr(errors.New("boom"), "querying forms")))
}
