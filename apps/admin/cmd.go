package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/customform/storage/database"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db *sqlx.DB
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply pending database migrations")
	fmt.Println("  seed -category NAME - create a demo field category with sample fields")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedCategory := seedCmd.String("category", "Demo", "Name of the demo field category to create.")

	switch args[1] {
	case "migrate":
		return database.Migrate(cli.db)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedCategory)
	default:
		cli.printUsage()
		return errHelp
	}
}

// seed creates a sample category with one field of each common kind,
// plus a form instance pointing at it; local dev convenience.
func (cli *commandLine) seed(categoryName string) error {
	var categoryID int
	if err := cli.db.Get(&categoryID,
		"INSERT INTO field_categories (name) VALUES ($1) RETURNING id", categoryName); err != nil {
		return err
	}

	fields := []struct {
		shortname, name, typ string
		options              []string
	}{
		{"fullname", "Full name", "text", nil},
		{"color", "Favourite colour", "select", []string{"Red", "Green", "Blue"}},
		{"interests", "Interests", "multiselect", []string{"Sports", "Music", "Reading"}},
		{"subscribe", "Subscribe to newsletter", "checkbox", nil},
		{"bio", "Biography", "editor", nil},
	}
	for i, fd := range fields {
		var options interface{}
		if fd.options != nil {
			options = strings.Join(fd.options, "\n")
		}
		if _, err := cli.db.Exec(
			`INSERT INTO field_definitions (category_id, shortname, name, type, options, sortorder)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			categoryID, fd.shortname, fd.name, fd.typ, options, i); err != nil {
			return err
		}
	}

	if _, err := cli.db.Exec(
		`INSERT INTO forms (course, name, feedback, category_id)
		 VALUES ($1, $2, $3, $4)`,
		"DEMO101", categoryName+" form", "<p>Thank you for your submission.</p>", categoryID); err != nil {
		return err
	}

	fmt.Printf("seeded category %q (id=%d)\n", categoryName, categoryID)
	return nil
}
