package parsers

import (
	"github.com/username/parsegbx/src/models"
)

// Parser turns one report file into a typed trade table.
type Parser interface {
	ParseFile(path string) (*models.Table, error)
}
