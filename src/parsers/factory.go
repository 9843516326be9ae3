package parsers

import (
	"fmt"
	"strings"

	"github.com/username/parsegbx/src/parsers/genbox"
)

func GetParser(source string, opts genbox.Options) (Parser, error) {
	switch strings.ToLower(source) {
	case "", "genbox":
		return genbox.NewParser(opts), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
