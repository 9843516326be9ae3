package genbox

// ColumnType is a declared target type of a column.
type ColumnType string

const (
	TypeString  ColumnType = "str"
	TypeFloat   ColumnType = "float"
	TypeNumeric ColumnType = "numeric" // lenient float, failures become NaN
	TypeTime    ColumnType = "datetime"
)

// TypeRule assigns a target type to a column. Rules are applied in order.
type TypeRule struct {
	Column string
	Type   ColumnType
}

// Schema is the canonical layout of the closed-transactions table.
type Schema struct {
	Columns     []string // canonical names, positional
	Drop        []string // removed after labeling
	Types       []TypeRule
	TimeColumns []string
}

// DefaultSchema describes the Genbox backtest export.
var DefaultSchema = Schema{
	Columns: []string{
		"Ticket",
		"Open Time",
		"Type",
		"Volume",
		"Asset",
		"Open Price",
		"SL",
		"TP",
		"Close Time",
		"Close Price",
		"Commission",
		"Taxes",
		"Swap",
		"Profit",
	},
	Drop: []string{"Commission", "Taxes", "Swap"},
	Types: []TypeRule{
		{"Type", TypeString},
		{"Volume", TypeFloat},
		{"Open Price", TypeFloat},
		{"SL", TypeFloat},
		{"TP", TypeFloat},
		{"Close Price", TypeFloat},
		{"Profit", TypeFloat},
	},
	TimeColumns: []string{"Open Time", "Close Time"},
}

// KeptColumns returns the canonical columns minus the dropped ones. The
// first entry is the row key.
func (s Schema) KeptColumns() []string {
	drop := make(map[string]bool, len(s.Drop))
	for _, d := range s.Drop {
		drop[d] = true
	}
	kept := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	return kept
}

// OutputColumns returns the data columns of a built table: kept columns
// without the row key.
func (s Schema) OutputColumns() []string {
	kept := s.KeptColumns()
	if len(kept) == 0 {
		return nil
	}
	return kept[1:]
}
