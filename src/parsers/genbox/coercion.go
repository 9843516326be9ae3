package genbox

import (
	"fmt"
	"math"
	"time"

	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
	"github.com/username/parsegbx/src/utils"
)

// CoercionOptions tune AssignTypes.
type CoercionOptions struct {
	// CoerceInvalidTimes turns unparsable timestamps into the zero time
	// instead of failing.
	CoerceInvalidTimes bool
}

// AssignTypes converts the columns of a copy of t to their declared types.
//
// Timestamp columns are converted first and strictly: blank or NaT cells
// become the zero time, but any other unparsable value fails the whole call
// with a nil table, unless opts.CoerceInvalidTimes is set. Rules are then applied in order. "numeric" never fails (bad values
// become NaN); any other type is a strict cast. On the first strict failure
// the copy is returned as it stood before that column, together with a
// *TypeCoercionError. t itself is never modified.
func AssignTypes(t *models.Table, rules []TypeRule, timeColumns []string, opts CoercionOptions) (*models.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil table", ErrTypeCoercion)
	}
	out := t.Copy()

	for _, name := range timeColumns {
		col := out.Column(name)
		if col == nil {
			continue
		}
		converted, err := toTime(out.Index, *col, opts.CoerceInvalidTimes)
		if err != nil {
			return nil, err
		}
		*col = converted
	}

	for _, rule := range rules {
		col := out.Column(rule.Column)
		if col == nil {
			continue
		}
		converted, err := convert(out.Index, *col, rule.Type)
		if err != nil {
			logger.L.Error("Error converting column", "column", rule.Column, "type", string(rule.Type), "error", err)
			return out, err
		}
		*col = converted
	}
	return out, nil
}

func convert(index []string, col models.Column, typ ColumnType) (models.Column, error) {
	switch typ {
	case TypeString:
		return toString(col), nil
	case TypeFloat:
		return toFloat(index, col, false)
	case TypeNumeric:
		return toFloat(index, col, true)
	case TypeTime:
		return toTime(index, col, false)
	default:
		return col, &TypeCoercionError{Column: col.Name, Type: typ, Err: fmt.Errorf("unsupported column type %q", typ)}
	}
}

func toString(col models.Column) models.Column {
	if col.Kind == models.KindString {
		return col
	}
	out := models.Column{Name: col.Name, Kind: models.KindString, Text: make([]string, col.Len())}
	for i := range out.Text {
		out.Text[i] = col.String(i)
	}
	return out
}

func toFloat(index []string, col models.Column, lenient bool) (models.Column, error) {
	typ := TypeFloat
	if lenient {
		typ = TypeNumeric
	}
	switch col.Kind {
	case models.KindFloat:
		return col, nil
	case models.KindTime:
		if !lenient {
			return col, &TypeCoercionError{Column: col.Name, Type: typ, Err: fmt.Errorf("cannot cast timestamp column to float")}
		}
		return timesToFloats(col), nil
	}

	out := models.Column{Name: col.Name, Kind: models.KindFloat, Floats: make([]float64, len(col.Text))}
	for i, raw := range col.Text {
		v, err := utils.ParseFloat(raw)
		if err != nil {
			if lenient {
				out.Floats[i] = math.NaN()
				continue
			}
			return col, &TypeCoercionError{Column: col.Name, Type: typ, Key: keyAt(index, i), Value: raw, Err: err}
		}
		out.Floats[i] = v
	}
	return out, nil
}

// timesToFloats maps timestamps to Unix nanoseconds and missing ones to NaN.
func timesToFloats(col models.Column) models.Column {
	out := models.Column{Name: col.Name, Kind: models.KindFloat, Floats: make([]float64, len(col.Times))}
	for i, v := range col.Times {
		if v.IsZero() {
			out.Floats[i] = math.NaN()
			continue
		}
		out.Floats[i] = float64(v.UnixNano())
	}
	return out
}

func toTime(index []string, col models.Column, coerce bool) (models.Column, error) {
	switch col.Kind {
	case models.KindTime:
		return col, nil
	case models.KindFloat:
		return col, &TypeCoercionError{Column: col.Name, Type: TypeTime, Err: fmt.Errorf("cannot parse float column as timestamps")}
	}

	out := models.Column{Name: col.Name, Kind: models.KindTime, Times: make([]time.Time, len(col.Text))}
	for i, raw := range col.Text {
		if utils.IsMissingTimestamp(raw) {
			continue
		}
		v, err := utils.ParseTimestamp(raw)
		if err != nil {
			if coerce {
				continue
			}
			return col, &TypeCoercionError{Column: col.Name, Type: TypeTime, Key: keyAt(index, i), Value: raw, Err: err}
		}
		out.Times[i] = v
	}
	return out, nil
}

func keyAt(index []string, i int) string {
	if i < len(index) {
		return index[i]
	}
	return fmt.Sprint(i)
}
