package search

// Field names a searchable attribute of a Unit.
type Field string

const (
	FieldTitle   Field = "title"
	FieldPath    Field = "path"
	FieldTags    Field = "tags"
	FieldHeaders Field = "headers"
)

// fieldOrder fixes the order FieldMatches are reported in.
var fieldOrder = []Field{FieldTitle, FieldPath, FieldTags, FieldHeaders}

// Weights maps a field to its relative importance. Fields missing from the
// map are not searched and a zero weight disables a field.
type Weights map[Field]float64

// DefaultWeights makes title matches dominate everything else.
func DefaultWeights() Weights {
	return Weights{
		FieldTitle:   4,
		FieldHeaders: 0.2,
		FieldPath:    0.1,
		FieldTags:    0.1,
	}
}

// IndexWeights is the title-only weighting used by directory listings.
func IndexWeights() Weights {
	return Weights{FieldTitle: 1}
}

// ParseField maps a config key onto a Field.
func ParseField(name string) (Field, bool) {
	for _, f := range fieldOrder {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// active returns the fields with a positive weight, in report order, and
// the sum of their weights.
func (w Weights) active() ([]Field, float64) {
	var fields []Field
	var total float64
	for _, f := range fieldOrder {
		if v, ok := w[f]; ok && v > 0 {
			fields = append(fields, f)
			total += v
		}
	}
	return fields, total
}
