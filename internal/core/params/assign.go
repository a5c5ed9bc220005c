package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"
)

// Assign returns a copy of p with each "field=value" assignment applied.
// Unknown fields, unparsable numbers and out-of-range values are all
// reported; on any error p is returned unchanged.
func (p FilterParameters) Assign(assignments []string) (FilterParameters, error) {
	out := p
	var errs criterio.FieldErrorsBuilder

	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		if !ok {
			errs = errs.Append(a, fmt.Errorf("expected field=value"))
			continue
		}

		f, ok := ParseField(key)
		if !ok {
			errs = errs.Append(strings.TrimSpace(key), fmt.Errorf("unknown field"))
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || !RangeOf(f).Contains(v) {
			r := RangeOf(f)
			errs = errs.Append(string(f), fmt.Errorf("%q is not a number in %g ~ %g", raw, r.Min, r.Max))
			continue
		}

		out.Set(f, v)
	}

	if err := errs.ToError(); err != nil {
		return p, err
	}
	return out, nil
}
