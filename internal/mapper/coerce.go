package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	errMissing   = errors.New("missing")
	errWrongType = errors.New("wrong type")
)

// Values arrive from pgx (RowToMap), JSON documents or CSV cells, so every
// coercion accepts the handful of shapes those sources produce.

func asString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", errMissing
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", errWrongType, v)
	}
}

func asDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, errMissing
	case decimal.Decimal:
		return t, nil
	case pgtype.Numeric:
		if !t.Valid {
			return decimal.Zero, errMissing
		}
		if t.NaN || t.InfinityModifier != pgtype.Finite {
			return decimal.Zero, fmt.Errorf("%w: non-finite numeric", errWrongType)
		}
		return decimal.NewFromBigInt(t.Int, t.Exp), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, fmt.Errorf("%w: non-finite number", errWrongType)
		}
		return decimal.NewFromFloat(t), nil
	case float32:
		return asDecimal(float64(t))
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int16:
		return decimal.NewFromInt(int64(t)), nil
	case int32:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, errMissing
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q is not a number", errWrongType, t)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", errWrongType, v)
	}
}

func asFloat(v any) (float64, error) {
	d, err := asDecimal(v)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

func asInt(v any) (int, error) {
	d, err := asDecimal(v)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s is not an integer", errWrongType, d)
	}
	return int(d.IntPart()), nil
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, errMissing
	case bool:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return false, errMissing
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", errWrongType, t)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %T", errWrongType, v)
	}
}

// asStrings accepts native slices as well as the delimited text a CSV cell or
// a Postgres array literal carries ("a;b", "{a,b}").
func asStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, errMissing
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, err := asString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return splitList(t), nil
	default:
		return nil, fmt.Errorf("%w: %T", errWrongType, v)
	}
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if s == "" {
		return []string{}
	}
	sep := ";"
	if !strings.Contains(s, sep) {
		sep = ","
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.Trim(strings.TrimSpace(p), `"`); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func asDate(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", errMissing
	case time.Time:
		return t.Format(time.DateOnly), nil
	case pgtype.Date:
		if !t.Valid {
			return "", errMissing
		}
		return t.Time.Format(time.DateOnly), nil
	case string:
		return strings.TrimSpace(t), nil
	default:
		return "", fmt.Errorf("%w: %T", errWrongType, v)
	}
}
