// Package money holds the monetary amount type shared by budgets, category
// limits and transactions.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Amount is an exact decimal amount of money. The zero value is 0.
//
// Amounts decoded from JSON are lenient: null, missing, non-numeric and
// non-finite inputs all decode to 0 so that a malformed field of the budgeting
// API can never turn a displayed total into NaN. Amounts typed in by users are
// decoded with Exact instead.
type Amount struct {
	d decimal.Decimal
}

var Zero = Amount{}

func New(value int64) Amount {
	return Amount{d: decimal.NewFromInt(value)}
}

// FromFloat converts a float, treating NaN and infinities as 0.
func FromFloat(value float64) Amount {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero
	}
	return Amount{d: decimal.NewFromFloat(value)}
}

var ErrMalformed = errors.New("malformed amount")

// Parse parses a decimal string with a dot separator, like "12.34". Commas are
// rejected, since "1,500" could mean either 1.5 or 1500.
func Parse(value string) (Amount, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, ",") {
		return Zero, fmt.Errorf("%w: %q", ErrMalformed, value)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrMalformed, value)
	}
	return Amount{d: d}, nil
}

// parseLenient also reads a lone decimal comma, as in "12,34".
func parseLenient(value string) (Amount, error) {
	value = strings.TrimSpace(value)
	if !strings.Contains(value, ".") && strings.Count(value, ",") == 1 {
		value = strings.Replace(value, ",", ".", 1)
	}
	return Parse(value)
}

// MustParse is Parse for literals known to be valid.
func MustParse(value string) Amount {
	a, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{d: a.d.Sub(b.d)}
}

func (a Amount) Neg() Amount {
	return Amount{d: a.d.Neg()}
}

func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

// Ratio returns a/of as a float. It returns 0 when of is not positive.
func (a Amount) Ratio(of Amount) float64 {
	if !of.d.IsPositive() {
		return 0
	}
	return a.d.Div(of.d).InexactFloat64()
}

func (a Amount) Float64() float64 {
	return a.d.InexactFloat64()
}

func (a Amount) String() string {
	return a.d.String()
}

// StringFixed formats the amount rounded to the given number of decimal places.
func (a Amount) StringFixed(places int32) string {
	return a.d.StringFixed(places)
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*a = Zero
		return nil
	}
	raw = bytes.Trim(raw, `"`)
	parsed, err := parseLenient(string(raw))
	if err != nil {
		log.Debugf("coercing malformed amount %q to 0: %v", string(data), err)
		*a = Zero
		return nil
	}
	*a = parsed
	return nil
}

// Exact is an Amount read from user input. Unlike Amount it fails to decode
// anything but a finite number or a numeric string, so a typo is reported
// instead of being stored as 0. null decodes to 0.
type Exact Amount

func (e Exact) Amount() Amount {
	return Amount(e)
}

func (e Exact) MarshalJSON() ([]byte, error) {
	return Amount(e).MarshalJSON()
}

func (e *Exact) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*e = Exact(Zero)
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformed, raw)
		}
		raw = []byte(text)
	}
	parsed, err := Parse(string(raw))
	if err != nil {
		return err
	}
	*e = Exact(parsed)
	return nil
}
