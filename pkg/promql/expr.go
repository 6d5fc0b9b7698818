package promql

import (
	"fmt"
	"strings"
)

// Expr is a rendered query fragment together with the set of labels
// its output series keep after the last grouping operation.
type Expr struct {
	text     string
	grouping []string
	grouped  bool

	// Set for ratio expressions only.
	num *Expr
	den *Expr
}

func (e Expr) String() string {
	return e.text
}

// Grouped reports whether the expression output went through an
// aggregation clause. A raw selector keeps all series labels and
// is not Grouped.
func (e Expr) Grouped() bool {
	return e.grouped
}

// Grouping returns the labels preserved in the expression output.
// Nil for raw (never aggregated) expressions.
func (e Expr) Grouping() []string {
	if e.grouping == nil {
		return nil
	}
	res := make([]string, len(e.grouping))
	copy(res, e.grouping)
	return res
}

// Terms returns the numerator and denominator for ratio expressions,
// nil otherwise.
func (e Expr) Terms() (*Expr, *Expr) {
	return e.num, e.den
}

// HasLabel reports whether the output grouping preserves the given label.
func (e Expr) HasLabel(label string) bool {
	for _, l := range e.grouping {
		if l == label {
			return true
		}
	}
	return false
}

type Matcher struct {
	Label string
	Op    string
	Value string
}

func Eq(label, value string) Matcher {
	return Matcher{Label: label, Op: "=", Value: value}
}

func NotEq(label, value string) Matcher {
	return Matcher{Label: label, Op: "!=", Value: value}
}

func Match(label, value string) Matcher {
	return Matcher{Label: label, Op: "=~", Value: value}
}

// Vector builds an instant vector selector.
func Vector(metric string, matchers ...Matcher) Expr {
	if len(matchers) == 0 {
		return Expr{text: metric}
	}
	parts := make([]string, len(matchers))
	for i, m := range matchers {
		parts[i] = fmt.Sprintf(`%s%s"%s"`, m.Label, m.Op, m.Value)
	}
	return Expr{text: fmt.Sprintf("%s{%s}", metric, strings.Join(parts, ","))}
}

// Rate wraps the selector into rate() over the given window. Grouping
// is untouched: rate keeps series labels.
func Rate(e Expr, window string) Expr {
	e.text = fmt.Sprintf("rate(%s[%s])", e.text, window)
	return e
}

func aggregate(op string, e Expr, by []string) Expr {
	text := fmt.Sprintf("%s(%s)", op, e.text)
	if len(by) > 0 {
		text = fmt.Sprintf("%s by (%s)", text, strings.Join(by, ", "))
	}
	return Expr{text: text, grouping: append([]string{}, by...), grouped: true}
}

// Sum aggregates the expression by the given labels. All other
// output labels are dropped.
func Sum(e Expr, by ...string) Expr {
	return aggregate("sum", e, by)
}

func Count(e Expr, by ...string) Expr {
	return aggregate("count", e, by)
}

func Min(e Expr, by ...string) Expr {
	return aggregate("min", e, by)
}

// Group collapses the expression into presence indicators: one series
// with value 1 per distinct combination of the given labels.
func Group(e Expr, by ...string) Expr {
	return aggregate("group", e, by)
}

// Mul is a many-to-one vector multiplication matching on the given
// labels. Labels listed in carry are copied from the right side into
// the result via group_left.
func Mul(left, right Expr, on []string, carry ...string) Expr {
	text := fmt.Sprintf("%s * on (%s) group_left(%s) %s",
		left.text, strings.Join(on, ", "), strings.Join(carry, ", "), right.text)
	grouping := left.grouping
	if grouping != nil || len(carry) > 0 {
		grouping = append(append([]string{}, left.grouping...), carry...)
	}
	return Expr{text: text, grouping: grouping, grouped: left.grouped}
}

// Unless drops the left-side series that have a match on the right,
// compared on the given labels. Output labels are the left side's.
func Unless(left, right Expr, on ...string) Expr {
	left.text = fmt.Sprintf("%s unless on (%s) %s", left.text, strings.Join(on, ", "), right.text)
	return left
}

// Plus adds two vectors matched on identical label sets.
func Plus(a, b Expr) Expr {
	return Expr{text: fmt.Sprintf("%s + %s", a.text, b.text)}
}

// Div builds the ratio of two identically grouped aggregations and
// remembers both terms so callers can check them for parity.
func Div(num, den Expr) Expr {
	return Expr{
		text:     fmt.Sprintf("%s / %s", num.text, den.text),
		grouping: num.Grouping(),
		grouped:  num.grouped,
		num:      &num,
		den:      &den,
	}
}

// OneMinus inverts a ratio. Grouping is the inner expression's.
func OneMinus(e Expr) Expr {
	e.text = fmt.Sprintf("1 - %s", e.text)
	return e
}
