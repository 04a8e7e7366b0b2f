// Package gst models the two-leg goods and services tax printed on invoices.
//
// A tax is split into a central (CGST) and a state (SGST) component of equal
// rate. Each Component is derived from a rate plus either its taxable subtotal
// or its amount; a Combined tax pairs one leg of each kind. Both values are
// immutable: every field is computed in the constructor and no setter exists.
package gst

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Kind identifies the leg of a split tax.
type Kind string

const (
	CGST Kind = "CGST"
	SGST Kind = "SGST"
)

// ParseKind normalizes a kind label. Only the first letter matters, so "c",
// "cgst" and "CGST" all map to CGST.
func ParseKind(label string) (Kind, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: empty label", ErrInvalidTaxKind)
	}

	switch unicode.ToLower([]rune(label)[0]) {
	case 'c':
		return CGST, nil
	case 's':
		return SGST, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTaxKind, label)
}

// Component is a single tax leg tied to its rate.
type Component struct {
	kind     Kind
	rate     decimal.Decimal
	subtotal decimal.Decimal
	amount   decimal.Decimal
}

// NewComponent builds a tax leg. Rate is required; exactly one of Subtotal or
// Amount is expected, and the other is derived:
//
//	amount   = round(subtotal * rate / 100, 2)
//	subtotal = round(amount * 100 / rate, 2)
func NewComponent(kind Kind, opts ...Option) (Component, error) {
	if kind != CGST && kind != SGST {
		return Component{}, fmt.Errorf("%w: %q", ErrInvalidTaxKind, kind)
	}

	a := &assignment{}
	if err := a.apply(opts); err != nil {
		return Component{}, err
	}
	if !a.rateSet {
		return Component{}, fmt.Errorf("%w: rate is required", ErrInsufficientArguments)
	}
	if err := a.derive(); err != nil {
		return Component{}, err
	}

	return Component{
		kind:     kind,
		rate:     a.rate,
		subtotal: a.subtotal,
		amount:   a.amount,
	}, nil
}

func (c Component) Kind() Kind                { return c.kind }
func (c Component) Rate() decimal.Decimal     { return c.rate }
func (c Component) Subtotal() decimal.Decimal { return c.subtotal }
func (c Component) Amount() decimal.Decimal   { return c.amount }
func (c Component) Legs() []Component         { return []Component{c} }

// Equal reports whether both legs carry the same rate and amount. The kind is
// not compared.
func (c Component) Equal(other Component) bool {
	return c.rate.Equal(other.rate) && c.amount.Equal(other.amount)
}

// Add pairs a CGST and an SGST leg of equal rate and equal amount into a
// Combined tax. Any other pairing is an error.
func (c Component) Add(other Component) (Combined, error) {
	if !c.rate.Equal(other.rate) {
		return Combined{}, fmt.Errorf("%w: %s%% != %s%%", ErrRateMismatch, c.rate, other.rate)
	}
	if c.kind == other.kind {
		return Combined{}, fmt.Errorf("%w: both legs are %s", ErrIncompatibleComponents, c.kind)
	}
	if !c.amount.Equal(other.amount) {
		return Combined{}, fmt.Errorf("%w: %s %s != %s %s",
			ErrIncompatibleComponents, c.kind, c.amount.StringFixed(2), other.kind, other.amount.StringFixed(2))
	}

	if c.kind == CGST {
		return CombineComponents(c, other)
	}
	return CombineComponents(other, c)
}

func (c Component) String() string {
	return fmt.Sprintf("%s %s%% %s", c.kind, c.rate, c.amount.StringFixed(2))
}
