package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]struct {
		want Format
		ok   bool
	}{
		"hardcover":   {FormatHardcover, true},
		" Paperback ": {FormatPaperback, true},
		"EBOOK":       {FormatEbook, true},
		"audiobook":   {FormatAudiobook, true},
		"kindle":      {"", false},
		"":            {"", false},
	}
	for in, tc := range cases {
		got, ok := ParseFormat(in)
		assert.Equal(t, tc.ok, ok, in)
		assert.Equal(t, tc.want, got, in)
	}
}

func TestPricesFor(t *testing.T) {
	hc := decimal.RequireFromString("1200.50")
	p := Prices{FormatHardcover: &hc, FormatEbook: nil}

	assert.True(t, p.For(FormatHardcover).Equal(hc))
	assert.True(t, p.For(FormatEbook).IsZero())
	assert.True(t, p.For(FormatAudiobook).IsZero())
	assert.True(t, Prices(nil).For(FormatPaperback).IsZero())
}

func TestBookSellsIn(t *testing.T) {
	b := Book{Formats: []Format{FormatPaperback, FormatEbook}}
	assert.True(t, b.SellsIn(FormatEbook))
	assert.False(t, b.SellsIn(FormatHardcover))
}

func TestCartItemLineTotal(t *testing.T) {
	it := CartItem{BookID: "b1", Format: FormatEbook, Quantity: 3, Price: decimal.RequireFromString("299.99")}
	assert.Equal(t, "899.97", it.LineTotal().String())
	assert.Equal(t, CartKey{BookID: "b1", Format: FormatEbook}, it.Key())
}

func TestLookupMood(t *testing.T) {
	m, ok := LookupMood(" Cozy")
	assert.True(t, ok)
	assert.Equal(t, "cozy", m.Slug)

	_, ok = LookupMood("angry")
	assert.False(t, ok)
}
