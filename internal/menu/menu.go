// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu rebuilds dish/price records from the ordered text fragments
// of a menu page. A dish may span several fragments; the fragment carrying
// the price closes the record.
package menu

import (
	"regexp"
	"strings"

	"github.com/pdiddy/lunch-menu/pkg/types"
)

var (
	// indexMarker gates menu lines: "<digits>." at the start.
	indexMarker = regexp.MustCompile(`^\d+\.`)

	// priceToken is the trailing "<digits>,-" price convention.
	priceToken = regexp.MustCompile(`(\d+,-)$`)
)

// State is the accumulator state.
type State int

const (
	// Empty means no partial dish text is held.
	Empty State = iota
	// Accumulating means a dish without a price has been seen.
	Accumulating
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Accumulating:
		return "accumulating"
	default:
		return "unknown"
	}
}

// Event classifies one fragment.
type Event int

const (
	// Skip is a fragment without an index marker.
	Skip Event = iota
	// Line is a menu line without a price.
	Line
	// Priced is a menu line ending in a price token.
	Priced
)

// action is what the machine does on a transition.
type action int

const (
	ignore action = iota
	accumulate
	emit
)

type transition struct {
	next State
	do   action
}

// transitions is the full (state, event) table. Every emit returns to Empty.
var transitions = map[State]map[Event]transition{
	Empty: {
		Skip:   {Empty, ignore},
		Line:   {Accumulating, accumulate},
		Priced: {Empty, emit},
	},
	Accumulating: {
		Skip:   {Accumulating, ignore},
		Line:   {Accumulating, accumulate},
		Priced: {Empty, emit},
	},
}

// Classify returns the event for a fragment and, for Priced, the position at
// which the price token starts. The fragment must already be trimmed.
func Classify(fragment string) (Event, int) {
	if !indexMarker.MatchString(fragment) {
		return Skip, -1
	}
	loc := priceToken.FindStringIndex(fragment)
	if loc == nil {
		return Line, -1
	}
	return Priced, loc[0]
}

// machine holds the accumulator for a single Reconstruct call.
type machine struct {
	state State
	acc   string
	items []types.MenuItem
}

func (m *machine) step(fragment string) {
	fragment = strings.TrimSpace(fragment)
	ev, priceAt := Classify(fragment)
	t := transitions[m.state][ev]

	switch t.do {
	case accumulate:
		if m.acc == "" {
			m.acc = fragment
		} else {
			m.acc = m.acc + " " + fragment
		}
	case emit:
		name := strings.TrimSpace(fragment[:priceAt])
		if m.acc != "" {
			name = m.acc + " " + name
		}
		m.items = append(m.items, types.MenuItem{
			Dish:  CollapseWhitespace(name),
			Price: fragment[priceAt:] + " " + types.CurrencySuffix,
		})
		m.acc = ""
	}
	m.state = t.next
}

// Reconstruct turns fragments into menu items in the order of their price
// fragments. Fragments without an index marker are dropped, and a trailing
// dish whose price never arrives produces no item. It never fails.
func Reconstruct(fragments []string) []types.MenuItem {
	m := &machine{state: Empty}
	for _, f := range fragments {
		m.step(f)
	}
	if m.items == nil {
		return []types.MenuItem{}
	}
	return m.items
}

// CountPriced returns how many fragments pass the index gate and carry a
// price token, which is the number of items Reconstruct yields for them.
func CountPriced(fragments []string) int {
	n := 0
	for _, f := range fragments {
		if ev, _ := Classify(strings.TrimSpace(f)); ev == Priced {
			n++
		}
	}
	return n
}

// CollapseWhitespace replaces every run of Unicode whitespace (including
// the no-break spaces common on the source page) with a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
