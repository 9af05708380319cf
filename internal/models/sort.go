// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// SortOption is one of the four fixed field × direction combinations the
// blog page offers. The value is "<field>-<order>".
type SortOption string

const (
	SortDateDesc  SortOption = "date-desc"
	SortDateAsc   SortOption = "date-asc"
	SortTitleAsc  SortOption = "title-asc"
	SortTitleDesc SortOption = "title-desc"

	// DefaultSort matches the backend's default ordering.
	DefaultSort = SortDateDesc
)

// SortOptions lists the options in dropdown order.
var SortOptions = []SortOption{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc}

var sortLabels = map[SortOption]string{
	SortDateDesc:  "Newest → Oldest",
	SortDateAsc:   "Oldest → Newest",
	SortTitleAsc:  "Alphabetical (A-Z)",
	SortTitleDesc: "Alphabetical (Z-A)",
}

// Label returns the human-readable dropdown label, or "Sort" for values
// outside the fixed set.
func (s SortOption) Label() string {
	if l, ok := sortLabels[s]; ok {
		return l
	}
	return "Sort"
}

// Valid reports whether s is one of the four fixed options.
func (s SortOption) Valid() bool {
	_, ok := sortLabels[s]
	return ok
}

// Split returns the backend sort_by and sort_order parameters.
func (s SortOption) Split() (field, order string) {
	field, order, _ = strings.Cut(string(s), "-")
	return field, order
}
