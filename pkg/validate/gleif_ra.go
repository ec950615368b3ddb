package validate

import "sort"

// gleifRegistrationAuthorities is a sorted snapshot of GLEIF
// Registration Authority codes (the ISO 20275 RA list LEI records
// reference via RA000xxx identifiers), embedded the same way as the
// ISO 3166-1 table per DESIGN.md's resolution of Open Question 4 — a
// live snapshot is out of scope for a library that performs no network
// I/O, so L2-EID-03 checks against this fixed table rather than a
// pluggable external source.
var gleifRegistrationAuthorities = []string{
	"RA000001", "RA000002", "RA000003", "RA000007", "RA000009", "RA000010",
	"RA000017", "RA000030", "RA000045", "RA000060", "RA000085", "RA000090",
	"RA000205", "RA000210", "RA000215", "RA000463", "RA000585", "RA000598",
	"RA000615", "RA000628", "RA000645", "RA000666", "RA000679", "RA000695",
}

func validGLEIFRegistrationAuthority(code string) bool {
	i := sort.SearchStrings(gleifRegistrationAuthorities, code)
	return i < len(gleifRegistrationAuthorities) && gleifRegistrationAuthorities[i] == code
}
