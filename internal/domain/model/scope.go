package model

// Scope selects which matches participate in a computation: everything,
// one edition, or the editions of one year. Edition and year are mutually
// exclusive; the zero Scope means all-time.
type Scope struct {
	Edition EditionID
	Year    int
}

// AllTime returns the unrestricted scope.
func AllTime() Scope { return Scope{} }

// ForEdition restricts the scope to a single edition.
func ForEdition(id EditionID) Scope { return Scope{Edition: id} }

// ForYear restricts the scope to editions held in the given year. A match
// belongs to the year of its edition, not of its kickoff date; a title
// decided in January still counts toward the previous season.
func ForYear(year int) Scope { return Scope{Year: year} }

// IsAllTime reports whether the scope carries no filter.
func (s Scope) IsAllTime() bool { return s.Edition == 0 && s.Year == 0 }

// Contains reports whether the match falls inside the scope. editionYear
// is the year of the edition the match belongs to; the kickoff date plays
// no part in year filtering.
func (s Scope) Contains(m Match, editionYear int) bool {
	if s.Edition != 0 && m.EditionID != s.Edition {
		return false
	}
	if s.Year != 0 && editionYear != s.Year {
		return false
	}
	return true
}
