package stats

//go:generate mockgen -destination=mock/mock_source.go -package=mockstats -source=source.go

import "reflect"

// Source is whatever caused a modifier to be attached (equipment, a buff, an aura).
// A stat only compares sources by identity and reads the name when rendering;
// it never owns or inspects them. Use pointer types so identity is meaningful.
type Source interface {
	SourceName() string
}

// sameSource compares by interface identity. Sources of a non-comparable
// dynamic type never match.
func sameSource(a, b Source) bool {
	if a == nil || b == nil {
		return false
	}
	if !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}
