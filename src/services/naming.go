package services

import (
	"regexp"
	"strings"

	"github.com/lib/pq"
)

// Domain prefixes accepted by every record and schema operation. The prefix is
// both a naming contract and the relation-resolution compatibility boundary.
const (
	PrefixInscription = "inscription_"
	PrefixProvider    = "provider_"
	PrefixPlan        = "pi_"
)

// CaracterizacionTable is the lead intake table that pi_* plan line-items and
// their files are scoped to.
const CaracterizacionTable = "inscription_caracterizacion"

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidTableName reports whether name satisfies the prefix contract and the
// identifier character set. Names failing this check never reach the database.
func ValidTableName(name string) bool {
	if !identifierPattern.MatchString(name) {
		return false
	}
	return strings.HasPrefix(name, PrefixInscription) ||
		strings.HasPrefix(name, PrefixProvider) ||
		strings.HasPrefix(name, PrefixPlan)
}

// ValidIdentifier reports whether a column name is safe to quote into DDL/DML.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// quoteIdent quotes a previously validated dynamic identifier for interpolation
// into a statement. Values are always bound separately.
func quoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// tableDomain returns the domain prefix of a table name, or "" when the name
// matches none.
func tableDomain(name string) string {
	switch {
	case strings.HasPrefix(name, PrefixInscription):
		return PrefixInscription
	case strings.HasPrefix(name, PrefixProvider):
		return PrefixProvider
	case strings.HasPrefix(name, PrefixPlan):
		return PrefixPlan
	}
	return ""
}

// compatibleDomains reports whether a relation from owner into related may be
// resolved. provider_* and inscription_* tables only resolve within their own
// domain; pi_* tables may resolve into any of the three.
func compatibleDomains(owner, related string) bool {
	ownerDomain := tableDomain(owner)
	relatedDomain := tableDomain(related)
	if ownerDomain == "" || relatedDomain == "" {
		return false
	}
	if ownerDomain == PrefixPlan {
		return true
	}
	return ownerDomain == relatedDomain
}
