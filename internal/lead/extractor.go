// Package lead recovers a canonical contact record from an arbitrary form's
// field set via fuzzy concept matching.
package lead

import (
	"strings"

	"github.com/Gordoburrito/tracking-script/internal/domain"
)

// phoneProbes is the fixed probe order for the phone concept. "yourtel" comes
// first: several form builders emit it as the literal field name and it never
// fuzzy-matches "Phone".
var phoneProbes = []string{"yourtel", "Phone", "Mobile", "Cell", "Telephone", "Contact Number"}

// ConceptMatcher resolves a canonical concept name to a field value.
type ConceptMatcher interface {
	Match(query string) (string, bool)
}

// Extract produces a lead record from the form behind matcher. Unresolved
// name and phone fields come back as empty strings while an unresolved email
// comes back nil; the asymmetry is long-observed behavior that downstream
// consumers rely on.
func Extract(matcher ConceptMatcher) domain.LeadRecord {
	fullName, hasFullName := matcher.Match("Name")
	if !hasFullName {
		fullName, hasFullName = matcher.Match("Full Name")
	}

	firstName, hasFirst := matcher.Match("First Name")
	lastName, hasLast := matcher.Match("Last Name")
	if !hasLast {
		lastName, hasLast = matcher.Match("Last")
	}

	if hasFullName {
		parts := strings.Fields(fullName)
		if !hasFirst && len(parts) > 0 {
			firstName = parts[0]
		}
		if !hasLast && len(parts) > 1 {
			lastName = strings.Join(parts[1:], " ")
		}
	}

	var phone string
	for _, probe := range phoneProbes {
		if value, ok := matcher.Match(probe); ok {
			phone = value
			break
		}
	}

	record := domain.LeadRecord{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}

	if email, ok := matcher.Match("Email"); ok {
		record.Email = &email
	}

	return record
}
