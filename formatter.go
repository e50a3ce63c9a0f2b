package medibot

import (
	"strings"
)

// FormatSymptomMatches formats symptom search results for display.
// Records are separated by blank lines; multi-line locations are indented.
func FormatSymptomMatches(matches []*SymptomMatch) string {
	if len(matches) == 0 {
		return ""
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		var b strings.Builder
		b.WriteString(m.Name + " (" + m.Specialization + ")\n")
		b.WriteString("  ID:       " + m.IdentityNumber + "\n")
		b.WriteString("  Contact:  " + m.Contact + "\n")
		b.WriteString("  Email:    " + m.Email + "\n")
		b.WriteString("  Hospital: " + m.HospitalName + "\n")
		b.WriteString(indent(m.HospitalLocation, "            "))
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatSpecialistListings formats specialization browse results for display.
func FormatSpecialistListings(listings []*SpecialistListing) string {
	if len(listings) == 0 {
		return ""
	}

	parts := make([]string, 0, len(listings))
	for _, l := range listings {
		var b strings.Builder
		b.WriteString(l.Name + "\n")
		b.WriteString("  ID:       " + l.IdentityNumber + "\n")
		b.WriteString("  Treats:   " + l.Symptoms + "\n")
		b.WriteString("  Contact:  " + l.Contact + "\n")
		b.WriteString("  Email:    " + l.Email + "\n")
		b.WriteString("  Hospital: " + l.HospitalName + "\n")
		b.WriteString(indent(l.HospitalLocation, "            "))
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatTranscript formats a transcript as "Role: text" lines.
func FormatTranscript(t Transcript) string {
	lines := make([]string, 0, len(t))
	for _, turn := range t {
		lines = append(lines, string(turn.Role)+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
