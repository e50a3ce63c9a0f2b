package medibot

import "context"

// Doctor represents a single row of the doctor directory.
//
// The same physical doctor may appear more than once, once per
// specialization and hospital combination, so IdentityNumber is not unique.
type Doctor struct {
	ID               int    `json:"id"`
	IdentityNumber   string `json:"identityNumber"`
	Name             string `json:"name"`
	Symptoms         string `json:"symptoms"`
	Specialization   string `json:"specialization"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	HospitalName     string `json:"hospitalName"`
	HospitalLocation string `json:"hospitalLocation"`
}

// Validate returns an error if the doctor contains invalid fields.
// Contact, email and location are free text and are not checked.
func (d *Doctor) Validate() error {
	if d.IdentityNumber == "" {
		return Errorf(EINVALID, "doctor identity number required")
	}
	if d.Name == "" {
		return Errorf(EINVALID, "doctor name required")
	}
	if d.Symptoms == "" {
		return Errorf(EINVALID, "doctor %q symptoms required", d.Name)
	}
	if d.Specialization == "" {
		return Errorf(EINVALID, "doctor %q specialization required", d.Name)
	}
	if d.HospitalName == "" {
		return Errorf(EINVALID, "doctor %q hospital name required", d.Name)
	}
	return nil
}

// SymptomMatch is the view of a doctor returned by a symptom search.
type SymptomMatch struct {
	IdentityNumber   string `json:"identityNumber"`
	Name             string `json:"name"`
	Specialization   string `json:"specialization"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	HospitalName     string `json:"hospitalName"`
	HospitalLocation string `json:"hospitalLocation"`
}

// SpecialistListing is the view of a doctor returned when browsing a
// specialization.
type SpecialistListing struct {
	IdentityNumber   string `json:"identityNumber"`
	Name             string `json:"name"`
	Symptoms         string `json:"symptoms"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	HospitalName     string `json:"hospitalName"`
	HospitalLocation string `json:"hospitalLocation"`
}

// DirectoryService represents the doctor directory.
//
// The directory is reference data: it is rebuilt from a seed set by
// Initialize and is read-only afterwards.
type DirectoryService interface {
	// Initialize drops and recreates the directory, then loads the seed set.
	// Calling it repeatedly with the same seed leaves exactly one copy of
	// each distinct record.
	Initialize(ctx context.Context, seed []*Doctor) error

	// FindBySymptom returns every doctor whose symptom list contains query
	// as a case-sensitive substring. An empty query matches every doctor.
	// No match returns an empty slice, not an error.
	FindBySymptom(ctx context.Context, query string) ([]*SymptomMatch, error)

	// FindBySpecialization returns every doctor whose specialization equals
	// label exactly. An unknown label returns an empty slice.
	FindBySpecialization(ctx context.Context, label string) ([]*SpecialistListing, error)

	// ListSpecializations returns each distinct specialization once, sorted.
	ListSpecializations(ctx context.Context) ([]string, error)

	// CountDoctors returns the number of records in the directory.
	CountDoctors(ctx context.Context) (int, error)
}

// SeedSource provides the fixed record set the directory is built from.
type SeedSource interface {
	LoadDoctors() ([]*Doctor, error)
}
