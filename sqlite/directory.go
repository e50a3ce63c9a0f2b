package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/medibot"
)

// Compile-time interface verification.
var _ medibot.DirectoryService = (*DirectoryService)(nil)

// DirectoryService implements medibot.DirectoryService using SQLite.
type DirectoryService struct {
	db *DB
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(db *DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// Initialize drops the doctors table, recreates it and loads the seed set.
//
// The whole rebuild runs in one transaction, so a failure leaves the
// previous directory in place. Rows are keyed by content hash and inserted
// with INSERT OR IGNORE: identical records collapse to one row no matter
// how often or by which path they are inserted.
func (s *DirectoryService) Initialize(ctx context.Context, seed []*medibot.Doctor) error {
	for _, d := range seed {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return medibot.Errorf(medibot.EUNAVAILABLE, "begin directory rebuild: %s", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS doctors"); err != nil {
		return fmt.Errorf("failed to drop doctors table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, doctorsSchema); err != nil {
		return fmt.Errorf("failed to create doctors table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO doctors (doctor_identity_number, doctor_name, symptom_name, specialization,
			contact, email, hospital_name, hospital_location, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range seed {
		if _, err := stmt.ExecContext(ctx, d.IdentityNumber, d.Name, d.Symptoms, d.Specialization,
			d.Contact, d.Email, d.HospitalName, d.HospitalLocation, hashDoctor(d)); err != nil {
			return fmt.Errorf("failed to insert doctor %q: %w", d.Name, err)
		}
	}

	return tx.Commit()
}

// FindBySymptom returns every doctor whose symptom list contains query.
//
// Matching uses instr rather than LIKE: it is case-sensitive and treats
// % and _ literally. There is no tokenization, so "cough" also matches
// "drycough".
func (s *DirectoryService) FindBySymptom(ctx context.Context, query string) ([]*medibot.SymptomMatch, error) {
	var q strings.Builder
	var args []any

	q.WriteString(`SELECT doctor_identity_number, doctor_name, specialization, contact, email,
		hospital_name, hospital_location FROM doctors`)

	// The empty string is a substring of every symptom list.
	if query != "" {
		q.WriteString(" WHERE instr(symptom_name, ?) > 0")
		args = append(args, query)
	}

	q.WriteString(" ORDER BY doctor_id ASC")

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*medibot.SymptomMatch{}
	for rows.Next() {
		var m medibot.SymptomMatch
		if err := rows.Scan(&m.IdentityNumber, &m.Name, &m.Specialization, &m.Contact, &m.Email,
			&m.HospitalName, &m.HospitalLocation); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}

	return matches, rows.Err()
}

// FindBySpecialization returns every doctor with exactly the given specialization.
func (s *DirectoryService) FindBySpecialization(ctx context.Context, label string) ([]*medibot.SpecialistListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doctor_identity_number, doctor_name, symptom_name, contact, email,
			hospital_name, hospital_location
		FROM doctors
		WHERE specialization = ?
		ORDER BY doctor_id ASC
	`, label)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*medibot.SpecialistListing{}
	for rows.Next() {
		var l medibot.SpecialistListing
		if err := rows.Scan(&l.IdentityNumber, &l.Name, &l.Symptoms, &l.Contact, &l.Email,
			&l.HospitalName, &l.HospitalLocation); err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}

	return listings, rows.Err()
}

// ListSpecializations returns the distinct specializations in alphabetical order.
func (s *DirectoryService) ListSpecializations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT specialization FROM doctors ORDER BY specialization ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

// CountDoctors returns the number of records in the directory.
func (s *DirectoryService) CountDoctors(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM doctors").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
