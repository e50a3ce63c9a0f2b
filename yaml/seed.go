// Package yaml loads the doctor directory seed set from YAML.
package yaml

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/fwojciec/medibot"
	"gopkg.in/yaml.v3"
)

//go:embed doctors.yaml
var embeddedDoctors []byte

// Ensure SeedSource implements medibot.SeedSource at compile time.
var _ medibot.SeedSource = (*SeedSource)(nil)

// SeedSource reads doctor records from a YAML document.
type SeedSource struct {
	path string
}

// NewSeedSource creates a SeedSource reading from path.
// An empty path selects the built-in directory.
func NewSeedSource(path string) *SeedSource {
	return &SeedSource{path: path}
}

// seedFile is the on-disk layout of a seed document.
type seedFile struct {
	Doctors []seedDoctor `yaml:"doctors"`
}

type seedDoctor struct {
	IdentityNumber   string `yaml:"identity_number"`
	Name             string `yaml:"name"`
	Symptoms         string `yaml:"symptoms"`
	Specialization   string `yaml:"specialization"`
	Contact          string `yaml:"contact"`
	Email            string `yaml:"email"`
	HospitalName     string `yaml:"hospital_name"`
	HospitalLocation string `yaml:"hospital_location"`
}

// LoadDoctors returns the seed records in document order.
func (s *SeedSource) LoadDoctors() ([]*medibot.Doctor, error) {
	data := embeddedDoctors
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}
	return Decode(data)
}

// Decode parses a seed document.
func Decode(data []byte) ([]*medibot.Doctor, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, medibot.Errorf(medibot.EINVALID, "invalid seed document: %s", err)
	}

	doctors := make([]*medibot.Doctor, 0, len(f.Doctors))
	for _, d := range f.Doctors {
		doctors = append(doctors, &medibot.Doctor{
			IdentityNumber:   d.IdentityNumber,
			Name:             d.Name,
			Symptoms:         d.Symptoms,
			Specialization:   d.Specialization,
			Contact:          d.Contact,
			Email:            d.Email,
			HospitalName:     d.HospitalName,
			HospitalLocation: d.HospitalLocation,
		})
	}
	return doctors, nil
}
