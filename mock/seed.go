package mock

import "github.com/fwojciec/medibot"

var _ medibot.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of medibot.SeedSource.
type SeedSource struct {
	LoadDoctorsFn func() ([]*medibot.Doctor, error)
}

func (s *SeedSource) LoadDoctors() ([]*medibot.Doctor, error) {
	return s.LoadDoctorsFn()
}
