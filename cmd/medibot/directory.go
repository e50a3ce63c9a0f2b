package main

import (
	"fmt"

	"github.com/fwojciec/medibot"
)

// noMatches is shown whenever a symptom search comes back empty.
const noMatches = "Sorry, no matching doctors found in our database."

// Run executes the init command. The directory has already been reseeded
// by the time any command runs, so this only reports the result.
func (c *InitCmd) Run(deps *Dependencies) error {
	n, err := deps.Directory.CountDoctors(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medibot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Loaded %d doctors into %s\n", n, deps.DBPath)
	return nil
}

// Run executes the symptoms command.
func (c *SymptomsCmd) Run(deps *Dependencies) error {
	matches, err := deps.Directory.FindBySymptom(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medibot.ErrorMessage(err))
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintln(deps.Stdout, noMatches)
		return nil
	}

	fmt.Fprintln(deps.Stdout, medibot.FormatSymptomMatches(matches))
	return nil
}

// Run executes the specializations command.
func (c *SpecializationsCmd) Run(deps *Dependencies) error {
	labels, err := deps.Bot.Specializations(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medibot.ErrorMessage(err))
		return err
	}

	for _, label := range labels {
		fmt.Fprintln(deps.Stdout, label)
	}
	return nil
}

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	listings, err := deps.Bot.Browse(deps.Ctx, c.Specialization)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medibot.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintf(deps.Stdout, "No doctors found for specialization: %s. Use 'medibot specializations' to see available labels.\n", c.Specialization)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Doctors specializing in %s:\n\n", c.Specialization)
	fmt.Fprintln(deps.Stdout, medibot.FormatSpecialistListings(listings))
	return nil
}
