package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/medibot"
	main "github.com/fwojciec/medibot/cmd/medibot"
	"github.com/fwojciec/medibot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMain returns a Main backed by a temporary database.
func newMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "medibot.db")
	return m
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, strings.NewReader(""), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newMain(t), "--help")

	require.NoError(t, err)
	for _, cmd := range []string{"init", "symptoms", "recommend", "ask", "specializations", "browse", "chat", "serve"} {
		assert.Contains(t, stdout, cmd)
	}
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, newMain(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Init(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	stdout, _, err := run(t, m, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Loaded 106 doctors")

	// Reseeding on every start never accumulates rows.
	stdout, _, err = run(t, m, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Loaded 106 doctors")
}

func TestMain_CustomSeed(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	m.Seed = &mock.SeedSource{
		LoadDoctorsFn: func() ([]*medibot.Doctor, error) {
			return []*medibot.Doctor{
				{IdentityNumber: "1001", Name: "Dr. A", Symptoms: "cough, fever", Specialization: "Pediatrician", HospitalName: "City Hospital"},
				{IdentityNumber: "1002", Name: "Dr. B", Symptoms: "skin rashes", Specialization: "Dermatologist", HospitalName: "Skin Clinic"},
			}, nil
		},
	}

	stdout, _, err := run(t, m, "symptoms", "fever")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dr. A")
	assert.NotContains(t, stdout, "Dr. B")

	stdout, _, err = run(t, m, "browse", "Dermatologist")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dr. B")

	stdout, _, err = run(t, m, "symptoms", "xyz")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sorry, no matching doctors found in our database.")
}

func TestMain_InvalidSeed(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	m.Seed = &mock.SeedSource{
		LoadDoctorsFn: func() ([]*medibot.Doctor, error) {
			return []*medibot.Doctor{{IdentityNumber: "1001"}}, nil
		},
	}

	_, stderr, err := run(t, m, "init")

	require.Error(t, err)
	assert.Equal(t, medibot.EINVALID, medibot.ErrorCode(err))
	assert.Contains(t, stderr, "error:")
}

func TestMain_Specializations(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newMain(t), "specializations")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 24)
	assert.Equal(t, "Anesthesiologist", lines[0])
	assert.Contains(t, lines, "Plastic Surgeon")
}

func TestMain_Recommend(t *testing.T) {
	t.Parallel()

	var prompt string
	m := newMain(t)
	m.Asker = &mock.Asker{
		AskFn: func(_ context.Context, _ medibot.Transcript, p string) (string, error) {
			prompt = p
			return "These pediatricians can help.", nil
		},
	}

	stdout, _, err := run(t, m, "--llm-rps=0", "recommend", "ear infections")

	require.NoError(t, err)
	assert.Contains(t, stdout, "These pediatricians can help.")
	assert.True(t, strings.HasPrefix(prompt, "You are a doctor recommendation chatbot. Based on the input 'ear infections'"))
}

func TestMain_InvalidDBPath(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "missing", "dir", "medibot.db")

	_, stderr, err := run(t, m, "init")

	require.Error(t, err)
	assert.Contains(t, stderr, "MEDIBOT_DB")
}
