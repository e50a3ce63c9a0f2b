package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/medibot"
)

// Page modes, one per chatbot on the page.
const (
	ModeRecommend = "recommend"
	ModeAsk       = "ask"
	ModeBrowse    = "browse"
)

// pageForm is the form posted by the page.
type pageForm struct {
	Mode  string `validate:"required,oneof=recommend ask browse"`
	Input string
	// Transcript is the JSON-encoded conversation so far, carried in a
	// hidden field so the page round-trips it on every submit.
	Transcript string
}

// pageData is the template context for index.html.
type pageData struct {
	Mode            string
	Input           string
	Error           string
	Specializations []string
	Matches         []*medibot.SymptomMatch
	Listings        []*medibot.SpecialistListing
	Summary         string
	Answer          string
	Submitted       bool
	Transcript      medibot.Transcript
	TranscriptJSON  string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form := pageForm{Mode: r.FormValue("mode")}
	if form.Mode == "" {
		form.Mode = ModeRecommend
	}
	if err := s.validate.Struct(form); err != nil {
		http.Error(w, "unknown mode", http.StatusBadRequest)
		return
	}

	data := pageData{Mode: form.Mode}

	if r.Method == http.MethodPost {
		form.Input = r.PostFormValue("input")
		form.Transcript = r.PostFormValue("transcript")

		var tr medibot.Transcript
		if form.Transcript != "" {
			var turns []turnDTO
			if err := json.Unmarshal([]byte(form.Transcript), &turns); err != nil {
				http.Error(w, "invalid transcript", http.StatusBadRequest)
				return
			}
			for i := range turns {
				if err := s.validate.Struct(&turns[i]); err != nil {
					http.Error(w, "invalid transcript", http.StatusBadRequest)
					return
				}
			}
			tr = toTranscript(turns)
		}

		data.Input = form.Input
		data.Submitted = true
		data.Transcript = tr
		s.submit(r, &data)
	}

	if data.Mode == ModeBrowse {
		labels, err := s.Bot.Specializations(ctx)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		data.Specializations = labels
	}

	if data.Transcript == nil {
		data.Transcript = medibot.Transcript{}
	}
	b, err := json.Marshal(data.Transcript)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	data.TranscriptJSON = string(b)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.Logger.Error("render page", "err", err)
	}
}

// submit runs the action for the posted mode and records the outcome in data.
// User-facing failures become data.Error; the page still renders.
func (s *Server) submit(r *http.Request, data *pageData) {
	ctx := r.Context()

	switch data.Mode {
	case ModeRecommend:
		rec, tr, err := s.Bot.Recommend(ctx, data.Transcript, data.Input)
		if err != nil {
			data.Error = s.pageError(r, err)
			return
		}
		data.Matches, data.Summary, data.Transcript = rec.Doctors, rec.Summary, tr

	case ModeAsk:
		answer, tr, err := s.Bot.Answer(ctx, data.Transcript, data.Input)
		if err != nil {
			data.Error = s.pageError(r, err)
			return
		}
		data.Answer, data.Transcript = answer, tr

	case ModeBrowse:
		listings, err := s.Bot.Browse(ctx, data.Input)
		if err != nil {
			data.Error = s.pageError(r, err)
			return
		}
		if len(listings) == 0 {
			data.Error = "No doctors found for specialization: " + data.Input + "."
			return
		}
		data.Listings = listings
	}
}

func (s *Server) pageError(r *http.Request, err error) string {
	switch medibot.ErrorCode(err) {
	case medibot.ENOTFOUND:
		return "Sorry, no matching doctors found in our database."
	case medibot.EINVALID:
		return medibot.ErrorMessage(err)
	}
	s.Logger.Error("page error",
		"id", r.Context().Value(requestIDKey{}),
		"err", err,
	)
	return "Something went wrong. Please try again."
}
