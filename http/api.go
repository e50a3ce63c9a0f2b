package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/medibot"
	"github.com/gorilla/mux"
)

// turnDTO is a transcript turn as sent by clients.
type turnDTO struct {
	Role string `json:"role" validate:"required,oneof=You Bot"`
	Text string `json:"text"`
}

type recommendRequest struct {
	Symptoms   string    `json:"symptoms" validate:"required"`
	Transcript []turnDTO `json:"transcript" validate:"dive"`
}

type recommendResponse struct {
	Doctors    []*medibot.SymptomMatch `json:"doctors"`
	Summary    string                  `json:"summary"`
	Included   int                     `json:"included"`
	Transcript medibot.Transcript      `json:"transcript"`
}

type askRequest struct {
	Question   string    `json:"question" validate:"required"`
	Transcript []turnDTO `json:"transcript" validate:"dive"`
}

type askResponse struct {
	Answer     string             `json:"answer"`
	Transcript medibot.Transcript `json:"transcript"`
}

func toTranscript(turns []turnDTO) medibot.Transcript {
	tr := make(medibot.Transcript, 0, len(turns))
	for _, t := range turns {
		tr = append(tr, medibot.Turn{Role: medibot.Role(t.Role), Text: t.Text})
	}
	return tr
}

// decodeJSON reads a JSON body into v and validates it.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return medibot.Errorf(medibot.EINVALID, "invalid JSON body")
	}
	if err := s.validate.Struct(v); err != nil {
		return medibot.Errorf(medibot.EINVALID, "%s", err)
	}
	return nil
}

func (s *Server) handleListSpecializations(w http.ResponseWriter, r *http.Request) {
	labels, err := s.Bot.Specializations(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	listings, err := s.Bot.Browse(r.Context(), mux.Vars(r)["label"])
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// handleFindBySymptom exposes the raw directory lookup. An absent or empty
// symptom matches every doctor.
func (s *Server) handleFindBySymptom(w http.ResponseWriter, r *http.Request) {
	matches, err := s.Bot.Directory.FindBySymptom(r.Context(), r.URL.Query().Get("symptom"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	rec, tr, err := s.Bot.Recommend(r.Context(), toTranscript(req.Transcript), req.Symptoms)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		Doctors:    rec.Doctors,
		Summary:    rec.Summary,
		Included:   rec.Included,
		Transcript: tr,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	answer, tr, err := s.Bot.Answer(r.Context(), toTranscript(req.Transcript), req.Question)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer, Transcript: tr})
}
