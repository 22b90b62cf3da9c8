package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pathwise/pathwise"
	"github.com/pathwise/pathwise/pkg/domain"
)

// open returns the live wrapper for a session id, creating it on first use.
func (s *Server) open(ctx context.Context, id string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if live, ok := s.sessions[id]; ok {
		return live, nil
	}
	session, err := s.engine.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	live := &liveSession{session: session}
	s.sessions[id] = live
	return live, nil
}

// lookup resolves the session from the URL. Unknown ids are 404: sessions
// must be created explicitly so ids stay client-controlled only at creation.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*liveSession, bool) {
	id := chi.URLParam(r, "sessionID")

	s.mu.Lock()
	live, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return live, true
}

type choiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type nodeView struct {
	ID      string `json:"id"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

type sessionView struct {
	SessionID     string                         `json:"session_id"`
	Node          nodeView                       `json:"node"`
	Choices       []choiceView                   `json:"choices"`
	Flags         []string                       `json:"flags,omitempty"`
	Knowledge     []string                       `json:"knowledge,omitempty"`
	Relationships map[string]domain.Relationship `json:"relationships,omitempty"`
	ChoicesMade   int                            `json:"choices_made"`
}

type applyChoiceView struct {
	sessionView
	FellBack           bool                        `json:"fell_back"`
	Demonstrations     []domain.SkillDemonstration `json:"demonstrations"`
	PersistenceWarning string                      `json:"persistence_warning,omitempty"`
}

func (s *Server) sessionView(session *pathwise.Session) (sessionView, error) {
	node, err := session.Current()
	if err != nil {
		return sessionView{}, err
	}
	choices, err := session.Available()
	if err != nil {
		return sessionView{}, err
	}

	state := session.State()
	view := sessionView{
		SessionID:     session.ID,
		Node:          nodeView{ID: node.ID, Speaker: node.Speaker},
		Choices:       make([]choiceView, 0, len(choices)),
		Flags:         state.Flags.Values(),
		Knowledge:     state.Knowledge.Values(),
		Relationships: state.Relationships,
		ChoicesMade:   len(state.History),
	}
	if len(node.Variants) > 0 {
		view.Node.Text = node.Variants[0].Text
	}
	for _, c := range choices {
		view.Choices = append(view.Choices, choiceView{ID: c.ID, Text: c.Text})
	}
	return view, nil
}

func (s *Server) applyView(session *pathwise.Session, result *pathwise.ApplyResult) (applyChoiceView, error) {
	base, err := s.sessionView(session)
	if err != nil {
		return applyChoiceView{}, err
	}
	view := applyChoiceView{
		sessionView:    base,
		FellBack:       result.FellBack,
		Demonstrations: result.Demonstrations,
	}
	if view.Demonstrations == nil {
		view.Demonstrations = []domain.SkillDemonstration{}
	}
	if result.PersistenceWarning != nil {
		view.PersistenceWarning = result.PersistenceWarning.Error()
	}
	return view, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
