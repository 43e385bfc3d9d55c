package session

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/models"
)

// record is the persisted form of a session.
type record struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func encode(s *models.Session) ([]byte, error) {
	return json.Marshal(record{User: s.User, Token: s.Token, ExpiresAt: s.ExpiresAt.UTC()})
}

func decode(raw []byte) (*models.Session, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &CorruptError{Reason: "undecodable record", Err: err}
	}
	s := &models.Session{User: r.User, Token: r.Token, ExpiresAt: r.ExpiresAt}
	if reason := problem(s); reason != "" {
		return nil, &CorruptError{Reason: reason}
	}
	return s, nil
}

// problem returns why s is not a storable session, or "" when it is.
func problem(s *models.Session) string {
	switch {
	case s == nil:
		return "missing session"
	case s.Token == "":
		return "missing token"
	case s.User.Username == "":
		return "missing username"
	case s.ExpiresAt.IsZero():
		return "missing expiry"
	}
	return ""
}
