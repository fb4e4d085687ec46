package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// NoteMaxLen bounds the stored redacted note.
const NoteMaxLen = 240

// SubmitCheckinRequest carries one check-in form submission into the
// service layer. Validation tags reject malformed input before any record
// is built; out-of-range scores are never clamped.
type SubmitCheckinRequest struct {
	Role         Role         `validate:"required,oneof=Hourly Salaried"`
	TenureBucket TenureBucket `validate:"required,oneof=<1y 1-3y 3y+"`
	TeamID       string       `validate:"required"`
	Q1           int          `validate:"min=1,max=5"`
	Q2           int          `validate:"min=1,max=5"`
	Q3           int          `validate:"min=1,max=5"`
	Q4           int          `validate:"min=1,max=5"`
	NoteText     string
}

// CheckinService hosts the submission workflow: redact, score, classify,
// build the record and append it to the store.
type CheckinService struct {
	store       CheckinStore
	now         func() time.Time
	idGenerator func() string
	validate    *validator.Validate
}

// NewCheckinService constructs a service bound to the provided persistence
// interface.
func NewCheckinService(store CheckinStore) *CheckinService {
	return &CheckinService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: defaultPseudoID,
		validate:    validator.New(),
	}
}

// defaultPseudoID samples a throwaway pseudonym. It is regenerated per
// submission and never checked for collisions; it is not a primary key.
func defaultPseudoID() string {
	return fmt.Sprintf("user_%d", 1000+rand.Intn(9000))
}

// Submit validates the request, runs the note through the redaction and
// sentiment pipeline, derives the burnout flag and appends the finished
// record. The returned record is what was persisted.
func (s *CheckinService) Submit(req SubmitCheckinRequest) (*Checkin, error) {
	if s.store == nil {
		return nil, errors.New("checkin service store is nil")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, NewInvalidError(validationMessage(err))
	}

	redacted := Redact(req.NoteText)
	sentiment := SentimentScore(redacted)
	scores := []int{req.Q1, req.Q2, req.Q3, req.Q4}
	flag := BurnoutFlag(scores, sentiment)

	rec := &Checkin{
		Date:             s.now().Format("2006-01-02"),
		PseudoID:         s.idGenerator(),
		Role:             req.Role,
		TenureBucket:     req.TenureBucket,
		TeamID:           req.TeamID,
		Q1:               req.Q1,
		Q2:               req.Q2,
		Q3:               req.Q3,
		Q4:               req.Q4,
		NoteText:         req.NoteText,
		NoteTextRedacted: truncateRunes(redacted, NoteMaxLen),
		SentimentScore:   sentiment,
		BurnoutFlag:      flag,
	}
	if err := s.store.Append(rec); err != nil {
		return nil, NewUnavailableError("store check-in: " + err.Error())
	}
	return rec, nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "oneof":
			parts = append(parts, field+" must be one of "+fe.Param())
		case "min":
			parts = append(parts, field+" must be at least "+fe.Param())
		case "max":
			parts = append(parts, field+" must be at most "+fe.Param())
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, ", ")
}
