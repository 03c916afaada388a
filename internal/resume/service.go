package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"placement-backend/internal/shared/storage/kv"
	"placement-backend/internal/shared/telemetry"
)

const maxColorLength = 64

// Service reads and writes one caller's resume builder state in a kv.Store.
type Service struct {
	Store kv.Store
	NewID func() string

	mu sync.Mutex
}

// NewService constructs a Service.
func NewService(store kv.Store) *Service {
	return &Service{Store: store, NewID: uuid.NewString}
}

// Get returns the stored resume, or the defaults when none is stored.
func (s *Service) Get(ctx context.Context, owner string) (Data, error) {
	raw, err := s.Store.Get(ctx, owner, DataKey)
	if errors.Is(err, kv.ErrNotFound) {
		return DefaultData(), nil
	}
	if err != nil {
		return Data{}, err
	}
	return Decode(raw), nil
}

// Replace stores body as the whole resume. Sections missing from body take
// their defaults.
func (s *Service) Replace(ctx context.Context, owner string, body []byte) (View, error) {
	sections, err := parseDocument(body)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, owner, mergeSections(DefaultData(), sections))
}

// Patch overlays the top-level sections present in body onto the stored resume.
func (s *Service) Patch(ctx context.Context, owner string, body []byte) (View, error) {
	sections, err := parseDocument(body)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Get(ctx, owner)
	if err != nil {
		return View{}, err
	}
	return s.save(ctx, owner, mergeSections(current, sections))
}

// LoadSample replaces the resume with the sample data.
func (s *Service) LoadSample(ctx context.Context, owner string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, owner, SampleData())
}

// Score returns the ATS score of the stored resume.
func (s *Service) Score(ctx context.Context, owner string) (ScoreBreakdown, error) {
	d, err := s.Get(ctx, owner)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	return Score(d), nil
}

func (s *Service) save(ctx context.Context, owner string, d Data) (View, error) {
	d = s.assignIDs(normalizeData(d))
	blob, err := json.Marshal(d)
	if err != nil {
		return View{}, fmt.Errorf("encode resume: %w", err)
	}
	if err := s.Store.Set(ctx, owner, DataKey, string(blob)); err != nil {
		return View{}, err
	}
	score := Score(d)
	telemetry.Info("resume.saved", map[string]any{"score": score.Score, "projects": len(d.Projects)})
	return View{Data: d, Score: score}, nil
}

func (s *Service) assignIDs(d Data) Data {
	for i := range d.Education {
		if d.Education[i].ID == "" {
			d.Education[i].ID = s.NewID()
		}
	}
	for i := range d.Experience {
		if d.Experience[i].ID == "" {
			d.Experience[i].ID = s.NewID()
		}
	}
	for i := range d.Projects {
		if d.Projects[i].ID == "" {
			d.Projects[i].ID = s.NewID()
		}
	}
	return d
}

// Template returns the stored layout, or DefaultTemplate.
func (s *Service) Template(ctx context.Context, owner string) (Template, error) {
	raw, err := s.Store.Get(ctx, owner, TemplateKey)
	if errors.Is(err, kv.ErrNotFound) {
		return DefaultTemplate, nil
	}
	if err != nil {
		return "", err
	}
	t := Template(strings.TrimSpace(raw))
	if !t.Valid() {
		return DefaultTemplate, nil
	}
	return t, nil
}

func (s *Service) SetTemplate(ctx context.Context, owner string, t Template) (Template, error) {
	t = Template(strings.ToLower(strings.TrimSpace(string(t))))
	if !t.Valid() {
		return "", fmt.Errorf("%w: template must be classic, modern or minimal", ErrInvalidInput)
	}
	if err := s.Store.Set(ctx, owner, TemplateKey, string(t)); err != nil {
		return "", err
	}
	return t, nil
}

// Color returns the stored accent color, or DefaultColor.
func (s *Service) Color(ctx context.Context, owner string) (string, error) {
	raw, err := s.Store.Get(ctx, owner, ColorKey)
	if errors.Is(err, kv.ErrNotFound) {
		return DefaultColor, nil
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return DefaultColor, nil
	}
	return raw, nil
}

func (s *Service) SetColor(ctx context.Context, owner, color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" || len(color) > maxColorLength {
		return "", fmt.Errorf("%w: color must be 1-%d characters", ErrInvalidInput, maxColorLength)
	}
	if err := s.Store.Set(ctx, owner, ColorKey, color); err != nil {
		return "", err
	}
	return color, nil
}

// Submission returns the stored submission links. Missing or unreadable data
// reads as empty links.
func (s *Service) Submission(ctx context.Context, owner string) (SubmissionView, error) {
	sub, err := s.loadSubmission(ctx, owner)
	if err != nil {
		return SubmissionView{}, err
	}
	return SubmissionView{Submission: sub, IsShipped: sub.IsShipped()}, nil
}

// SubmissionPatch carries the links to change; nil fields are kept.
type SubmissionPatch struct {
	LovableLink *string `json:"lovableLink"`
	GitHubLink  *string `json:"githubLink"`
	DeployedURL *string `json:"deployedUrl"`
}

func (s *Service) PatchSubmission(ctx context.Context, owner string, p SubmissionPatch) (SubmissionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, err := s.loadSubmission(ctx, owner)
	if err != nil {
		return SubmissionView{}, err
	}
	if p.LovableLink != nil {
		sub.LovableLink = strings.TrimSpace(*p.LovableLink)
	}
	if p.GitHubLink != nil {
		sub.GitHubLink = strings.TrimSpace(*p.GitHubLink)
	}
	if p.DeployedURL != nil {
		sub.DeployedURL = strings.TrimSpace(*p.DeployedURL)
	}
	blob, err := json.Marshal(sub)
	if err != nil {
		return SubmissionView{}, fmt.Errorf("encode submission: %w", err)
	}
	if err := s.Store.Set(ctx, owner, SubmissionKey, string(blob)); err != nil {
		return SubmissionView{}, err
	}
	shipped := sub.IsShipped()
	telemetry.Info("resume.submission_saved", map[string]any{"shipped": shipped})
	return SubmissionView{Submission: sub, IsShipped: shipped}, nil
}

func (s *Service) loadSubmission(ctx context.Context, owner string) (Submission, error) {
	raw, err := s.Store.Get(ctx, owner, SubmissionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return Submission{}, nil
	}
	if err != nil {
		return Submission{}, err
	}
	var sub Submission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		telemetry.Warn("resume.submission_decode_failed", map[string]any{"err": err})
		return Submission{}, nil
	}
	return sub, nil
}

// parseDocument validates a JSON resume body and splits it into sections.
func parseDocument(body []byte) (map[string]json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidInput)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return sections, nil
}
