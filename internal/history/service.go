package history

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"placement-backend/internal/analysis"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
)

// Service implements analysis submission, history queries and skill
// confidence tracking on top of a Repo.
type Service struct {
	Repo  Repo
	Now   func() time.Time
	NewID func() string

	mu      sync.Mutex
	persist *debouncer
}

// NewService builds a Service whose confidence updates are written after the
// given debounce delay. A non-positive delay writes synchronously.
func NewService(repo Repo, debounce time.Duration) *Service {
	s := &Service{
		Repo:  repo,
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
	s.persist = newDebouncer(debounce, s.applyUpdate)
	return s
}

// Analyze validates the JD, runs the analysis and saves a new entry at the head
// of the owner's history.
func (s *Service) Analyze(ctx context.Context, owner string, in analysis.Input) (Entry, error) {
	jd := strings.TrimSpace(in.JDText)
	if jd == "" {
		metrics.IncAnalysesRejected()
		return Entry{}, fmt.Errorf("%w: jdText is required", ErrInvalidInput)
	}
	if len([]rune(jd)) < MinJDLength {
		metrics.IncAnalysesRejected()
		return Entry{}, fmt.Errorf("%w: need at least %d characters", ErrJDTooShort, MinJDLength)
	}

	company := strings.TrimSpace(in.Company)
	role := strings.TrimSpace(in.Role)
	result := analysis.Run(analysis.Input{JDText: jd, Company: company, Role: role})
	intel := result.CompanyIntel

	now := s.Now()
	entry := Entry{
		ID:                 s.NewID(),
		CreatedAt:          now,
		UpdatedAt:          now,
		Company:            company,
		Role:               role,
		JDText:             jd,
		ExtractedSkills:    result.ExtractedSkills,
		Plan7Days:          result.Plan,
		Checklist:          result.Checklist,
		RoundMapping:       result.RoundMapping,
		Questions:          result.Questions,
		BaseScore:          result.ReadinessScore,
		FinalScore:         result.ReadinessScore,
		SkillConfidenceMap: map[string]analysis.Confidence{},
		CompanyIntel:       &intel,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.Repo.Load(ctx, owner)
	if err != nil {
		return Entry{}, err
	}
	entries = append([]Entry{entry}, entries...)
	if err := s.Repo.Save(ctx, owner, entries); err != nil {
		return Entry{}, err
	}

	metrics.IncAnalysesCreated()
	telemetry.Info("history.analysis_saved", map[string]any{
		"entry_id":     entry.ID,
		"total_skills": result.TotalSkills,
		"base_score":   entry.BaseScore,
		"company_size": intel.Size,
	})
	return entry, nil
}

// Preview runs the analysis without saving it. Only an empty JD is rejected.
func (s *Service) Preview(in analysis.Input) (analysis.Result, error) {
	jd := strings.TrimSpace(in.JDText)
	if jd == "" {
		return analysis.Result{}, fmt.Errorf("%w: jdText is required", ErrInvalidInput)
	}
	return analysis.Run(analysis.Input{JDText: jd, Company: in.Company, Role: in.Role}), nil
}

// List returns the owner's entries, newest first, including unsaved
// confidence changes.
func (s *Service) List(ctx context.Context, owner string) ([]Entry, error) {
	entries, err := s.Repo.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		s.overlay(owner, &entries[i])
	}
	return entries, nil
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, owner, id string) (Entry, error) {
	entries, err := s.Repo.Load(ctx, owner)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			s.overlay(owner, &e)
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Latest returns the newest entry.
func (s *Service) Latest(ctx context.Context, owner string) (Entry, error) {
	entries, err := s.List(ctx, owner)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}

// Clear removes the owner's whole history and drops unsaved changes.
func (s *Service) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist.cancelOwner(owner)
	return s.Repo.Clear(ctx, owner)
}

// ToggleSkill flips one skill between practice and know. The live score is
// returned at once; the write is debounced.
func (s *Service) ToggleSkill(ctx context.Context, owner, id, skill string) (ToggleResult, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ToggleResult{}, fmt.Errorf("%w: skill is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.Get(ctx, owner, id)
	if err != nil {
		return ToggleResult{}, err
	}
	if !containsSkill(entry.ExtractedSkills, skill) {
		return ToggleResult{}, fmt.Errorf("%w: %q is not an extracted skill", ErrInvalidInput, skill)
	}

	confidence := copyConfidence(entry.SkillConfidenceMap)
	status := analysis.Toggle(confidence, skill)
	score := analysis.LiveScore(entry.BaseScore, confidence)
	if err := s.queue(ctx, pendingUpdate{owner: owner, id: id, confidence: confidence, finalScore: score}); err != nil {
		return ToggleResult{}, err
	}

	metrics.IncSkillToggles()
	return ToggleResult{Skill: skill, Status: status, LiveScore: score}, nil
}

// SetConfidence replaces the whole confidence map of an entry and returns the
// live score. Unknown statuses and skills the entry did not extract are
// rejected.
func (s *Service) SetConfidence(ctx context.Context, owner, id string, confidence map[string]analysis.Confidence) (int, error) {
	next := make(map[string]analysis.Confidence, len(confidence))
	for skill, status := range confidence {
		if !status.Valid() {
			return 0, fmt.Errorf("%w: status %q for %q", ErrInvalidInput, status, skill)
		}
		next[skill] = status
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.Get(ctx, owner, id)
	if err != nil {
		return 0, err
	}
	for skill := range next {
		if !containsSkill(entry.ExtractedSkills, skill) {
			return 0, fmt.Errorf("%w: %q is not an extracted skill", ErrInvalidInput, skill)
		}
	}
	score := analysis.LiveScore(entry.BaseScore, next)
	if err := s.queue(ctx, pendingUpdate{owner: owner, id: id, confidence: next, finalScore: score}); err != nil {
		return 0, err
	}
	return score, nil
}

// WeakSkills lists the first skills still marked for practice.
func (s *Service) WeakSkills(ctx context.Context, owner, id string) ([]string, error) {
	entry, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return analysis.WeakSkills(entry.ExtractedSkills, entry.SkillConfidenceMap, weakSkillLimit), nil
}

// Export renders an entry's plan as text and returns it with a file name.
func (s *Service) Export(ctx context.Context, owner, id string) (string, string, error) {
	entry, err := s.Get(ctx, owner, id)
	if err != nil {
		return "", "", err
	}
	return ExportFileName(entry), RenderPlan(entry), nil
}

// Flush writes every unsaved confidence change now.
func (s *Service) Flush(ctx context.Context) error {
	return s.persist.flush(ctx)
}

// Close flushes unsaved changes; later changes are written synchronously.
func (s *Service) Close(ctx context.Context) error {
	return s.persist.close(ctx)
}

func (s *Service) overlay(owner string, e *Entry) {
	if u, ok := s.persist.peek(owner, e.ID); ok {
		e.SkillConfidenceMap = u.confidence
		e.FinalScore = u.finalScore
	}
}

// queue hands u to the debouncer, or writes it at once when debouncing is off.
// Callers hold s.mu.
func (s *Service) queue(ctx context.Context, u pendingUpdate) error {
	if s.persist.schedule(u) {
		return nil
	}
	return s.applyLocked(ctx, u)
}

// applyUpdate persists one debounced update unless a newer one replaced it or
// the owner's history was cleared while it waited for s.mu.
func (s *Service) applyUpdate(ctx context.Context, u pendingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.persist.current(u) {
		return nil
	}
	return s.applyLocked(ctx, u)
}

// applyLocked writes u into the stored list. Entries removed in the meantime
// are ignored.
func (s *Service) applyLocked(ctx context.Context, u pendingUpdate) error {
	entries, err := s.Repo.Load(ctx, u.owner)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID != u.id {
			continue
		}
		entries[i].SkillConfidenceMap = u.confidence
		entries[i].FinalScore = u.finalScore
		entries[i].UpdatedAt = s.Now()
		return s.Repo.Save(ctx, u.owner, entries)
	}
	return nil
}

func containsSkill(skills analysis.Skills, skill string) bool {
	for _, s := range skills.All() {
		if s == skill {
			return true
		}
	}
	return false
}
