package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"placement-backend/internal/analysis"
	"placement-backend/internal/shared/storage/kv"
	"placement-backend/internal/shared/telemetry"
)

// Repo loads and stores the full entry list of one owner.
type Repo interface {
	Load(ctx context.Context, owner string) ([]Entry, error)
	Save(ctx context.Context, owner string, entries []Entry) error
	Clear(ctx context.Context, owner string) error
}

// KVRepo keeps the list as one JSON array under StorageKey.
type KVRepo struct {
	Store kv.Store
}

// Load returns the stored entries. A missing or unreadable blob yields an empty
// list; entries missing required fields are skipped.
func (r *KVRepo) Load(ctx context.Context, owner string) ([]Entry, error) {
	raw, err := r.Store.Get(ctx, owner, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw), nil
}

func (r *KVRepo) Save(ctx context.Context, owner string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return r.Store.Set(ctx, owner, StorageKey, string(blob))
}

func (r *KVRepo) Clear(ctx context.Context, owner string) error {
	return r.Store.Delete(ctx, owner, StorageKey)
}

// shape mirrors the fields an entry must carry to be readable.
type shape struct {
	ID              any `json:"id"`
	ExtractedSkills *struct {
		CoreCS json.RawMessage `json:"coreCS"`
	} `json:"extractedSkills"`
	RoundMapping json.RawMessage `json:"roundMapping"`
}

func decodeEntries(raw string) []Entry {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		telemetry.Warn("history.decode_failed", map[string]any{"err": err})
		return []Entry{}
	}

	out := make([]Entry, 0, len(items))
	skipped := 0
	for _, item := range items {
		var s shape
		if err := json.Unmarshal(item, &s); err != nil || !s.valid() {
			skipped++
			continue
		}
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			skipped++
			continue
		}
		normalize(&e)
		out = append(out, e)
	}
	if skipped > 0 {
		telemetry.Warn("history.entries_skipped", map[string]any{"skipped": skipped})
	}
	return out
}

func (s shape) valid() bool {
	id, ok := s.ID.(string)
	if !ok || id == "" {
		return false
	}
	if s.ExtractedSkills == nil || !isArray(s.ExtractedSkills.CoreCS) {
		return false
	}
	return isArray(s.RoundMapping)
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// normalize fills lists older entries may lack.
func normalize(e *Entry) {
	s := &e.ExtractedSkills
	for _, list := range []*[]string{&s.CoreCS, &s.Languages, &s.Web, &s.Data, &s.Cloud, &s.Testing, &s.Other} {
		if *list == nil {
			*list = []string{}
		}
	}
	if e.SkillConfidenceMap == nil {
		e.SkillConfidenceMap = map[string]analysis.Confidence{}
	}
	for skill, status := range e.SkillConfidenceMap {
		if !status.Valid() {
			delete(e.SkillConfidenceMap, skill)
		}
	}
	if e.Plan7Days == nil {
		e.Plan7Days = []analysis.DayPlan{}
	}
	if e.Checklist == nil {
		e.Checklist = []analysis.ChecklistItem{}
	}
	if e.Questions == nil {
		e.Questions = []string{}
	}
	if e.FinalScore == 0 {
		e.FinalScore = e.BaseScore
	}
}
