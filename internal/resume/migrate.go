package resume

import (
	"encoding/json"
	"strings"

	"placement-backend/internal/shared/telemetry"
)

// storedProject accepts techStack either as a list or as a comma separated
// string written by older clients.
type storedProject struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TechStack   json.RawMessage `json:"techStack"`
	Description string          `json:"description"`
	LiveURL     string          `json:"liveUrl"`
	GitHubURL   string          `json:"githubUrl"`
}

// Decode reads a stored resume. Missing sections come from DefaultData and
// unreadable input yields the defaults.
func Decode(raw string) Data {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &sections); err != nil || sections == nil {
		telemetry.Warn("resume.decode_failed", map[string]any{"err": errString(err)})
		return DefaultData()
	}
	return mergeSections(DefaultData(), sections)
}

// mergeSections overlays each present top-level section onto base. A section
// that fails to decode keeps the base value.
func mergeSections(base Data, sections map[string]json.RawMessage) Data {
	out := base
	for name, blob := range sections {
		if isNull(blob) {
			continue
		}
		var err error
		switch name {
		case "personal":
			var p Personal
			if err = json.Unmarshal(blob, &p); err == nil {
				out.Personal = p
			}
		case "summary":
			var s string
			if err = json.Unmarshal(blob, &s); err == nil {
				out.Summary = s
			}
		case "education":
			var items []Education
			if err = json.Unmarshal(blob, &items); err == nil {
				out.Education = items
			}
		case "experience":
			var items []Experience
			if err = json.Unmarshal(blob, &items); err == nil {
				out.Experience = items
			}
		case "projects":
			var items []storedProject
			if err = json.Unmarshal(blob, &items); err == nil {
				out.Projects = convertProjects(items)
			}
		case "skills":
			var groups []SkillGroup
			if err = json.Unmarshal(blob, &groups); err == nil {
				out.Skills = groups
			}
		}
		if err != nil {
			telemetry.Warn("resume.section_invalid", map[string]any{"section": name, "err": err})
		}
	}
	return normalizeData(out)
}

func convertProjects(items []storedProject) []Project {
	out := make([]Project, 0, len(items))
	for _, p := range items {
		out = append(out, Project{
			ID:          p.ID,
			Name:        p.Name,
			TechStack:   parseTechStack(p.TechStack),
			Description: p.Description,
			LiveURL:     p.LiveURL,
			GitHubURL:   p.GitHubURL,
		})
	}
	return out
}

func parseTechStack(raw json.RawMessage) []string {
	if isNull(raw) {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return splitCSV(s)
	}
	return []string{}
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeData fills nil lists so responses always carry arrays, and restores
// the default skill groups when none are present.
func normalizeData(d Data) Data {
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].TechStack == nil {
			d.Projects[i].TechStack = []string{}
		}
	}
	if len(d.Skills) == 0 {
		d.Skills = defaultSkills()
	}
	for i := range d.Skills {
		if d.Skills[i].Items == nil {
			d.Skills[i].Items = []string{}
		}
	}
	return d
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func errString(err error) string {
	if err == nil {
		return "not an object"
	}
	return err.Error()
}
