package pendency

import "strings"

const situationMessagePrefix = "Situação:"

// DefaultFallbackSituation seeds records whose situation cannot be inferred
// from history during normalization.
const DefaultFallbackSituation = "Novo contato"

// Normalize rewrites one record into the canonical shape: missing situation
// inferred from history, operational status re-derived from the containing
// folder, legacy history entries converted to the status_anterior/status_novo
// pair, and blank history fields backfilled. It reports whether anything
// changed so callers only rewrite files that need it; running it twice in a
// row never reports a change on the second pass.
func (p *Pendency) Normalize(folder string) bool {
	changed := false

	if strings.TrimSpace(p.Situation) == "" {
		inferred := p.inferSituationFromHistory()
		if inferred == "" {
			inferred = DefaultFallbackSituation
		}
		p.Situation = inferred
		changed = true
	}

	if status, ok := StatusForFolder(folder); ok && p.Status != status {
		p.Status = status
		changed = true
	}

	for i := range p.History {
		if p.normalizeEntry(&p.History[i]) {
			changed = true
		}
	}

	if p.LegacyUser != "" && strings.TrimSpace(p.User) == "" {
		p.User = p.LegacyUser
		p.LegacyUser = ""
		changed = true
	}

	return changed
}

func (p *Pendency) inferSituationFromHistory() string {
	for i := len(p.History) - 1; i >= 0; i-- {
		text := strings.TrimSpace(p.History[i].NewStatus)
		if !strings.HasPrefix(text, situationMessagePrefix) {
			continue
		}
		if idx := strings.LastIndex(text, "→"); idx >= 0 {
			part := text[idx+len("→"):]
			if open := strings.Index(part, "("); open >= 0 {
				part = part[:open]
			}
			if value := strings.TrimSpace(part); value != "" {
				return value
			}
		}
	}
	return ""
}

func (p *Pendency) normalizeEntry(entry *HistoryEntry) bool {
	changed := false

	// Old descriptive messages "Situação: A → B (User)" become the pair.
	text := strings.TrimSpace(entry.NewStatus)
	if strings.HasPrefix(text, situationMessagePrefix) && strings.Contains(text, "→") {
		body := strings.TrimSpace(strings.TrimPrefix(text, situationMessagePrefix))
		parts := strings.SplitN(body, "→", 2)
		if len(parts) == 2 {
			previous := strings.TrimSpace(parts[0])
			next := parts[1]
			if open := strings.Index(next, "("); open >= 0 {
				next = next[:open]
			}
			entry.PreviousStatus = previous
			entry.NewStatus = strings.TrimSpace(next)
			changed = true
		}
	}

	// Entries written with the pre-canonical situation keys.
	if entry.LegacyPreviousSituation != "" || entry.LegacyNewSituation != "" {
		entry.PreviousStatus = entry.LegacyPreviousSituation
		if entry.LegacyPreviousSituation == "" && entry.LegacyNewSituation == "" {
			entry.NewStatus = "Situação atualizada"
		} else {
			entry.NewStatus = entry.LegacyNewSituation
		}
		entry.LegacyKind = ""
		entry.LegacyPreviousSituation = ""
		entry.LegacyNewSituation = ""
		entry.LegacyObservation = ""
		changed = true
	}

	if strings.TrimSpace(entry.NewStatus) == "" {
		entry.NewStatus = "Situação atualizada (" + p.historyFallbackUser(entry) + ")"
		changed = true
	}

	if strings.TrimSpace(entry.User) == "" {
		entry.User = p.historyFallbackUser(entry)
		changed = true
	}

	return changed
}

func (p *Pendency) historyFallbackUser(entry *HistoryEntry) string {
	if user := strings.TrimSpace(entry.User); user != "" {
		return user
	}
	if modifier := strings.TrimSpace(p.Metadata.ModifiedBy); modifier != "" {
		return modifier
	}
	if user := strings.TrimSpace(p.ResponsibleUser()); user != "" {
		return user
	}
	return "Sistema"
}
