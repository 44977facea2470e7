// Package leaderboard implements the shared top-ten board: the merge rules
// for entries, a local board backed by the key/value store, an HTTP client
// and server for the remote board, and the score reporter used by the game.
package leaderboard

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// MaxEntries is the number of entries a normalized board keeps.
	MaxEntries = 10
	// MaxNameLen is the maximum player name length in runes.
	MaxNameLen = 24
	// DefaultPlayer is used when a score is reported without a name.
	DefaultPlayer = "Player"
)

// Entry is one leaderboard row. At is the first time the player's entry was
// created, in unix milliseconds.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	At    int64  `json:"at"`
}

// SanitizeName trims the name, collapses whitespace runs to a single space
// and cuts it to MaxNameLen runes.
func SanitizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = string([]rune(name)[:MaxNameLen])
	}
	return strings.TrimSpace(name)
}

// Key returns the case-insensitive identity of a player name.
func Key(name string) string {
	return strings.ToLower(SanitizeName(name))
}

// Normalize sanitizes entries, keeps the best entry per player, sorts by
// score and keeps the top MaxEntries. The result never aliases the input
// and is never nil.
func Normalize(entries []Entry) []Entry {
	best := make(map[string]Entry, len(entries))
	for _, raw := range entries {
		name := SanitizeName(raw.Name)
		if name == "" || raw.Score <= 0 {
			continue
		}
		e := Entry{Name: name, Score: raw.Score, At: raw.At}
		key := strings.ToLower(name)
		if prev, ok := best[key]; !ok || beats(e, prev) {
			best[key] = e
		}
	}

	out := make([]Entry, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.At, b.At); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// beats reports whether a should replace b for the same player.
func beats(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.At != b.At {
		return a.At < b.At
	}
	return a.Name < b.Name
}

func indexOf(list []Entry, key string) int {
	return slices.IndexFunc(list, func(e Entry) bool { return Key(e.Name) == key })
}

// Upsert records score for name. An existing player keeps the higher of the
// two scores, takes the new spelling of the name and keeps its timestamp.
// Empty names and non-positive scores leave the board unchanged.
func Upsert(entries []Entry, name string, score int, now int64) []Entry {
	clean := SanitizeName(name)
	list := Normalize(entries)
	if clean == "" || score <= 0 {
		return list
	}

	if idx := indexOf(list, strings.ToLower(clean)); idx >= 0 {
		list[idx].Score = max(list[idx].Score, score)
		list[idx].Name = clean
		if list[idx].At == 0 {
			list[idx].At = now
		}
	} else {
		list = append(list, Entry{Name: clean, Score: score, At: now})
	}
	return Normalize(list)
}

// Rename moves oldName's entry to newName. When both players are on the
// board the entries merge under newName with the higher score.
func Rename(entries []Entry, oldName, newName string) []Entry {
	oldKey, newKey := Key(oldName), Key(newName)
	clean := SanitizeName(newName)
	list := Normalize(entries)
	if oldKey == "" || newKey == "" {
		return list
	}

	if oldKey == newKey {
		if idx := indexOf(list, newKey); idx >= 0 {
			list[idx].Name = clean
		}
		return Normalize(list)
	}

	oldIdx, newIdx := indexOf(list, oldKey), indexOf(list, newKey)
	switch {
	case oldIdx >= 0 && newIdx >= 0:
		list[newIdx].Score = max(list[newIdx].Score, list[oldIdx].Score)
		list[newIdx].Name = clean
		list = slices.Delete(list, oldIdx, oldIdx+1)
	case oldIdx >= 0:
		list[oldIdx].Name = clean
	}
	return Normalize(list)
}
