package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// aliases maps normalised labels to agent kinds, in English and Spanish.
var aliases = map[string]Kind{
	"air":               KindAir,
	"aire":              KindAir,
	"steam":             KindSteam,
	"vapor":             KindSteam,
	"oxygen":            KindOxygen,
	"o2":                KindOxygen,
	"oxigeno":           KindOxygen,
	"oxígeno":           KindOxygen,
	"air_steam":         KindAirSteam,
	"air+steam":         KindAirSteam,
	"air/steam":         KindAirSteam,
	"mezcla aire/vapor": KindAirSteam,
	"mezcla_aire_vapor": KindAirSteam,
}

func normalise(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	return strings.Join(strings.Fields(s), " ")
}

// Parse converts a user label into a Kind.
func Parse(label string) (Kind, error) {
	if k, ok := aliases[normalise(label)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("agent: unknown gasifying agent %q", label)
}

// Suggest returns the known labels closest to an unrecognised one, best
// match first.
func Suggest(label string) []string {
	token := normalise(label)
	type scored struct {
		val  string
		dist int
	}
	var results []scored
	for alias := range aliases {
		dist := levenshtein.ComputeDistance(token, alias)
		if dist > distanceLimit(len(alias)) {
			continue
		}
		results = append(results, scored{alias, dist})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.val)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
