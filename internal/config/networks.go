package config

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// NetworkNames returns the configured network names in sorted order
func NetworkNames(networks map[string]*config.Network) []string {
	names := lo.Keys(networks)
	sort.Strings(names)
	return names
}

// ResolveNetwork looks a network up by name
func ResolveNetwork(networks map[string]*config.Network, name string) (*config.Network, error) {
	if network, ok := networks[name]; ok {
		return network, nil
	}

	return nil, domain.UnknownNameError{
		Kind:        "network",
		Name:        name,
		Suggestions: Suggest(name, NetworkNames(networks)),
		Err:         fmt.Errorf("%w: %s", domain.ErrUnknownNetwork, name),
	}
}

// Suggest returns the candidates that fuzzy-match name, best first
func Suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		// Fall back to matching the other way round, which catches typos
		// where name has extra characters.
		for _, candidate := range candidates {
			if len(fuzzy.Find(candidate, []string{name})) > 0 {
				matches = append(matches, fuzzy.Match{Str: candidate})
			}
		}
	}

	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
