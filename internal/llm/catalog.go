package llm

import "fmt"

// EntrySpec is the declarative description of one catalog provider,
// as it appears in the config file.
type EntrySpec struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"` // "openai" (compatible endpoints included) or "anthropic"
	APIKey  string   `json:"api_key,omitempty"`
	BaseURL string   `json:"base_url,omitempty"`
	Models  []string `json:"models,omitempty"`
	Working bool     `json:"working"`
}

// Entry is one provider record in the catalog: a name, an operability
// flag, and a constructor. The catalog replaces runtime discovery with
// a static table, so the active set is fully deterministic.
type Entry struct {
	Name    string
	Working bool
	New     func() (Provider, error)
}

// Catalog is the ordered set of known providers. Order is significant:
// the registry preserves it when building the active list.
type Catalog []Entry

// BuildCatalog converts config entry specs into catalog entries.
// API keys must already be resolved (see security.KeyStore).
func BuildCatalog(specs []EntrySpec) Catalog {
	catalog := make(Catalog, 0, len(specs))
	for _, spec := range specs {
		catalog = append(catalog, Entry{
			Name:    spec.Name,
			Working: spec.Working,
			New:     constructor(spec),
		})
	}
	return catalog
}

func constructor(spec EntrySpec) func() (Provider, error) {
	switch spec.Kind {
	case "openai", "openrouter", "local":
		return func() (Provider, error) {
			return NewOpenAIProvider(OpenAIConfig{
				Name:    spec.Name,
				APIKey:  spec.APIKey,
				BaseURL: spec.BaseURL,
				Models:  spec.Models,
			}), nil
		}
	case "anthropic":
		return func() (Provider, error) {
			return NewAnthropicProvider(AnthropicConfig{
				Name:   spec.Name,
				APIKey: spec.APIKey,
				Models: spec.Models,
			}), nil
		}
	default:
		return func() (Provider, error) {
			return nil, fmt.Errorf("unknown provider kind: %s", spec.Kind)
		}
	}
}
