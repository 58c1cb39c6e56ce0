package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options maps an option name to its configured value.
type Options map[string]any

// Gateways is the gateway options file: the redirect URLs and, per gateway
// short name, the options applied to the driver.
type Gateways struct {
	URLs     map[string]string
	Gateways map[string]Options
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadGateways reads and parses the gateway options file at path.
func LoadGateways(path string) (*Gateways, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway config %s: %w", path, err)
	}
	return ParseGateways(raw)
}

// ParseGateways parses a gateway options document. Top-level keys ending in
// _url are kept as URLs, ${NAME} references in string values are replaced
// with the environment, and a gateway whose entry is null is left out.
func ParseGateways(data []byte) (*Gateways, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse gateway config: %w", err)
	}
	g := &Gateways{URLs: map[string]string{}, Gateways: map[string]Options{}}
	for key, value := range doc {
		switch {
		case key == "gateways":
			if value == nil {
				continue
			}
			entries, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("gateway config: gateways must be a mapping, got %T", value)
			}
			for name, opts := range entries {
				if opts == nil {
					continue
				}
				m, ok := opts.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("gateway config: options of %s must be a mapping, got %T", name, opts)
				}
				g.Gateways[name] = Options(expand(m).(map[string]any))
			}
		case strings.HasSuffix(key, "_url"):
			if value == nil {
				continue
			}
			s, ok := expand(value).(string)
			if !ok {
				return nil, fmt.Errorf("gateway config: %s must be a string, got %T", key, value)
			}
			g.URLs[key] = s
		}
	}
	return g, nil
}

// URL returns the {kind}_url entry, falling back to fail_url.
func (g *Gateways) URL(kind string) string {
	if u, ok := g.URLs[kind+"_url"]; ok {
		return u
	}
	return g.URLs["fail_url"]
}

// Clone returns a deep copy safe to mutate.
func (g *Gateways) Clone() *Gateways {
	out := &Gateways{URLs: map[string]string{}, Gateways: map[string]Options{}}
	if g == nil {
		return out
	}
	for k, v := range g.URLs {
		out.URLs[k] = v
	}
	for name, opts := range g.Gateways {
		out.Gateways[name] = Options(cloneValue(map[string]any(opts)).(map[string]any))
	}
	return out
}

func expand(v any) any {
	switch t := v.(type) {
	case string:
		return envRef.ReplaceAllStringFunc(t, func(ref string) string {
			return os.Getenv(envRef.FindStringSubmatch(ref)[1])
		})
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = expand(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = expand(val)
		}
		return out
	default:
		return v
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
