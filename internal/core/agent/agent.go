// Package agent holds the role definitions the pipeline delegates to.
// An agent here is pure configuration: a role bound to a goal, a
// backstory and a set of tool names. Sequencing stays with the
// pipeline orchestrator; nothing in this package executes anything.
package agent

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed agents.yaml
var defaultCatalog []byte

// Definition describes one agent. MaxRPM caps LLM calls made on the
// agent's behalf; MaxIter is carried for parity with the catalog
// format but only single-shot delegation is performed today.
type Definition struct {
	Name      string   `yaml:"name"`
	Role      string   `yaml:"role"`
	Goal      string   `yaml:"goal"`
	Backstory string   `yaml:"backstory"`
	Tools     []string `yaml:"tools"`
	MaxIter   int      `yaml:"max_iter"`
	MaxRPM    int      `yaml:"max_rpm"`
}

// SystemPrompt assembles the system instruction sent with every LLM
// call delegated to this agent.
func (d Definition) SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a ")
	b.WriteString(d.Role)
	b.WriteString(".\n\nGoal: ")
	b.WriteString(d.Goal)
	if d.Backstory != "" {
		b.WriteString("\n\nBackground: ")
		b.WriteString(d.Backstory)
	}
	return b.String()
}

type Catalog struct {
	agents map[string]Definition
}

type catalogFile struct {
	Agents []Definition `yaml:"agents"`
}

// LoadCatalog parses agent definitions from path, or from the
// embedded defaults when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read agent catalog: %w", err)
		}
		raw = data
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse agent catalog: %w", err)
	}
	if len(file.Agents) == 0 {
		return nil, fmt.Errorf("agent catalog is empty")
	}

	agents := make(map[string]Definition, len(file.Agents))
	for _, def := range file.Agents {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("agent with empty name in catalog")
		}
		if _, exists := agents[def.Name]; exists {
			return nil, fmt.Errorf("duplicate agent name %q in catalog", def.Name)
		}
		if def.Role == "" {
			return nil, fmt.Errorf("agent %q has no role", def.Name)
		}
		if def.MaxRPM <= 0 {
			return nil, fmt.Errorf("agent %q has non-positive max_rpm", def.Name)
		}
		agents[def.Name] = def
	}
	return &Catalog{agents: agents}, nil
}

// Get returns the definition for name.
func (c *Catalog) Get(name string) (Definition, error) {
	def, ok := c.agents[name]
	if !ok {
		return Definition{}, fmt.Errorf("agent %q not in catalog", name)
	}
	return def, nil
}

func (c *Catalog) Len() int {
	return len(c.agents)
}
