package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FactSeparator joins list-valued facts into a single string.
const FactSeparator = "; "

// Entry is the static content for one site.
type Entry struct {
	History  string `json:"history" yaml:"history"`
	Overview string `json:"overview" yaml:"overview"`
	Facts    Facts  `json:"facts" yaml:"facts"`
	Video    string `json:"video" yaml:"video"`
}

// Facts is a site's fact text. Documents may give it as a string or a list of strings.
type Facts string

func (f *Facts) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Facts(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("facts must be a string or list of strings")
	}
	*f = joinFacts(list)
	return nil
}

func (f *Facts) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*f = Facts(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*f = joinFacts(list)
		return nil
	default:
		return fmt.Errorf("line %d: facts must be a string or list of strings", node.Line)
	}
}

func joinFacts(list []string) Facts {
	parts := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return Facts(strings.Join(parts, FactSeparator))
}
