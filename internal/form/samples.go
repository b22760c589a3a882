package form

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed samples/*.json
var sampleFS embed.FS

// SampleNames lists the built-in sample forms.
func SampleNames() []string {
	entries, err := sampleFS.ReadDir("samples")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Sample loads a built-in sample form by name.
func Sample(name string) (*Definition, error) {
	data, err := sampleFS.ReadFile(path.Join("samples", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(SampleNames(), ", "))
	}
	return Parse(data)
}
