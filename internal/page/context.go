// Package page loads the server-rendered page context (datasets, currency
// metadata, mounts) and exposes the page mounts as drawable surfaces.
package page

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"spese-charts/internal/chart"
	"spese-charts/internal/core"
)

// Context file keys.
const (
	KeyMeta     = "meta"
	KeyCurrency = "currency"
	KeyCategory = "categoryData"
	KeyMonth    = "monthData"
	KeyPayment  = "paymentData"
	KeyMounts   = "mounts"
)

var ErrInvalidContext = errors.New("invalid page context")

type (
	// Context is everything the host page hands to the chart renderer.
	Context struct {
		Name     string
		Inputs   chart.Inputs
		Mounts   []MountSpec
		Warnings []string
	}

	// MountSpec is a surface present on the page. Zero sizes mean the default.
	MountSpec struct {
		Key    string
		Width  int
		Height int
	}
)

// DefaultMounts returns the three standard mounts.
func DefaultMounts() []MountSpec {
	return []MountSpec{
		{Key: chart.MountCategory},
		{Key: chart.MountMonth},
		{Key: chart.MountPayment},
	}
}

// Load reads a YAML or JSON context file. The context name is the file name
// without its extension.
func Load(path string) (Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Context{}, fmt.Errorf("read page context: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, data)
}

// Parse decodes a page context. Only a document that is not a mapping is an
// error: a missing dataset is empty and a malformed one is replaced by an
// empty dataset and reported in Warnings.
func Parse(name string, data []byte) (Context, error) {
	ctx := Context{Name: name, Mounts: DefaultMounts()}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Context{}, fmt.Errorf("%w: %s: %v", ErrInvalidContext, name, err)
	}
	if doc.Kind == 0 {
		return ctx, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Context{}, fmt.Errorf("%w: %s: top level must be a mapping", ErrInvalidContext, name)
	}

	if meta := lookup(root, KeyMeta); meta != nil && meta.Kind == yaml.MappingNode {
		if c := lookup(meta, KeyCurrency); c != nil && c.Kind == yaml.ScalarNode {
			ctx.Inputs.Currency = core.ResolveCurrency(c.Value)
		}
	}

	for _, ds := range []struct {
		key string
		dst *core.Dataset
	}{
		{KeyCategory, &ctx.Inputs.Category},
		{KeyMonth, &ctx.Inputs.Month},
		{KeyPayment, &ctx.Inputs.Payment},
	} {
		d, err := parseDataset(lookup(root, ds.key))
		if err != nil {
			ctx.Warnings = append(ctx.Warnings, fmt.Sprintf("%s: %v, treated as empty", ds.key, err))
			continue
		}
		*ds.dst = d
	}

	if n := lookup(root, KeyMounts); n != nil && !isNull(n) {
		mounts, err := parseMounts(n)
		if err != nil {
			return Context{}, fmt.Errorf("%w: %s: %s: %v", ErrInvalidContext, name, KeyMounts, err)
		}
		ctx.Mounts = mounts
	}
	return ctx, nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func parseDataset(n *yaml.Node) (core.Dataset, error) {
	if n == nil || isNull(n) {
		return core.Dataset{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return core.Dataset{}, fmt.Errorf("expected a mapping, got %s", kindName(n))
	}
	entries := make([]core.Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		amount, err := parseAmount(v)
		if err != nil {
			return core.Dataset{}, fmt.Errorf("%q: %w", k.Value, err)
		}
		entries = append(entries, core.Entry{Label: k.Value, Amount: amount})
	}
	return core.NewDataset(entries...)
}

func parseAmount(n *yaml.Node) (float64, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("%w: expected a number, got %s", core.ErrInvalidAmount, kindName(n))
	}
	switch n.Tag {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			var f float64
			if derr := n.Decode(&f); derr != nil {
				return 0, fmt.Errorf("%w: %q", core.ErrInvalidAmount, n.Value)
			}
			v = f
		}
		return v, nil
	case "!!str":
		return core.ParseAmount(n.Value)
	default:
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidAmount, n.Value)
	}
}

func parseMounts(n *yaml.Node) ([]MountSpec, error) {
	var out []MountSpec
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode || item.Value == "" {
				return nil, fmt.Errorf("expected a mount key, got %s", kindName(item))
			}
			out = append(out, MountSpec{Key: item.Value})
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			spec := MountSpec{Key: n.Content[i].Value}
			if v := n.Content[i+1]; !isNull(v) {
				var size struct {
					Width  int `yaml:"width"`
					Height int `yaml:"height"`
				}
				if err := v.Decode(&size); err != nil {
					return nil, fmt.Errorf("%s: %w", spec.Key, err)
				}
				if size.Width < 0 || size.Height < 0 {
					return nil, fmt.Errorf("%s: negative size", spec.Key)
				}
				spec.Width, spec.Height = size.Width, size.Height
			}
			out = append(out, spec)
		}
	default:
		return nil, fmt.Errorf("expected a list or mapping, got %s", kindName(n))
	}
	seen := make(map[string]bool, len(out))
	for _, m := range out {
		if seen[m.Key] {
			return nil, fmt.Errorf("duplicate mount %q", m.Key)
		}
		seen[m.Key] = true
	}
	return out, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar " + strconv.Quote(n.Value)
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
