package config

import (
	"context"
	"encoding/json"
	"os"

	"github.com/hashicorp/hcl/v2"
	hcljson "github.com/hashicorp/hcl/v2/json"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// lambdaTag marks a YAML scalar as lambda source.
const lambdaTag = "!lambda"

// YAMLLoader reads ESPHome-style YAML files.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML configuration loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// LoadFile parses one YAML file.
func (l *YAMLLoader) LoadFile(ctx context.Context, path string) ([]*Block, error) {
	ctxlog.FromContext(ctx).Debug("Parsing YAML file.", "file", path)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return l.LoadSource(src, path)
}

// LoadSource parses YAML text, using filename in diagnostics.
func (l *YAMLLoader) LoadSource(src []byte, filename string) ([]*Block, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "failed to parse YAML file %s: %v", filename, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%s:%d: top level must be a mapping of domains", filename, root.Line)
	}

	var out []*Block
	for i := 0; i+1 < len(root.Content); i += 2 {
		domain, val := root.Content[i].Value, root.Content[i+1]
		entries := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			entries = val.Content
		}
		for _, n := range entries {
			b, err := l.entry(domain, n, filename)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
	}
	return out, nil
}

// entry converts one domain entry into a block. The body goes through the
// HCL JSON syntax so it decodes like an HCL block body.
func (l *YAMLLoader) entry(domain string, n *yaml.Node, filename string) (*Block, error) {
	b := &Block{
		Kind: domain,
		Range: hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: n.Line, Column: n.Column},
			End:      hcl.Pos{Line: n.Line, Column: n.Column},
		},
	}

	fields := make(map[string]any)
	switch {
	case n.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			switch key {
			case "platform":
				b.Kind = domain + "." + val.Value
			case "id":
				b.ID = val.Value
			default:
				v, err := nodeValue(val)
				if err != nil {
					return nil, errors.Wrapf(err, "%s:%d: %s.%s", filename, val.Line, domain, key)
				}
				fields[key] = v
			}
		}
	case n.Kind == yaml.ScalarNode && n.Tag == "!!null":
		// `logger:` with no options.
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%s:%d: %s entry must be a mapping", filename, n.Line, domain)
	}

	src, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "%s:%d: encoding %s", filename, n.Line, domain)
	}
	file, diags := hcljson.Parse(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "%s:%d: %s", filename, n.Line, domain)
	}
	b.Body = file.Body
	return b, nil
}

// nodeValue converts a YAML node into a JSON-encodable value. Scalars tagged
// !lambda become lambda strings.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == lambdaTag {
			return codegen.LambdaPrefix + n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	}
	return nil, errors.Newf("unsupported YAML node at line %d", n.Line)
}
