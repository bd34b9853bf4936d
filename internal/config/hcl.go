package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
)

var (
	fileSchema = &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "component", LabelNames: []string{"kind"}},
		},
	}
	idSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "id"}},
	}
)

// HCLLoader reads `component` blocks from HCL files.
type HCLLoader struct{}

// NewHCLLoader creates a new HCL configuration loader.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{}
}

// LoadFile parses one HCL file.
func (l *HCLLoader) LoadFile(ctx context.Context, path string) ([]*Block, error) {
	ctxlog.FromContext(ctx).Debug("Parsing HCL file.", "file", path)
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse HCL file %s", path)
	}
	return l.blocks(file.Body, path)
}

// LoadSource parses HCL text, using filename in diagnostics.
func (l *HCLLoader) LoadSource(src []byte, filename string) ([]*Block, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse HCL file %s", filename)
	}
	return l.blocks(file.Body, filename)
}

func (l *HCLLoader) blocks(body hcl.Body, path string) ([]*Block, error) {
	content, diags := body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to decode HCL file %s", path)
	}

	out := make([]*Block, 0, len(content.Blocks))
	for _, hb := range content.Blocks {
		idContent, remain, diags := hb.Body.PartialContent(idSchema)
		if diags.HasErrors() {
			return nil, errors.Wrapf(diags, "component %q in %s", hb.Labels[0], path)
		}
		b := &Block{Kind: hb.Labels[0], Body: remain, Range: hb.DefRange}
		if attr, ok := idContent.Attributes["id"]; ok {
			id, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			b.ID = id
		}
		out = append(out, b)
	}
	return out, nil
}

// stringAttr evaluates a constant string attribute.
func stringAttr(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", errors.Wrapf(diags, "attribute %q", attr.Name)
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return "", errors.Wrapf(errors.ErrInvalidConfig, "%s: attribute %q must be a string", attr.Range, attr.Name)
	}
	return val.AsString(), nil
}
