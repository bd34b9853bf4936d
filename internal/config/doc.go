// Package config turns configuration files into the flat list of component
// blocks the engine dispatches on.
//
// Two formats are supported:
//
//   - HCL, one `component "kind" { ... }` block per component, with an
//     optional `id` attribute.
//   - ESPHome-style YAML, where every top-level key is a domain and its value
//     is a single entry or a list of entries. An entry's `platform` key
//     selects the kind `domain.platform`.
//
// Either way a Block keeps its body as an hcl.Body, so the engine decodes
// both formats with the same hcldec schema. YAML entries get there by way of
// the HCL JSON syntax.
package config
