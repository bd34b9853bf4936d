package codegen

import (
	"context"
	"time"

	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// ComponentOptions are the optional settings every component accepts.
type ComponentOptions struct {
	SetupPriority  *float64
	UpdateInterval *time.Duration
}

// RegisterComponent emits `App.register_component(var);` and the optional
// settings. h must be a Component.
func (c *Context) RegisterComponent(h *cpp.Handle, opts ComponentOptions) error {
	if !cpp.Inherits(h.Type, cpp.Component) {
		return errors.Wrapf(errors.ErrTypeMismatch, "%s is a %s, not a Component", h.Name, cpp.TypeName(h.Type))
	}
	if err := c.Add(cpp.App.Member("register_component").Call(h)); err != nil {
		return err
	}
	if opts.SetupPriority != nil {
		if err := c.Add(h.Call("set_setup_priority", *opts.SetupPriority)); err != nil {
			return err
		}
	}
	if opts.UpdateInterval != nil {
		if !cpp.Inherits(h.Type, cpp.PollingComponent) {
			return errors.Wrapf(errors.ErrTypeMismatch, "%s has an update interval but is not a PollingComponent", h.Name)
		}
		if err := c.Add(h.Call("set_update_interval", *opts.UpdateInterval)); err != nil {
			return err
		}
	}
	return nil
}

// RegisterParented waits for parent and emits `var->set_parent(parent);`.
func (c *Context) RegisterParented(ctx context.Context, h *cpp.Handle, parent string) error {
	p, err := c.Get(ctx, parent, nil)
	if err != nil {
		return err
	}
	return c.Add(h.Call("set_parent", p))
}
