package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/cfgid"
	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/config"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/globals"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/scheduler"
	"github.com/specialistvlad/firmgen/internal/symbol"
)

// Output is the result of a successful pass. It is read-only.
type Output struct {
	PassID     string
	Statements []codegen.Emitted
	Globals    globals.Snapshot
}

// Engine runs generation passes against one registry.
type Engine struct {
	reg *registry.Registry
}

// New creates an engine dispatching through reg.
func New(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// plan is what the engine knows about one block before it runs.
type plan struct {
	block *config.Block
	entry *registry.Entry
	id    cfgid.ID
	name  string
	val   cty.Value
	err   error
}

// Generate runs one pass over blocks. It returns an *Output, or a *PassError
// describing everything that went wrong.
func (e *Engine) Generate(ctx context.Context, blocks []*config.Block) (*Output, error) {
	passID := uuid.NewString()
	ctx = ctxlog.With(ctx, "pass_id", passID)
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting generation pass.", "blocks", len(blocks))

	perr := &PassError{PassID: passID}
	plans := e.dispatch(blocks, perr)
	if len(perr.Fatal) > 0 {
		logger.Error("Unknown component kinds.", "count", len(perr.Fatal))
		return nil, perr
	}

	pass := codegen.NewPass(passID)
	assignIDs(pass.Symbols, plans)
	for _, p := range plans {
		p.name = p.block.Kind + ":" + p.id.Name
		if p.err != nil {
			continue
		}
		val, diags, err := p.block.Decode(p.entry.Schema)
		perr.Diagnostics = append(perr.Diagnostics, diags...)
		p.val, p.err = val, err
	}

	for _, p := range plans {
		pass.Scheduler.Add(scheduler.Task{Name: p.name, Provides: p.entry.IDs(p.id.Name), Run: p.run(pass)})
	}

	report, runErr := pass.Scheduler.Run(ctx)
	if runErr != nil {
		perr.Fatal = append(perr.Fatal, runErr)
	}
	for i, r := range report.Results {
		if r.State != scheduler.Failed && r.State != scheduler.Skipped {
			continue
		}
		if runErr != nil && errors.Is(r.Err, runErr) {
			continue
		}
		be := &BlockError{Block: r.Task, Range: plans[i].block.Range, State: r.State, Err: r.Err}
		if r.State == scheduler.Failed {
			perr.Blocks = append(perr.Blocks, be)
		} else {
			perr.Skipped = append(perr.Skipped, be)
		}
	}

	if !perr.empty() {
		logger.Error("Generation pass failed.", "fatal", len(perr.Fatal), "failed", len(perr.Blocks), "skipped", len(perr.Skipped))
		return nil, perr
	}

	out := &Output{
		PassID:     passID,
		Statements: pass.Statements(),
		Globals:    pass.Globals.Snapshot(),
	}
	logger.Info("Generation pass completed.", "statements", len(out.Statements), "globals", len(out.Globals.Declarations))
	return out, nil
}

// dispatch resolves every block's entry. All unknown kinds are recorded,
// not just the first.
func (e *Engine) dispatch(blocks []*config.Block, perr *PassError) []*plan {
	plans := make([]*plan, 0, len(blocks))
	for _, b := range blocks {
		entry, err := e.reg.Lookup(b.Kind)
		if err != nil {
			perr.Fatal = append(perr.Fatal, errors.Wrapf(err, "%s", b.Range))
			continue
		}
		plans = append(plans, &plan{block: b, entry: entry})
	}
	return plans
}

// assignIDs reserves every manual id, then names the remaining blocks after
// their type so auto names never take a manual one.
func assignIDs(symbols *symbol.Table, plans []*plan) {
	seed := symbol.New()
	for _, p := range plans {
		if p.block.ID == "" {
			continue
		}
		id, err := cfgid.New(p.block.ID, p.entry.Type)
		if err == nil {
			err = symbols.Reserve(id.Name)
		}
		if err != nil {
			p.id, p.err = cfgid.Auto(p.block.ID, p.entry.Type), err
			continue
		}
		_ = seed.Reserve(id.Name)
		p.id = id
	}

	for _, p := range plans {
		if p.block.ID != "" {
			continue
		}
		name, _ := seed.Allocate(autoBase(p), false)
		if err := symbols.Reserve(name); err != nil {
			p.err = err
		}
		p.id = cfgid.Auto(name, p.entry.Type)
	}
}

// autoBase is the name seed of a block without an id: `<type>_id` for typed
// kinds, the kind itself otherwise.
func autoBase(p *plan) string {
	if p.entry.Type == nil {
		return strings.ReplaceAll(p.block.Kind, ".", "_")
	}
	name := strings.ReplaceAll(cpp.TypeName(p.entry.Type), "::", "_")
	return strings.ToLower(name) + "_id"
}

// run builds the routine body for the block.
func (p *plan) run(pass *codegen.Pass) scheduler.RunFunc {
	if p.err != nil {
		err := p.err
		return func(ctx context.Context, co *scheduler.Coroutine) error {
			return err
		}
	}
	return func(ctx context.Context, co *scheduler.Coroutine) error {
		ctx = ctxlog.With(ctx, "block", p.name)
		ctxlog.FromContext(ctx).Debug("Generating block.", "kind", p.block.Kind, "id", p.id.Name)
		gen := pass.NewContext(co, p.block.Kind, p.id)
		return p.entry.Generate(ctx, gen, p.val)
	}
}
