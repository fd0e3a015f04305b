package metadata

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lumen/internal/ir"
)

// ModuleJob describes one module to serialize. Each job owns its context and
// declarations outright: nothing in a job may share a table, interner or
// tree with another job, because id stability depends on a single strictly
// ordered pass per module.
type ModuleJob struct {
	Name        string
	ToolVersion string
	Context     *Context
	Extension   Extension

	Classes    []*ir.Class
	Functions  []*ir.Func
	Properties []*ir.Property

	// OutPath, when set, is where the envelope is written.
	OutPath string
}

// SerializeModule runs the single committed pass over one module's
// declarations and assembles its envelope.
func SerializeModule(job *ModuleJob) *ModuleEnvelope {
	env := &ModuleEnvelope{
		ModuleName:  job.Name,
		ToolVersion: job.ToolVersion,
	}
	top := NewTopLevel(job.Context, job.Extension).WithIndexedTypes()
	for _, c := range job.Classes {
		env.Classes = append(env.Classes, New(job.Context, c, job.Extension).ClassProto(c))
	}
	for _, f := range job.Functions {
		env.Functions = append(env.Functions, top.FunctionProto(f))
	}
	for _, p := range job.Properties {
		env.Properties = append(env.Properties, top.PropertyProto(p))
	}
	// Top-level records reference types and requirements by index; the
	// envelope carries the tables they point into.
	env.TypeTable = top.literalTypeTable()
	env.VersionRequirementTable = top.literalVersionTable()
	// The string table snapshots after all records are built so every
	// interned name is present.
	env.Strings = job.Context.Strings.Snapshot()
	return env
}

// SerializeModules serializes independent modules in parallel. Parallelism
// is safe only because jobs share no tables; within each module the pass
// stays single-threaded. jobs' envelopes are returned index-aligned.
func SerializeModules(ctx context.Context, jobs []*ModuleJob, parallelism int) ([]*ModuleEnvelope, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	envs := make([]*ModuleEnvelope, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			env := SerializeModule(job)
			envs[i] = env
			if job.OutPath != "" {
				return WriteModuleFile(job.OutPath, env)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return envs, nil
}
