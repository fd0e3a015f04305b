package metadata

import (
	"context"
	"fmt"
	"testing"

	"lumen/internal/ir"
)

// independentJob builds a module whose context shares nothing with any
// other job.
func independentJob(name string, classes int) *ModuleJob {
	ctx := testContext()
	job := &ModuleJob{
		Name:      name,
		Context:   ctx,
		Extension: NopExtension{},
	}
	for i := 0; i < classes; i++ {
		job.Classes = append(job.Classes, makeClass(ctx, fmt.Sprintf("C%d", i)))
	}
	return job
}

func TestSerializeModulesKeepsJobOrder(t *testing.T) {
	jobs := []*ModuleJob{
		independentJob("alpha", 2),
		independentJob("beta", 1),
		independentJob("gamma", 3),
	}
	envs, err := SerializeModules(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if len(envs) != 3 {
		t.Fatalf("expected 3 envelopes")
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if envs[i].ModuleName != want {
			t.Fatalf("envelope %d: got %s want %s", i, envs[i].ModuleName, want)
		}
	}
	if len(envs[2].Classes) != 3 {
		t.Fatalf("gamma must carry its 3 class records")
	}
}

func TestModuleEnvelopeCarriesTypeTable(t *testing.T) {
	ctx := testContext()
	f := ir.NewFunc(ctx.Strings.Intern("await"), ir.Public, ir.Final, ir.FlagSuspend, ctx.Types.Builtins().Int)
	env := SerializeModule(&ModuleJob{
		Name:      "runtime",
		Context:   ctx,
		Extension: NopExtension{},
		Functions: []*ir.Func{f},
	})
	if len(env.Functions) != 1 {
		t.Fatalf("expected one function record")
	}
	rec := env.Functions[0]
	if !rec.ReturnType.Indexed {
		t.Fatalf("top-level records must reference types through the module table")
	}
	if rec.TypeTable != nil || rec.VersionRequirementTable != nil {
		t.Fatalf("top-level records must not embed tables of their own")
	}
	if int(rec.ReturnType.Index) >= len(env.TypeTable) {
		t.Fatalf("return type index %d outside the module table (%d entries)",
			rec.ReturnType.Index, len(env.TypeTable))
	}
	if env.TypeTable[rec.ReturnType.Index].Kind != TypeInt {
		t.Fatalf("module table entry must describe the return type")
	}
	if len(rec.VersionRequirements) != 1 {
		t.Fatalf("suspend function must carry one requirement index")
	}
	req := env.VersionRequirementTable[rec.VersionRequirements[0]]
	if req.Major != CoroutinesRequirement.Major || req.Minor != CoroutinesRequirement.Minor {
		t.Fatalf("module requirement table must hold the coroutine requirement, got %+v", req)
	}
}

func TestSerializeModulesDefaultsParallelism(t *testing.T) {
	jobs := []*ModuleJob{independentJob("solo", 1)}
	envs, err := SerializeModules(context.Background(), jobs, 0)
	if err != nil || len(envs) != 1 {
		t.Fatalf("default parallelism must still serialize: %v", err)
	}
}
