package ferritec_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/fixtures"
	"github.com/ferrite-lang/ferritec/pkg/ferritec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileFixture(t *testing.T, name string) ferritec.Result {
	t.Helper()
	scenario, ok := fixtures.Get(name)
	require.True(t, ok, "fixture %q not registered", name)
	return ferritec.Compile(scenario.Root, scenario.Importer, config.Default())
}

// TestIntegerCoercion exercises scenario S2 (spec §8): x: i32 = 1 + 2;
// must compile cleanly to a single runtime static for main.
func TestIntegerCoercion(t *testing.T) {
	result := compileFixture(t, "s2")
	require.True(t, result.Ok(), "diagnostics: %v", result.Diagnostics)
	require.Len(t, result.Statics, 1)
	assert.True(t, result.Statics[0].IsFunction())
}

// TestPolymorphismDedupesInstantiations exercises scenario S3 / OQ3: two
// calls to id(i32, x) with the same constant type argument must produce
// exactly one instantiation of id alongside main, not two.
func TestPolymorphismDedupesInstantiations(t *testing.T) {
	result := compileFixture(t, "s3")
	require.True(t, result.Ok(), "diagnostics: %v", result.Diagnostics)

	names := make(map[string]int, len(result.Statics))
	for _, s := range result.Statics {
		names[s.Name()]++
	}
	assert.Len(t, result.Statics, 2, "expected main plus exactly one instantiation of id, got %v", names)
	for name, count := range names {
		assert.Equal(t, 1, count, "static %q must appear exactly once", name)
	}
}

// TestSliceAutoWrap exercises scenario S4: assigning a [3]i32 to a []i32
// local must succeed, coercing the static array into a slice.
func TestSliceAutoWrap(t *testing.T) {
	result := compileFixture(t, "s4")
	require.True(t, result.Ok(), "diagnostics: %v", result.Diagnostics)
	require.Len(t, result.Statics, 1)
}

// TestUnionLiteral exercises scenario S5: a union literal naming a single
// member must be accepted and lowered without error.
func TestUnionLiteral(t *testing.T) {
	result := compileFixture(t, "s5")
	require.True(t, result.Ok(), "diagnostics: %v", result.Diagnostics)
	require.Len(t, result.Statics, 1)
}

// TestImportResolvesConstant exercises scenario S6: main resolves pi from
// a `using`-ed module through the Importer seam.
func TestImportResolvesConstant(t *testing.T) {
	result := compileFixture(t, "s6")
	require.True(t, result.Ok(), "diagnostics: %v", result.Diagnostics)
	require.Len(t, result.Statics, 1)
}

// TestCheckAllReportsNothingForCleanFixture exercises the --keep-going
// entry point end to end: CheckAll over the well-formed s2 fixture
// reports no diagnostics.
func TestCheckAllReportsNothingForCleanFixture(t *testing.T) {
	good, ok := fixtures.Get("s2")
	require.True(t, ok)

	diags := ferritec.CheckAll(good.Root, good.Importer, config.Default())
	assert.False(t, diags.HasErrors(), "a well-formed fixture must check clean: %v", diags)
}
