package classlint

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectorInput(decls map[string]string, groups ...[]string) Input {
	raw := &RawSelector{}
	for i, g := range groups {
		comb := CombinatorNone
		if i > 0 {
			comb = CombinatorDescendant
		}
		raw.Compounds = append(raw.Compounds, RawCompound{Combinator: comb, Classes: g})
	}
	return Input{Selector: raw, Declarations: decls}
}

func TestRunMixedInputs(t *testing.T) {
	inputs := []Input{
		selectorInput(nil, []string{"c-card"}),
		selectorInput(nil, []string{"is-open"}),
		{Element: []string{"_content"}, Location: Location{File: "page.html", Line: 4}},
		selectorInput(nil, []string{"c-card"}, []string{"c-image"}),
	}

	result, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: 1})
	require.NoError(t, err)

	require.Len(t, result.Violations, 3)
	assert.Equal(t, RuleModifierWithoutContainer, result.Violations[0].Rule)
	assert.Equal(t, RulePrivateWithoutContainer, result.Violations[1].Rule)
	assert.Equal(t, RuleContainerInsideContainer, result.Violations[2].Rule)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 3, result.Summary.ErrorCount)
	assert.True(t, result.HasErrors())
}

func TestRunParallelMatchesSequential(t *testing.T) {
	var inputs []Input
	for i := 0; i < 200; i++ {
		switch i % 5 {
		case 0:
			inputs = append(inputs, selectorInput(nil, []string{fmt.Sprintf("c-w%d", i)}))
		case 1:
			inputs = append(inputs, selectorInput(nil, []string{"is-open"}))
		case 2:
			inputs = append(inputs, selectorInput(map[string]string{"color": "red"},
				[]string{fmt.Sprintf("c-w%d", i)}, []string{"_body"}))
		case 3:
			inputs = append(inputs, Input{Element: []string{"_stray"}})
		case 4:
			inputs = append(inputs, Input{Err: errors.New("bad selector")})
		}
	}

	sequential, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 8} {
		parallel, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, sequential.Violations, parallel.Violations, "workers=%d", workers)
		assert.Equal(t, sequential.Failures, parallel.Failures, "workers=%d", workers)
		assert.Equal(t, sequential.Summary, parallel.Summary, "workers=%d", workers)
	}
}

func TestRunAllInputsUnanalyzable(t *testing.T) {
	inputs := []Input{
		{Err: errors.New("first parse failure"), Location: Location{File: "a.css", Line: 1}},
		{Err: errors.New("second parse failure"), Location: Location{File: "a.css", Line: 9}},
		{}, // neither selector nor element
	}

	result, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: 2})
	require.NoError(t, err)

	assert.Empty(t, result.Violations)
	require.Len(t, result.Failures, 3)
	assert.Equal(t, len(inputs), result.Summary.FailureCount)
	for _, d := range result.Failures {
		assert.Equal(t, DiagUnanalyzableInput, d.Kind)
	}
	assert.False(t, result.HasErrors())
}

func TestRunReusePassSpansWorkers(t *testing.T) {
	inputs := []Input{
		selectorInput(map[string]string{"color": "red"}, []string{"c-card"}, []string{"_body"}),
		selectorInput(map[string]string{"padding": "1rem"}, []string{"c-modal"}, []string{"_body"}),
	}

	for _, workers := range []int{1, 2} {
		result, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: workers})
		require.NoError(t, err)

		require.Len(t, result.Violations, 1, "workers=%d", workers)
		v := result.Violations[0]
		assert.Equal(t, RulePrivateReuse, v.Rule)
		assert.Equal(t, SeverityWarning, v.Severity)
		assert.Equal(t, []string{"_body", "c-card", "c-modal"}, v.Tokens)
	}
}

func TestRunReuseWarningsFollowErrors(t *testing.T) {
	inputs := []Input{
		selectorInput(map[string]string{"color": "red"}, []string{"c-card"}, []string{"_body"}),
		selectorInput(nil, []string{"is-open"}),
		selectorInput(map[string]string{"padding": "1rem"}, []string{"c-modal"}, []string{"_body"}),
	}

	result, err := Run(context.Background(), inputs, DefaultConvention(), RunOptions{Workers: 3})
	require.NoError(t, err)

	require.Len(t, result.Violations, 2)
	assert.Equal(t, RuleModifierWithoutContainer, result.Violations[0].Rule)
	assert.Equal(t, RulePrivateReuse, result.Violations[1].Rule)
}

func TestRunRejectsInvalidConvention(t *testing.T) {
	conv := &Convention{
		ContainerPrefixes: map[string]ContainerKind{"c-": ContainerComponent},
		ModifierPrefixes:  []string{"c-"},
		PrivatePrefix:     "_",
	}

	result, err := Run(context.Background(), []Input{selectorInput(nil, []string{"c-card"})}, conv, RunOptions{})
	require.Error(t, err)
	assert.Nil(t, result)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.NotEmpty(t, cfgErr.Diagnostics)
	assert.Equal(t, DiagConfigurationError, cfgErr.Diagnostics[0].Kind)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var inputs []Input
	for i := 0; i < 100; i++ {
		inputs = append(inputs, selectorInput(nil, []string{"is-open"}))
	}

	result, err := Run(ctx, inputs, DefaultConvention(), RunOptions{Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRunEmptyInputs(t *testing.T) {
	result, err := Run(context.Background(), nil, DefaultConvention(), RunOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Failures)
	assert.False(t, result.HasErrors())
}
