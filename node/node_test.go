package node

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/gatgui/pyexpr/engines/mocks"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost())

		assert.NotEmpty(t, n.ID())
		assert.Equal(t, "expr1", n.Name())
		assert.Equal(t, "", n.Expression())
		assert.Equal(t, types.String, n.OutputType())
		assert.False(t, n.Verbose())
		assert.False(t, n.EvalOnTimeChanged())
		assert.True(t, n.NeedsEval())
		assert.False(t, n.Succeeded())
		assert.Equal(t, "", n.ErrorMessage())
		assert.Equal(t, types.Zero(types.String), n.Result())
		assert.Contains(t, n.String(), "expr1")
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost(),
			WithExpression("1 + 1"),
			WithOutputType(types.IntArray),
			WithVerbose(true),
		)

		assert.Equal(t, "1 + 1", n.Expression())
		assert.Equal(t, types.IntArray, n.OutputType())
		assert.True(t, n.Verbose())
		assert.Equal(t, types.Zero(types.IntArray), n.Result())
	})

	t.Run("distinct identities", func(t *testing.T) {
		t.Parallel()
		a, _ := newMockNode(t, newTestHost())
		b, _ := newMockNode(t, newTestHost())
		assert.NotEqual(t, a.ID(), b.ID())
	})

	tests := []struct {
		name    string
		nodeNm  string
		host    Host
		opts    []FunctionalOption
		wantErr error
	}{
		{
			name:   "empty name",
			nodeNm: "",
			host:   newTestHost(),
			opts:   []FunctionalOption{WithEngine(new(mocks.Engine))},
		},
		{
			name:    "nil host",
			nodeNm:  "expr1",
			host:    nil,
			opts:    []FunctionalOption{WithEngine(new(mocks.Engine))},
			wantErr: ErrNoHost,
		},
		{
			name:    "no engine",
			nodeNm:  "expr1",
			host:    newTestHost(),
			wantErr: ErrNoEngine,
		},
		{
			name:    "nil engine",
			nodeNm:  "expr1",
			host:    newTestHost(),
			opts:    []FunctionalOption{WithEngine(nil)},
			wantErr: ErrNoEngine,
		},
		{
			name:    "invalid output type",
			nodeNm:  "expr1",
			host:    newTestHost(),
			opts:    []FunctionalOption{WithEngine(new(mocks.Engine)), WithOutputType(types.OutputType(42))},
			wantErr: ErrInvalidOutputType,
		},
		{
			name:    "nil time source",
			nodeNm:  "expr1",
			host:    newTestHost(),
			opts:    []FunctionalOption{WithEngine(new(mocks.Engine)), WithTimeSource(nil)},
			wantErr: ErrNoTimeSource,
		},
		{
			name:   "nil logger",
			nodeNm: "expr1",
			host:   newTestHost(),
			opts:   []FunctionalOption{WithEngine(new(mocks.Engine)), WithLogger(nil)},
		},
		{
			name:   "nil log handler",
			nodeNm: "expr1",
			host:   newTestHost(),
			opts:   []FunctionalOption{WithEngine(new(mocks.Engine)), WithLogHandler(nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, err := New(tt.nodeNm, tt.host, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	t.Run("environment failure", func(t *testing.T) {
		t.Parallel()
		engine := new(mocks.Engine)
		engine.On("NewEnvironment", mock.Anything).Return(nil, errors.New("boom"))

		n, err := New("expr1", newTestHost(), WithEngine(engine))
		require.Error(t, err)
		assert.Nil(t, n)
		assert.Contains(t, err.Error(), "boom")
		engine.AssertExpectations(t)
	})

	t.Run("log handler", func(t *testing.T) {
		t.Parallel()
		env := new(mocks.Environment)
		engine := new(mocks.Engine)
		engine.On("NewEnvironment", mock.Anything).Return(env, nil)

		n, err := New("expr1", newTestHost(), WithEngine(engine), WithLogHandler(slog.DiscardHandler))
		require.NoError(t, err)
		assert.NotNil(t, n.logger)
	})
}

func TestSetters(t *testing.T) {
	t.Parallel()

	t.Run("expression and output type mark dirty", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost())

		n.needsEval = false
		n.SetExpression("2")
		assert.True(t, n.NeedsEval())
		assert.Equal(t, "2", n.Expression())

		n.needsEval = false
		require.NoError(t, n.SetOutputType(types.Double))
		assert.True(t, n.NeedsEval())
		assert.Equal(t, types.Double, n.OutputType())
	})

	t.Run("invalid output type", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost())

		err := n.SetOutputType(types.OutputType(-1))
		require.ErrorIs(t, err, ErrInvalidOutputType)
		assert.Equal(t, types.String, n.OutputType())
	})

	t.Run("verbose keeps cache", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost())

		n.needsEval = false
		n.SetVerbose(true)
		assert.True(t, n.Verbose())
		assert.False(t, n.NeedsEval())
	})

	t.Run("rename", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost())

		require.NoError(t, n.Rename("other"))
		assert.Equal(t, "other", n.Name())
		require.Error(t, n.Rename(""))
		assert.Equal(t, "other", n.Name())
	})

	t.Run("result is a copy", func(t *testing.T) {
		t.Parallel()
		n, _ := newMockNode(t, newTestHost(), WithOutputType(types.IntArray))
		n.result = types.Value{Type: types.IntArray, Ints: []int{1, 2}}

		r := n.Result()
		r.Ints[0] = 99
		assert.Equal(t, []int{1, 2}, n.Result().Ints)
	})
}

func TestDisplayUnits(t *testing.T) {
	t.Parallel()

	t.Run("construction units", func(t *testing.T) {
		t.Parallel()
		units := attribute.DisplayUnits{Angle: attribute.Radians}
		n, _ := newMockNode(t, newTestHost(), WithUnits(units))
		assert.Equal(t, units, n.displayUnits())
	})

	t.Run("host units win", func(t *testing.T) {
		t.Parallel()
		host := &unitsHost{testHost: newTestHost(), units: attribute.DisplayUnits{Distance: attribute.Meters}}
		n, _ := newMockNode(t, host, WithUnits(attribute.DisplayUnits{Angle: attribute.Radians}))
		assert.Equal(t, host.units, n.displayUnits())

		host.units.Distance = attribute.Inches
		assert.Equal(t, attribute.Inches, n.displayUnits().Distance)
	})
}
