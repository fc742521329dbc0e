package cmd

import (
	"bytes"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/iocache"
	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *core.Session {
	t.Helper()
	m := core.NewMatrix(core.WithIDGenerator(core.SequentialIDs()))
	o1 := m.AddOption("O1")
	o2 := m.AddOption("O2")
	price := m.AddCriterion("Price", 5)
	quality := m.AddCriterion("Quality", 5)
	m.SetRating(o1, price, 10)
	m.SetRating(o1, quality, 10)
	m.SetRating(o2, price, 1)
	m.SetRating(o2, quality, 1)
	return core.NewSession(core.WithMatrix(m))
}

func TestResolveReferences(t *testing.T) {
	m := newTestSession(t).Matrix()

	tests := []struct {
		name    string
		resolve func(*core.Matrix, string) (string, error)
		ref     string
		want    string
		wantErr bool
	}{
		{"option by position", resolveOption, "2", "id_2", false},
		{"option by id", resolveOption, "id_1", "id_1", false},
		{"option out of range", resolveOption, "3", "", true},
		{"option by name is not a reference", resolveOption, "O1", "", true},
		{"criterion by position", resolveCriterion, "1", "id_3", false},
		{"criterion by id", resolveCriterion, "id_4", "id_4", false},
		{"criterion zero", resolveCriterion, "0", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resolve(m, tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.ref)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.db", sqlitePath("/tmp/custom.db", "/home/me/.decider_state.db"))
	assert.Equal(t, "/home/me/.decider_state.db", sqlitePath("", "/home/me/.decider_state.db"))
}

func TestArgOrEmpty(t *testing.T) {
	assert.Equal(t, "", argOrEmpty(nil, 0))
	assert.Equal(t, "a", argOrEmpty([]string{"a", "b"}, 0))
	assert.Equal(t, "", argOrEmpty([]string{"a"}, 1))
}

func TestRecordHistory(t *testing.T) {
	session = newTestSession(t)
	t.Cleanup(func() { session = nil })

	results, err := session.Results()
	require.NoError(t, err)
	fragment, err := session.Fragment()
	require.NoError(t, err)

	store := &iocache.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, 2, 2, fragment).Return(int64(42), nil)
	store.On("RecordResult", int64(42), mock.MatchedBy(func(r schema.RankedResult) bool {
		return r.Rank == 1 && r.Name == "O1" && r.Label == schema.ExcellentValue
	})).Return(nil).Once()
	store.On("RecordResult", int64(42), mock.MatchedBy(func(r schema.RankedResult) bool {
		return r.Rank == 2 && r.Name == "O2" && r.Percentage == 10
	})).Return(nil).Once()

	recordHistory(store, results)
	store.AssertExpectations(t)
}

func TestRecordHistory_BeginRunFails(t *testing.T) {
	session = newTestSession(t)
	t.Cleanup(func() { session = nil })

	results, err := session.Results()
	require.NoError(t, err)

	store := &iocache.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, 2, 2, mock.Anything).Return(int64(0), errors.New("db down"))

	recordHistory(store, results)
	store.AssertNotCalled(t, "RecordResult", mock.Anything, mock.Anything)
}

func TestRecordHistory_NilStore(t *testing.T) {
	assert.NotPanics(t, func() { recordHistory(nil, nil) })
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		path []string
	}{
		{[]string{"show"}},
		{[]string{"option", "add"}},
		{[]string{"option", "remove"}},
		{[]string{"option", "rename"}},
		{[]string{"criterion", "add"}},
		{[]string{"criterion", "remove"}},
		{[]string{"criterion", "rename"}},
		{[]string{"criterion", "weight"}},
		{[]string{"rate"}},
		{[]string{"results"}},
		{[]string{"export"}},
		{[]string{"share"}},
		{[]string{"load"}},
		{[]string{"reset"}},
		{[]string{"store", "status"}},
		{[]string{"store", "clear"}},
		{[]string{"history", "status"}},
		{[]string{"history", "clear"}},
		{[]string{"history", "export"}},
		{[]string{"history", "migrate"}},
		{[]string{"mcp"}},
		{[]string{"version"}},
	}

	for _, tt := range tests {
		cmd, rest, err := rootCmd.Find(tt.path)
		require.NoError(t, err, "command %v should exist", tt.path)
		assert.Empty(t, rest)
		assert.Equal(t, tt.path[len(tt.path)-1], cmd.Name())
	}
}

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		path    []string
		args    []string
		wantErr bool
	}{
		{[]string{"rate"}, []string{"1", "2", "7"}, false},
		{[]string{"rate"}, []string{"1", "2"}, true},
		{[]string{"option", "add"}, nil, false},
		{[]string{"option", "add"}, []string{"a", "b"}, true},
		{[]string{"criterion", "add"}, []string{"Price", "8"}, false},
		{[]string{"criterion", "weight"}, []string{"1"}, true},
		{[]string{"load"}, nil, true},
		{[]string{"show"}, []string{"extra"}, true},
	}

	for _, tt := range tests {
		cmd, _, err := rootCmd.Find(tt.path)
		require.NoError(t, err)
		err = cmd.ValidateArgs(tt.args)
		if tt.wantErr {
			assert.Error(t, err, "%v %v", tt.path, tt.args)
		} else {
			assert.NoError(t, err, "%v %v", tt.path, tt.args)
		}
	}
}

func TestOptionAddHelpMatchesScoring(t *testing.T) {
	// New options start with an empty rating row and score 0 until rated.
	assert.Contains(t, optionAddCmd.Short, "score 0")
	assert.NotContains(t, optionAddCmd.Short, "rated at the default")
}

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	writeVersion(&buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "decider\n"))
	assert.Contains(t, out, "version:  "+version)
	assert.Contains(t, out, "commit:   "+commit)
	assert.Contains(t, out, "go:       "+runtime.Version())
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}
