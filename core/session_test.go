package core

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/decider/internal/codec"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryFragments keeps the fragment in memory like a browser address bar.
type memoryFragments struct {
	fragment string
	writes   int
}

func (f *memoryFragments) ReadFragment() (string, error) { return f.fragment, nil }

func (f *memoryFragments) ReplaceFragment(fragment string) error {
	f.fragment = fragment
	f.writes++
	return nil
}

// memoryState keeps the local blob in memory.
type memoryState struct {
	blob   string
	exists bool
}

func (s *memoryState) ReadState() (string, bool, error) { return s.blob, s.exists, nil }

func (s *memoryState) WriteState(blob string) error {
	s.blob, s.exists = blob, true
	return nil
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(view schema.MatrixView) error {
	return m.Called(view).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(level schema.NoticeLevel, message string) {
	m.Called(level, message)
}

type failingFragments struct{}

func (failingFragments) ReadFragment() (string, error) { return "", errors.New("read failed") }
func (failingFragments) ReplaceFragment(string) error  { return errors.New("write failed") }

var (
	_ contract.FragmentStore = &memoryFragments{}
	_ contract.StateStore    = &memoryState{}
	_ contract.Renderer      = &mockRenderer{}
	_ contract.Notifier      = &mockNotifier{}
)

func newTestSession(opts ...SessionOption) (*Session, *memoryFragments, *memoryState) {
	frags := &memoryFragments{}
	local := &memoryState{}
	base := []SessionOption{
		WithMatrix(newTestMatrix()),
		WithFragmentStore(frags),
		WithStateStore(local),
	}
	return NewSession(append(base, opts...)...), frags, local
}

func decodeFragment(t *testing.T, fragment string) schema.State {
	t.Helper()
	p, err := codec.DecodeState(fragment)
	require.NoError(t, err)
	return schema.State{Options: p.Options, Criteria: p.Criteria, Ratings: p.Ratings, Weights: p.Weights}
}

func TestSessionMutationsSave(t *testing.T) {
	s, frags, local := newTestSession()

	o, err := s.AddOption("A")
	require.NoError(t, err)
	c, err := s.AddCriterion("Cost", 4)
	require.NoError(t, err)
	require.NoError(t, s.UpdateRating(o, c, "9"))
	require.NoError(t, s.UpdateWeight(c, "2"))

	assert.Equal(t, 4, frags.writes)
	state := decodeFragment(t, frags.fragment)
	if diff := cmp.Diff(s.Matrix().Snapshot(), state); diff != "" {
		t.Errorf("fragment does not match matrix (-want +got):\n%s", diff)
	}

	p, err := codec.UnmarshalLocal(local.blob)
	require.NoError(t, err)
	assert.Equal(t, schema.Ratings{o: {c: 9}}, p.Ratings)
	assert.Equal(t, schema.Weights{c: 2}, p.Weights)
}

func TestSessionRemoveRendersAndSaves(t *testing.T) {
	r := &mockRenderer{}
	r.On("Render", mock.AnythingOfType("schema.MatrixView")).Return(nil)
	s, frags, _ := newTestSession(WithRenderer(r))

	o, _ := s.AddOption("A")
	c, _ := s.AddCriterion("X", 5)
	r.AssertNotCalled(t, "Render", mock.Anything)

	require.NoError(t, s.RemoveOption(o))
	require.NoError(t, s.RemoveCriterion(c))
	r.AssertNumberOfCalls(t, "Render", 2)
	assert.Equal(t, 4, frags.writes)
}

func TestSessionRenameUnknownDoesNotSave(t *testing.T) {
	s, frags, _ := newTestSession()
	o, _ := s.AddOption("A")
	writes := frags.writes

	ok, err := s.UpdateOptionName("missing", "Z")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.UpdateCriterionName("missing", "Z")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, frags.writes)

	ok, err = s.UpdateOptionName(o, "B")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, writes+1, frags.writes)
}

func TestSessionReset(t *testing.T) {
	r := &mockRenderer{}
	r.On("Render", mock.Anything).Return(nil).Once()
	n := &mockNotifier{}
	n.On("Notify", schema.InfoNotice, "Matrix reset successfully").Once()
	s, frags, _ := newTestSession(WithRenderer(r), WithNotifier(n))

	_, _ = s.AddOption("custom")
	require.NoError(t, s.Reset())

	names := []string{}
	for _, o := range s.Matrix().Options() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Option 1", "Option 2"}, names)
	assert.Len(t, s.Matrix().Criteria(), 2)
	assert.NotEmpty(t, frags.fragment)
	r.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestSessionResultsEmptyNotifies(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", schema.WarnNotice, "Please add options and criteria first").Once()
	s, _, _ := newTestSession(WithNotifier(n))

	_, err := s.Results()
	assert.ErrorIs(t, err, ErrEmptyInput)
	n.AssertExpectations(t)
}

func TestSessionLoadFromFragment(t *testing.T) {
	t.Run("valid fragment", func(t *testing.T) {
		source, sourceFrags, _ := newTestSession()
		source.Matrix().SeedDefaults()
		require.NoError(t, source.Save())

		s, frags, _ := newTestSession()
		frags.fragment = "#" + sourceFrags.fragment
		loaded, err := s.LoadFromFragment()
		require.NoError(t, err)
		assert.True(t, loaded)
		if diff := cmp.Diff(source.Matrix().Snapshot(), s.Matrix().Snapshot()); diff != "" {
			t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("corrupted fragment keeps state", func(t *testing.T) {
		n := &mockNotifier{}
		n.On("Notify", schema.ErrorNotice, "Failed to load data from URL").Once()
		s, frags, _ := newTestSession(WithNotifier(n))
		s.Matrix().SeedDefaults()
		before := s.Matrix().Snapshot()

		frags.fragment = "%%%corrupt"
		loaded, err := s.LoadFromFragment()
		assert.False(t, loaded)
		assert.ErrorIs(t, err, codec.ErrMalformedPersistedData)
		assert.Equal(t, before, s.Matrix().Snapshot())
		n.AssertExpectations(t)
	})

	t.Run("empty fragment is a no-op", func(t *testing.T) {
		s, frags, _ := newTestSession()
		frags.fragment = "#"
		loaded, err := s.LoadFromFragment()
		require.NoError(t, err)
		assert.False(t, loaded)
	})

	t.Run("read failure", func(t *testing.T) {
		s := NewSession(WithFragmentStore(failingFragments{}))
		_, err := s.LoadFromFragment()
		assert.Error(t, err)
		assert.NotErrorIs(t, err, codec.ErrMalformedPersistedData)
	})
}

func TestSessionLoadFromLocal(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", schema.ErrorNotice, "Failed to load saved data").Once()
	s, _, local := newTestSession(WithNotifier(n))

	local.blob, local.exists = "{broken", true
	loaded, err := s.LoadFromLocal()
	assert.False(t, loaded)
	assert.ErrorIs(t, err, codec.ErrMalformedPersistedData)
	n.AssertExpectations(t)

	local.blob = `{"options":[{"id":"x","name":"Saved"}]}`
	loaded, err = s.LoadFromLocal()
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []schema.Option{{ID: "x", Name: "Saved"}}, s.Matrix().Options())
}

func TestSessionInit(t *testing.T) {
	t.Run("seeds defaults when nothing is stored", func(t *testing.T) {
		r := &mockRenderer{}
		r.On("Render", mock.Anything).Return(nil).Once()
		s, frags, local := newTestSession(WithRenderer(r))

		require.NoError(t, s.Init())
		assert.Len(t, s.Matrix().Options(), 2)
		assert.Len(t, s.Matrix().Criteria(), 2)
		assert.NotEmpty(t, frags.fragment)
		assert.True(t, local.exists)
		r.AssertExpectations(t)
	})

	t.Run("fragment wins over local", func(t *testing.T) {
		s, frags, local := newTestSession()
		fragment, err := codec.EncodeState(schema.State{Options: []schema.Option{{ID: "f", Name: "From URL"}}})
		require.NoError(t, err)
		frags.fragment = fragment
		local.blob, local.exists = `{"options":[{"id":"l","name":"From disk"}]}`, true

		require.NoError(t, s.Init())
		assert.Equal(t, []schema.Option{{ID: "f", Name: "From URL"}}, s.Matrix().Options())
	})

	t.Run("corrupt fragment falls back to local", func(t *testing.T) {
		n := &mockNotifier{}
		n.On("Notify", schema.ErrorNotice, "Failed to load data from URL").Once()
		s, frags, local := newTestSession(WithNotifier(n))
		frags.fragment = "not-a-fragment"
		local.blob, local.exists = `{"options":[{"id":"l","name":"From disk"}],"criteria":[]}`, true

		require.NoError(t, s.Init())
		assert.Equal(t, []schema.Option{{ID: "l", Name: "From disk"}}, s.Matrix().Options())
		n.AssertExpectations(t)
	})
}

func TestSessionLoadAndShareLink(t *testing.T) {
	source := NewSession(WithMatrix(newTestMatrix()))
	source.Matrix().SeedDefaults()
	link, err := source.ShareLink()
	require.NoError(t, err)
	assert.Regexp(t, `^#[A-Za-z0-9+/=]+$`, link)

	s, _, _ := newTestSession()
	require.NoError(t, s.Load("https://example.com/app/"+link))
	assert.Equal(t, source.Matrix().Snapshot(), s.Matrix().Snapshot())
}

func TestSessionSaveReportsErrors(t *testing.T) {
	local := &memoryState{}
	s := NewSession(WithFragmentStore(failingFragments{}), WithStateStore(local))
	_, err := s.AddOption("A")
	assert.ErrorContains(t, err, "save fragment")
	assert.True(t, local.exists)
}

func TestSessionLoadPartialPrunesStaleEntries(t *testing.T) {
	s, _, local := newTestSession()
	s.Matrix().SeedDefaults() // options id_1, id_2; criteria id_3, id_4

	payload := `{"options":[{"id":"n1","name":"New"}]}`
	fragment := base64.StdEncoding.EncodeToString([]byte(codec.EncodeURIComponent(payload)))
	require.NoError(t, s.Load(fragment))

	got := s.Matrix().Snapshot()
	assert.Equal(t, []schema.Option{{ID: "n1", Name: "New"}}, got.Options)
	assert.Empty(t, got.Ratings, "rating rows of replaced options are dropped")
	assert.Equal(t, schema.Weights{"id_3": schema.DefaultWeight, "id_4": schema.DefaultWeight}, got.Weights)

	saved, err := codec.UnmarshalLocal(local.blob)
	require.NoError(t, err)
	assert.Empty(t, saved.Ratings)
}
