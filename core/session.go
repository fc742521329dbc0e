package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/decider/internal/codec"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// Notices shown to the user by a Session.
const (
	NoticeReset          = "Matrix reset successfully"
	NoticeEmptyInput     = "Please add options and criteria first"
	NoticeFragmentFailed = "Failed to load data from URL"
	NoticeLocalFailed    = "Failed to load saved data"
)

// Session owns one matrix and the collaborators it is saved to and rendered by.
// It is not safe for concurrent use.
type Session struct {
	matrix    *Matrix
	fragments contract.FragmentStore
	local     contract.StateStore
	renderer  contract.Renderer
	notifier  contract.Notifier
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMatrix sets the matrix the session operates on.
func WithMatrix(m *Matrix) SessionOption {
	return func(s *Session) { s.matrix = m }
}

// WithFragmentStore sets where the encoded state is shared.
func WithFragmentStore(fs contract.FragmentStore) SessionOption {
	return func(s *Session) { s.fragments = fs }
}

// WithStateStore sets the local store the state is written to.
func WithStateStore(ss contract.StateStore) SessionOption {
	return func(s *Session) { s.local = ss }
}

// WithRenderer sets the render hook.
func WithRenderer(r contract.Renderer) SessionOption {
	return func(s *Session) { s.renderer = r }
}

// WithNotifier sets where notices go.
func WithNotifier(n contract.Notifier) SessionOption {
	return func(s *Session) { s.notifier = n }
}

// NewSession creates a session. Without WithMatrix it starts from an empty matrix.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.matrix == nil {
		s.matrix = NewMatrix()
	}
	return s
}

// Matrix returns the underlying matrix for read access.
func (s *Session) Matrix() *Matrix {
	return s.matrix
}

// View returns the current view-model.
func (s *Session) View() schema.MatrixView {
	return BuildView(s.matrix)
}

// AddOption adds an option and saves.
func (s *Session) AddOption(name string) (string, error) {
	id := s.matrix.AddOption(name)
	return id, s.Save()
}

// RemoveOption removes an option, renders and saves.
func (s *Session) RemoveOption(id string) error {
	s.matrix.RemoveOption(id)
	return s.renderAndSave()
}

// AddCriterion adds a criterion and saves.
func (s *Session) AddCriterion(name string, weight float64) (string, error) {
	id := s.matrix.AddCriterion(name, weight)
	return id, s.Save()
}

// RemoveCriterion removes a criterion, renders and saves.
func (s *Session) RemoveCriterion(id string) error {
	s.matrix.RemoveCriterion(id)
	return s.renderAndSave()
}

// UpdateOptionName renames an option. Unknown ids do not save.
func (s *Session) UpdateOptionName(id, name string) (bool, error) {
	if !s.matrix.UpdateOptionName(id, name) {
		return false, nil
	}
	return true, s.Save()
}

// UpdateCriterionName renames a criterion. Unknown ids do not save.
func (s *Session) UpdateCriterionName(id, name string) (bool, error) {
	if !s.matrix.UpdateCriterionName(id, name) {
		return false, nil
	}
	return true, s.Save()
}

// UpdateWeight coerces raw input into a weight and saves.
func (s *Session) UpdateWeight(criterionID, raw string) error {
	s.matrix.UpdateWeight(criterionID, raw)
	return s.Save()
}

// UpdateRating coerces raw input into a rating and saves.
func (s *Session) UpdateRating(optionID, criterionID, raw string) error {
	s.matrix.UpdateRating(optionID, criterionID, raw)
	return s.Save()
}

// Reset replaces the matrix with the defaults.
func (s *Session) Reset() error {
	s.matrix.Clear()
	s.matrix.SeedDefaults()
	if err := s.renderAndSave(); err != nil {
		return err
	}
	s.notify(schema.InfoNotice, NoticeReset)
	return nil
}

// Results calculates the ranked results.
func (s *Session) Results() ([]schema.Result, error) {
	results, err := CalculateResults(s.matrix)
	if errors.Is(err, ErrEmptyInput) {
		s.notify(schema.WarnNotice, NoticeEmptyInput)
	}
	return results, err
}

// LoadFromFragment applies the state encoded in the current fragment.
// It reports whether anything was applied; a malformed fragment leaves the matrix untouched.
func (s *Session) LoadFromFragment() (bool, error) {
	if s.fragments == nil {
		return false, nil
	}
	fragment, err := s.fragments.ReadFragment()
	if err != nil {
		return false, fmt.Errorf("read fragment: %w", err)
	}
	if strings.TrimPrefix(fragment, "#") == "" {
		return false, nil
	}
	p, err := codec.DecodeState(fragment)
	if err != nil {
		s.notify(schema.ErrorNotice, NoticeFragmentFailed)
		return false, err
	}
	s.matrix.Apply(p)
	return !p.Empty(), nil
}

// LoadFromLocal applies the state kept in the local store.
func (s *Session) LoadFromLocal() (bool, error) {
	if s.local == nil {
		return false, nil
	}
	blob, ok, err := s.local.ReadState()
	if err != nil {
		return false, fmt.Errorf("read local state: %w", err)
	}
	if !ok || blob == "" {
		return false, nil
	}
	p, err := codec.UnmarshalLocal(blob)
	if err != nil {
		s.notify(schema.ErrorNotice, NoticeLocalFailed)
		return false, err
	}
	s.matrix.Apply(p)
	return !p.Empty(), nil
}

// Init loads the fragment, then the local store, then falls back to the defaults.
// Load failures have already been reported as notices and do not stop Init.
func (s *Session) Init() error {
	loaded, err := s.LoadFromFragment()
	if err != nil && !errors.Is(err, codec.ErrMalformedPersistedData) {
		return err
	}
	if !loaded {
		if _, err := s.LoadFromLocal(); err != nil && !errors.Is(err, codec.ErrMalformedPersistedData) {
			return err
		}
	}
	if s.matrix.Empty() {
		s.matrix.SeedDefaults()
	}
	return s.renderAndSave()
}

// Load applies a pasted share link or bare fragment over the current matrix,
// drops entries left without an option or criterion, and saves.
func (s *Session) Load(fragment string) error {
	if i := strings.IndexByte(fragment, '#'); i >= 0 {
		fragment = fragment[i+1:]
	}
	p, err := codec.DecodeState(fragment)
	if err != nil {
		s.notify(schema.ErrorNotice, NoticeFragmentFailed)
		return err
	}
	s.matrix.Apply(p)
	s.matrix.Prune()
	return s.renderAndSave()
}

// Fragment returns the current state encoded for a URL fragment.
func (s *Session) Fragment() (string, error) {
	return codec.EncodeState(s.matrix.Snapshot())
}

// ShareLink returns the full share URL when the fragment store can build one,
// and otherwise just the fragment with a leading '#'.
func (s *Session) ShareLink() (string, error) {
	if lp, ok := s.fragments.(contract.LinkProvider); ok {
		return lp.ShareLink()
	}
	fragment, err := s.Fragment()
	if err != nil {
		return "", err
	}
	return "#" + fragment, nil
}

// Save writes the current state to the fragment store and to the local store.
// Both writes are attempted even if the first one fails.
func (s *Session) Save() error {
	state := s.matrix.Snapshot()
	var errs []error
	if s.fragments != nil {
		fragment, err := codec.EncodeState(state)
		if err == nil {
			err = s.fragments.ReplaceFragment(fragment)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("save fragment: %w", err))
		}
	}
	if s.local != nil {
		blob, err := codec.MarshalLocal(state)
		if err == nil {
			err = s.local.WriteState(blob)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("save local state: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) renderAndSave() error {
	if s.renderer != nil {
		if err := s.renderer.Render(BuildView(s.matrix)); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return s.Save()
}

func (s *Session) notify(level schema.NoticeLevel, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}
