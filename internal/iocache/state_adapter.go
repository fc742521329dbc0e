package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// Fixed keys in the state table.
const (
	StateKey    = "decisionMatrix"
	ShareURLKey = "shareURL"
)

// LocalState adapts a CacheStore to the session's local store contract.
type LocalState struct {
	store contract.CacheStore
	now   func() time.Time
}

var _ contract.StateStore = &LocalState{} // Compile-time check

// NewLocalState returns a StateStore that keeps the matrix under StateKey.
func NewLocalState(store contract.CacheStore) *LocalState {
	return &LocalState{store: store, now: time.Now}
}

// ReadState implements the StateStore interface.
func (ls *LocalState) ReadState() (string, bool, error) {
	value, _, _, err := ls.store.Get(StateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", StateKey, err)
	}
	return string(value), true, nil
}

// WriteState implements the StateStore interface.
func (ls *LocalState) WriteState(blob string) error {
	return ls.store.Set(StateKey, []byte(blob), schema.StateVersion, ls.now().Unix())
}

// URLFragmentStore keeps the current share URL in the state table.
// Replacing the fragment rewrites the stored URL and never navigates anywhere.
type URLFragmentStore struct {
	store   contract.CacheStore
	baseURL string
	current string // last URL written in this process
	now     func() time.Time
}

var (
	_ contract.FragmentStore = &URLFragmentStore{} // Compile-time check
	_ contract.LinkProvider  = &URLFragmentStore{} // Compile-time check
)

// NewURLFragmentStore returns a fragment store whose links start with baseURL.
func NewURLFragmentStore(store contract.CacheStore, baseURL string) *URLFragmentStore {
	if baseURL == "" {
		baseURL = contract.DefaultShareURL
	}
	base, _, _ := strings.Cut(baseURL, "#")
	return &URLFragmentStore{store: store, baseURL: base, now: time.Now}
}

// ReadFragment implements the FragmentStore interface.
func (fs *URLFragmentStore) ReadFragment() (string, error) {
	link, err := fs.currentURL()
	if err != nil {
		return "", err
	}
	_, fragment, _ := strings.Cut(link, "#")
	return fragment, nil
}

// ReplaceFragment implements the FragmentStore interface.
func (fs *URLFragmentStore) ReplaceFragment(fragment string) error {
	return fs.setURL(fs.baseURL + "#" + strings.TrimPrefix(fragment, "#"))
}

// ShareLink implements the LinkProvider interface.
func (fs *URLFragmentStore) ShareLink() (string, error) {
	link, err := fs.currentURL()
	if err != nil {
		return "", err
	}
	if link == "" {
		return fs.baseURL, nil
	}
	return link, nil
}

// SetURL stores a pasted share link or a bare fragment as the current URL.
// The fragment is kept and the configured base URL is used.
func (fs *URLFragmentStore) SetURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if _, fragment, found := strings.Cut(raw, "#"); found {
		raw = fragment
	}
	return fs.ReplaceFragment(raw)
}

func (fs *URLFragmentStore) currentURL() (string, error) {
	if fs.current != "" {
		return fs.current, nil
	}
	value, _, _, err := fs.store.Get(ShareURLKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", ShareURLKey, err)
	}
	return string(value), nil
}

func (fs *URLFragmentStore) setURL(link string) error {
	fs.current = link
	return fs.store.Set(ShareURLKey, []byte(link), schema.StateVersion, fs.now().Unix())
}
