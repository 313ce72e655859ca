// Package session owns the bearer token lifecycle for one signed-in
// user. The store is the single process-wide holder of the token and
// the detected role: readers subscribe to changes instead of re-reading
// persisted state ad hoc, so no two components can cache diverging
// snapshots. Only the token string and the role name are ever
// persisted, in a JSON dotfile in the user's home directory; both are
// cleared on logout.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/types"
)

// DotFile is the per-user state file, relative to the home directory.
const DotFile = ".classroomconnectrc"

// State is a snapshot of the session. Profile is fetched fresh on
// login and kept in memory only.
type State struct {
	Token   string             `json:"token,omitempty"`
	Role    types.Role         `json:"role,omitempty"`
	Gateway string             `json:"gateway,omitempty"`
	Profile *types.UserProfile `json:"-"`
}

// LoggedIn reports whether the session holds a token. The token may
// still have expired upstream; the first 401 surfaces that.
func (s State) LoggedIn() bool { return s.Token != "" }

// Store is the session lifecycle: Init hydrates from the dotfile,
// Login verifies a token and detects the global role exactly once,
// Logout clears everything.
type Store struct {
	mu          sync.Mutex
	path        string
	state       State
	subscribers []chan State
	adminEmails []string
	log         *logrus.Logger

	// newClient builds the API client for a token; tests swap it for a
	// client aimed at a stub server.
	newClient func(token string) *classroom.Client
}

// NewStore builds a store persisting to path; an empty path means the
// dotfile in the user's home directory. adminEmails is the
// deployment's allow-list, supplied by configuration.
func NewStore(path string, adminEmails []string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to find home directory: %v", err)
		}
		path = filepath.Join(home, DotFile)
	}
	return &Store{
		path:        path,
		adminEmails: adminEmails,
		log:         logrus.StandardLogger(),
		newClient:   classroom.NewClient,
	}, nil
}

// SetClientFactory overrides how API clients are built. Used by tests
// and by callers pointing at non-default endpoints.
func (s *Store) SetClientFactory(factory func(token string) *classroom.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newClient = factory
}

// Init hydrates the store from the dotfile. A missing file is a
// logged-out session, not an error; an unreadable one is surfaced so
// the user can delete it and log in again.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %v", s.path, err)
	}
	var persisted State
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return fmt.Errorf("parsing %s: %v (try deleting it and logging in again)", s.path, err)
	}
	if persisted.Role != "" {
		persisted.Role = types.ParseRole(string(persisted.Role))
	}
	s.state = persisted
	return nil
}

// Login verifies the token by fetching the user's profile, runs global
// role detection once, persists the result, and notifies subscribers.
// The cached role is not re-validated until the next login.
func (s *Store) Login(ctx context.Context, token string) (State, error) {
	s.mu.Lock()
	client := s.newClient(token)
	s.mu.Unlock()

	profile, err := client.GetMyProfile(ctx)
	if err != nil {
		return State{}, err
	}
	role := client.DetectRole(ctx, s.adminEmails)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Token: token, Role: role, Gateway: s.state.Gateway, Profile: profile}
	if err := s.persistLocked(); err != nil {
		return State{}, err
	}
	s.notifyLocked()
	return s.state, nil
}

// Logout clears the session and removes the dotfile.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	s.notifyLocked()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %v", s.path, err)
	}
	return nil
}

// Current returns the session snapshot.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetGateway records the dashboard gateway host used for the CLI
// version check, alongside the token in the dotfile.
func (s *Store) SetGateway(host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Gateway = host
	return s.persistLocked()
}

// Client returns an API client for the current token, or nil when
// logged out.
func (s *Store) Client() *classroom.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Token == "" {
		return nil
	}
	return s.newClient(s.state.Token)
}

// Subscribe returns a channel receiving each state change. The channel
// is buffered and slow subscribers miss intermediate states rather
// than blocking the store.
func (s *Store) Subscribe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan State, 1)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subscribers {
		select {
		case ch <- s.state:
		default:
			// drop the stale value and replace it
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.state:
			default:
			}
		}
	}
}

func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(&s.state, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding session file: %v", err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("writing %s: %v", s.path, err)
	}
	return nil
}
