package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokerhands/internal/fileutil"
	"github.com/lox/pokerhands/internal/gameid"
)

// sessionFile is the on-disk layout: one [[round]] table per recorded round.
type sessionFile struct {
	Rounds []Round `toml:"round"`
}

// FileStore writes one TOML session file per game into a directory. Every
// Record rewrites the file atomically, so readers never see a partial session.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "hands"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the session file used for gameID.
func (s *FileStore) Path(gameID string) string {
	return filepath.Join(s.dir, gameID+".toml")
}

func (s *FileStore) Record(ctx context.Context, round Round) error {
	if round.GameID == "" {
		return ErrNoGameID
	}
	if err := gameid.Validate(round.GameID); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(round.GameID)
	if err != nil {
		return err
	}
	if hasSeq(session.Rounds, round.Seq) {
		return fmt.Errorf("%w: game %s seq %d", ErrDuplicateRound, round.GameID, round.Seq)
	}
	session.Rounds = append(session.Rounds, round)

	return fileutil.WriteAtomic(s.Path(round.GameID), 0o644, func(w io.Writer) error {
		if err := toml.NewEncoder(w).Encode(session); err != nil {
			return fmt.Errorf("history: encode session: %w", err)
		}
		return nil
	})
}

func (s *FileStore) List(ctx context.Context, gameID string) ([]Round, error) {
	if err := gameid.Validate(gameID); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(gameID)
	if err != nil {
		return nil, err
	}
	return session.Rounds, nil
}

func (s *FileStore) load(gameID string) (sessionFile, error) {
	var session sessionFile
	_, err := toml.DecodeFile(s.Path(gameID), &session)
	if errors.Is(err, fs.ErrNotExist) {
		return sessionFile{}, nil
	}
	if err != nil {
		return sessionFile{}, fmt.Errorf("history: decode %s: %w", s.Path(gameID), err)
	}
	return session, nil
}
