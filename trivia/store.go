package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	bolt "go.etcd.io/bbolt"
)

// Fixed identifiers for the three logical records.
const (
	recordRounds  = "rounds"
	recordPlayers = "players"
	recordTeams   = "teams"
)

// SaveStatus is the coarse result of a persistence attempt.
type SaveStatus int

const (
	// SaveFailed means nothing was written; in-memory state is intact
	// and the user should be warned that changes may be lost.
	SaveFailed SaveStatus = iota
	// SaveDegraded means the record was written with heavy content
	// (media attachments) stripped to fit the storage tier.
	SaveDegraded
	// SaveOK means the record was persisted in full.
	SaveOK
)

// SaveOutcome reports how saving one record ended. Callers surface
// degraded and failed outcomes to the facilitator; play continues either
// way.
type SaveOutcome struct {
	Status SaveStatus
	Record string
	Reason string
}

func (o SaveOutcome) OK() bool {
	return o.Status == SaveOK
}

func saved(record string) SaveOutcome {
	return SaveOutcome{Status: SaveOK, Record: record}
}

func degraded(record, reason string) SaveOutcome {
	return SaveOutcome{Status: SaveDegraded, Record: record, Reason: reason}
}

func failed(record, reason string) SaveOutcome {
	return SaveOutcome{Status: SaveFailed, Record: record, Reason: reason}
}

// Store durably keeps the three records. Saves are best-effort and never
// panic or abort the session; loads report absence as (nil, nil) so the
// caller can substitute defaults.
type Store interface {
	SaveRounds(ctx context.Context, rounds *Rounds) SaveOutcome
	LoadRounds(ctx context.Context) (*Rounds, error)
	SavePlayers(ctx context.Context, players []*Player) SaveOutcome
	LoadPlayers(ctx context.Context) ([]*Player, error)
	SaveTeams(ctx context.Context, teams []*Team) SaveOutcome
	LoadTeams(ctx context.Context) ([]*Team, error)
	Close() error
}

// StoreOptions configures a TieredStore.
type StoreOptions struct {
	// Fs backs the key-value tier (roster records and, when the object
	// tier is unavailable, the rounds record). Defaults to the OS
	// filesystem.
	Fs afero.Fs
	// Dir is the directory for the key-value tier's record files.
	Dir string
	// BoltPath locates the object-tier database file. Empty disables
	// the object tier entirely; rounds then live in the key-value tier.
	BoltPath string
	// Quota caps the byte size of a single key-value record. 0 means
	// unlimited. An oversized rounds record is retried once with all
	// media stripped.
	Quota int64
	// Logf receives diagnostic messages; nil silences them.
	Logf func(format string, args ...any)
}

// TieredStore keeps round content in a transactional object tier (bbolt)
// sized for embedded media payloads, and the small roster records in a
// plain key-value tier of JSON files. When the object tier cannot be
// opened the rounds record degrades to the key-value tier, where a quota
// overflow triggers the historical strip-media-and-retry path.
type TieredStore struct {
	fs    afero.Fs
	dir   string
	quota int64
	db    *bolt.DB
	logf  func(format string, args ...any)
}

var recordsBucket = []byte("records")

// NewTieredStore opens both tiers. A missing or unopenable object tier is
// not an error; the store runs degraded on the key-value tier alone.
func NewTieredStore(opts StoreOptions) (*TieredStore, error) {
	s := &TieredStore{
		fs:    opts.Fs,
		dir:   opts.Dir,
		quota: opts.Quota,
		logf:  opts.Logf,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if opts.BoltPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.BoltPath), 0o755); err != nil {
			s.logf("STORE: Object tier unavailable: %v", err)
		} else if db, err := bolt.Open(opts.BoltPath, 0o600, &bolt.Options{Timeout: time.Second}); err != nil {
			s.logf("STORE: Object tier unavailable: %v", err)
		} else {
			err := db.Update(func(tx *bolt.Tx) error {
				_, err := tx.CreateBucketIfNotExists(recordsBucket)
				return err
			})
			if err != nil {
				s.logf("STORE: Object tier unavailable: %v", err)
				_ = db.Close()
			} else {
				s.db = db
			}
		}
	}

	return s, nil
}

func (s *TieredStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRounds writes the rounds record to the object tier, falling back to
// the key-value tier when the object tier is missing or fails. On quota
// overflow in the key-value tier the save is retried once with every
// media attachment stripped, yielding a degraded outcome.
func (s *TieredStore) SaveRounds(ctx context.Context, rounds *Rounds) SaveOutcome {
	data, err := json.Marshal(rounds)
	if err != nil {
		return failed(recordRounds, err.Error())
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(recordsBucket).Put([]byte(recordRounds), data)
		})
		if err == nil {
			return saved(recordRounds)
		}
		s.logf("STORE: Object tier write failed, falling back: %v", err)
	}

	if s.quota > 0 && int64(len(data)) > s.quota {
		stripped := rounds.Clone()
		removed := stripped.StripMedia()
		data, err = json.Marshal(stripped)
		if err != nil {
			return failed(recordRounds, err.Error())
		}
		if int64(len(data)) > s.quota {
			return failed(recordRounds, "record exceeds storage quota even without media")
		}
		if err := s.writeKV(recordRounds, data); err != nil {
			return failed(recordRounds, err.Error())
		}
		return degraded(recordRounds,
			fmt.Sprintf("storage quota exceeded; saved without %d media attachment(s)", removed))
	}

	if err := s.writeKV(recordRounds, data); err != nil {
		return failed(recordRounds, err.Error())
	}
	return saved(recordRounds)
}

// LoadRounds prefers the object tier and falls back to the key-value
// tier. Absence in both is (nil, nil).
func (s *TieredStore) LoadRounds(ctx context.Context) (*Rounds, error) {
	if s.db != nil {
		var data []byte
		err := s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(recordsBucket).Get([]byte(recordRounds)); v != nil {
				data = append([]byte{}, v...)
			}
			return nil
		})
		if err == nil && data != nil {
			rounds := &Rounds{}
			if err := json.Unmarshal(data, rounds); err != nil {
				s.logf("STORE: Discarding malformed rounds record: %v", err)
				return nil, nil
			}
			return rounds, nil
		}
		if err != nil {
			s.logf("STORE: Object tier read failed, falling back: %v", err)
		}
	}

	data, err := s.readKV(recordRounds)
	if err != nil || data == nil {
		return nil, nil
	}
	rounds := &Rounds{}
	if err := json.Unmarshal(data, rounds); err != nil {
		s.logf("STORE: Discarding malformed rounds record: %v", err)
		return nil, nil
	}
	return rounds, nil
}

func (s *TieredStore) SavePlayers(ctx context.Context, players []*Player) SaveOutcome {
	return s.saveSmall(recordPlayers, players)
}

func (s *TieredStore) LoadPlayers(ctx context.Context) ([]*Player, error) {
	var players []*Player
	if err := s.loadSmall(recordPlayers, &players); err != nil {
		return nil, nil
	}
	return players, nil
}

func (s *TieredStore) SaveTeams(ctx context.Context, teams []*Team) SaveOutcome {
	return s.saveSmall(recordTeams, teams)
}

func (s *TieredStore) LoadTeams(ctx context.Context) ([]*Team, error) {
	var teams []*Team
	if err := s.loadSmall(recordTeams, &teams); err != nil {
		return nil, nil
	}
	return teams, nil
}

// saveSmall writes a roster record to the key-value tier. Roster records
// carry no board media, so there is no strip-and-retry path; an overflow
// is an outright failure.
func (s *TieredStore) saveSmall(record string, v any) SaveOutcome {
	data, err := json.Marshal(v)
	if err != nil {
		return failed(record, err.Error())
	}
	if s.quota > 0 && int64(len(data)) > s.quota {
		return failed(record, "record exceeds storage quota")
	}
	if err := s.writeKV(record, data); err != nil {
		return failed(record, err.Error())
	}
	return saved(record)
}

func (s *TieredStore) loadSmall(record string, v any) error {
	data, err := s.readKV(record)
	if err != nil || data == nil {
		return fmt.Errorf("record %s absent", record)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logf("STORE: Discarding malformed %s record: %v", record, err)
		return err
	}
	return nil
}

func (s *TieredStore) kvPath(record string) string {
	return filepath.Join(s.dir, record+".json")
}

func (s *TieredStore) writeKV(record string, data []byte) error {
	return afero.WriteFile(s.fs, s.kvPath(record), data, 0o644)
}

func (s *TieredStore) readKV(record string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.kvPath(record))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
