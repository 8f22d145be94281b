package trivia

import (
	"context"
	"sync"
)

// Saver is the write-behind persistence pump. Mutating components queue
// snapshots and return immediately; a single goroutine performs the actual
// writes, so the board never waits on storage. A later snapshot for the
// same record supersedes an earlier one still waiting (last-write-wins,
// matching the storage layer's own semantics).
type Saver struct {
	store  Store
	notify func(SaveOutcome)

	mu      sync.Mutex
	pending map[string]func(context.Context) SaveOutcome
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// NewSaver starts the pump. notify receives the outcome of every save and
// may be nil; it is called from the saver goroutine.
func NewSaver(store Store, notify func(SaveOutcome)) *Saver {
	s := &Saver{
		store:   store,
		notify:  notify,
		pending: make(map[string]func(context.Context) SaveOutcome),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// QueueRounds schedules the rounds record. The snapshot must already be
// disjoint from live state.
func (s *Saver) QueueRounds(rounds *Rounds) {
	s.queue(recordRounds, func(ctx context.Context) SaveOutcome {
		return s.store.SaveRounds(ctx, rounds)
	})
}

// QueuePlayers schedules the player roster record.
func (s *Saver) QueuePlayers(players []*Player) {
	s.queue(recordPlayers, func(ctx context.Context) SaveOutcome {
		return s.store.SavePlayers(ctx, players)
	})
}

// QueueTeams schedules the team roster record.
func (s *Saver) QueueTeams(teams []*Team) {
	s.queue(recordTeams, func(ctx context.Context) SaveOutcome {
		return s.store.SaveTeams(ctx, teams)
	})
}

func (s *Saver) queue(record string, save func(context.Context) SaveOutcome) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending[record] = save
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close drains any queued saves and stops the pump.
func (s *Saver) Close() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}

func (s *Saver) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.done:
			s.drain()
			return
		}
	}
}

func (s *Saver) drain() {
	for {
		s.mu.Lock()
		var record string
		var save func(context.Context) SaveOutcome
		for r, fn := range s.pending {
			record, save = r, fn
			break
		}
		if save != nil {
			delete(s.pending, record)
		}
		s.mu.Unlock()

		if save == nil {
			return
		}
		outcome := save(context.Background())
		if s.notify != nil {
			s.notify(outcome)
		}
	}
}
