package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ludo_broker/internal/domain"
	"ludo_broker/internal/logger"
	"ludo_broker/internal/metrics"
	"ludo_broker/internal/repository"
	"ludo_broker/internal/store"
)

const (
	saveQueueSize = 16
	saveTimeout   = 5 * time.Second
)

// Service is the matchmaking orchestrator. It binds connection lifecycle
// events and protocol requests to the challenge pool and match registry,
// persists the match set after every mutation and pushes the refreshed views
// to every connection.
//
// A single mutex serializes every read-modify-write across pool and
// registry. Broadcast pushes happen inside the locked region: Sender.Send
// only enqueues onto per-connection buffers, so this keeps successive
// broadcasts in mutation order without blocking on I/O.
type Service struct {
	mu      sync.Mutex
	pool    *ChallengePool
	matches *MatchRegistry

	sender  Sender
	store   store.SnapshotStore
	archive *repository.MatchArchiveRepository

	saveCh   chan []domain.Match
	quit     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	log *slog.Logger
}

func NewService(sender Sender, st store.SnapshotStore) *Service {
	return &Service{
		pool:    NewChallengePool(),
		matches: NewMatchRegistry(),
		sender:  sender,
		store:   st,
		saveCh:  make(chan []domain.Match, saveQueueSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		log:     logger.With("component", "broker"),
	}
}

// SetArchive enables best-effort match history rows. Optional.
func (s *Service) SetArchive(repo *repository.MatchArchiveRepository) {
	s.archive = repo
}

// Start recovers the match set from the snapshot store and launches the
// snapshot writer. A missing or corrupt snapshot means starting empty;
// challenges never survive a restart.
func (s *Service) Start(ctx context.Context) {
	matches, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("snapshot load failed, starting with empty match set", "error", err)
	} else {
		s.mu.Lock()
		s.matches.Restore(matches)
		s.mu.Unlock()
		s.log.Info("snapshot loaded", "matches", len(matches))
	}

	go s.snapshotWriter()
}

// Stop terminates the snapshot writer after draining pending writes.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	select {
	case <-s.done:
	case <-time.After(saveTimeout):
		s.log.Warn("snapshot writer did not drain in time")
	}
}

// OnConnect sends the newly connected client its catch-up snapshot: the
// personalized challenge list and the global match summary list.
func (s *Service) OnConnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info("client connected", "conn", connID)
	s.send(connID, Message{Type: EventUpdateChallenges, Payload: s.pool.View(connID)})
	s.send(connID, Message{Type: EventUpdateMatches, Payload: s.matches.Summaries()})
}

// OnDisconnect withdraws the connection's challenge, tears down every match
// it participates in, notifies the former opponents, persists and
// broadcasts. Safe to process more than once for the same connection.
func (s *Service) OnDisconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	withdrawn := s.pool.WithdrawAllOwnedBy(connID)
	ended := s.matches.RemoveInvolving(connID)

	s.log.Info("client disconnected", "conn", connID,
		"withdrawn_challenges", len(withdrawn), "ended_matches", len(ended))

	for _, m := range ended {
		notice := Message{
			Type:    EventGameEnd,
			Payload: map[string]any{"message": "Opponent left the match."},
		}
		// the disconnecting side is already gone; that send is inert
		s.send(m.PlayerA.ID, notice)
		s.send(m.PlayerB.ID, notice)
		s.sender.DropRoom(m.ID)
		metrics.MatchesEnded.Inc()
		s.archiveEnded(m, "opponent_left")
	}

	s.persistLocked()
	s.broadcastLocked()
}

// OnMessage dispatches one inbound client request. Malformed payloads are
// dropped; a panic in a handler is contained so one bad request cannot take
// the broker down for every other connection.
func (s *Service) OnMessage(connID string, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("request handling panicked", "conn", connID, "panic", r)
		}
	}()

	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.log.Warn("malformed request", "conn", connID, "error", err)
		return
	}

	switch msg.Type {
	case EventChallengeCreate:
		s.handleCreate(connID, msg)
	case EventChallengeAccept:
		s.handleAccept(connID, msg)
	case EventJoinRoom:
		s.handleJoinRoom(connID, msg)
	case EventRoomCode:
		s.handleRoomCode(connID, msg)
	default:
		s.log.Debug("unknown request type", "conn", connID, "type", msg.Type)
	}
}

func (s *Service) handleCreate(connID string, msg inboundMessage) {
	name := msg.Name
	if name == "" {
		name = defaultName(connID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matches.HasParticipant(connID) {
		s.log.Info("challenge rejected", "conn", connID, "error", ErrAlreadyInMatch)
		metrics.ChallengesRejected.WithLabelValues(rejectReason(ErrAlreadyInMatch)).Inc()
		s.ack(connID, EventChallengeCreate, false)
		return
	}

	ch, err := s.pool.Create(connID, name, coerceAmount(msg.Amount))
	if err != nil {
		s.log.Info("challenge rejected", "conn", connID, "error", err)
		metrics.ChallengesRejected.WithLabelValues(rejectReason(err)).Inc()
		s.ack(connID, EventChallengeCreate, false)
		return
	}

	metrics.ChallengesCreated.Inc()
	s.log.Info("challenge created", "challenge", ch.ID, "owner", connID, "amount", ch.Amount)

	s.send(connID, Message{Type: EventYourChallengeID, Payload: ch.ID})
	s.broadcastLocked()
	s.ack(connID, EventChallengeCreate, true)
}

func (s *Service) handleAccept(connID string, msg inboundMessage) {
	name := msg.Name
	if name == "" {
		name = defaultName(connID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matches.HasParticipant(connID) {
		s.log.Info("accept rejected", "conn", connID, "challenge", msg.ChallengeID, "error", ErrAlreadyInMatch)
		metrics.ChallengesRejected.WithLabelValues(rejectReason(ErrAlreadyInMatch)).Inc()
		s.ack(connID, EventChallengeAccept, false)
		return
	}

	ch, err := s.pool.Accept(msg.ChallengeID, connID)
	if err != nil {
		s.log.Info("accept rejected", "conn", connID, "challenge", msg.ChallengeID, "error", err)
		metrics.ChallengesRejected.WithLabelValues(rejectReason(err)).Inc()
		s.ack(connID, EventChallengeAccept, false)
		return
	}

	m := s.matches.Form(ch, connID, name)
	metrics.MatchesFormed.Inc()

	// the acceptor's own open challenge, if any, dies with the pairing:
	// a matched connection must never be pulled into a second match
	s.pool.WithdrawAllOwnedBy(connID)
	s.log.Info("match formed", "match", m.ID,
		"player_a", m.PlayerA.ID, "player_b", m.PlayerB.ID, "amount", m.Amount)

	s.persistLocked()
	s.broadcastLocked()

	found := Message{
		Type: EventMatchFound,
		Payload: map[string]any{
			"roomId":            m.ID,
			"generatedRoomCode": m.GeneratedRoomCode,
		},
	}
	s.send(ch.CreatedBy, found)
	s.send(connID, found)
	s.ack(connID, EventChallengeAccept, true)
}

func (s *Service) handleJoinRoom(connID string, msg inboundMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches.Find(msg.RoomID)
	if !ok {
		s.log.Info("room not found", "conn", connID, "room", msg.RoomID)
		s.send(connID, Message{Type: EventRoomNotFound})
		return
	}

	s.log.Info("room joined", "conn", connID, "room", m.ID, "user", msg.UserName)
	s.sender.Join(m.ID, connID)
	s.pushRoomState(m)
}

func (s *Service) handleRoomCode(connID string, msg inboundMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches.SetRoomCode(msg.RoomID, msg.Code)
	if !ok {
		// unknown room: the match is already gone, nothing to update
		return
	}

	s.log.Info("room code reported", "conn", connID, "room", m.ID)
	s.persistLocked()
	s.pushRoomState(m)
}

// pushRoomState sends the room-scoped state message to exactly the
// connections that joined the match's room.
func (s *Service) pushRoomState(m domain.Match) {
	data, err := json.Marshal(Message{
		Type: EventRoomStateUpdate,
		Payload: map[string]any{
			"players":           []domain.Player{m.PlayerA, m.PlayerB},
			"generatedRoomCode": m.GeneratedRoomCode,
		},
	})
	if err != nil {
		s.log.Error("room state marshal failed", "error", err)
		return
	}
	s.sender.SendRoom(m.ID, data)
}

// broadcastLocked recomputes and pushes the full challenge list
// (personalized per recipient) and the full match summary list to every
// connection. Caller must hold s.mu.
func (s *Service) broadcastLocked() {
	summaryData, err := json.Marshal(Message{Type: EventUpdateMatches, Payload: s.matches.Summaries()})
	if err != nil {
		s.log.Error("match summary marshal failed", "error", err)
		return
	}

	for _, connID := range s.sender.Connections() {
		s.send(connID, Message{Type: EventUpdateChallenges, Payload: s.pool.View(connID)})
		s.sender.Send(connID, summaryData)
	}
}

// persistLocked queues the current match set for the snapshot writer.
// Latest-wins: when the writer falls behind, a stale pending snapshot is
// replaced rather than blocking the mutation path. Caller must hold s.mu.
func (s *Service) persistLocked() {
	snap := s.matches.All()
	select {
	case s.saveCh <- snap:
	default:
		select {
		case <-s.saveCh:
		default:
		}
		select {
		case s.saveCh <- snap:
		default:
		}
	}
}

func (s *Service) snapshotWriter() {
	defer close(s.done)

	write := func(snap []domain.Match) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.store.Save(ctx, snap); err != nil {
			metrics.SnapshotWriteFailures.Inc()
			s.log.Error("snapshot write failed", "matches", len(snap), "error", err)
		}
	}

	for {
		select {
		case snap := <-s.saveCh:
			write(snap)
		case <-s.quit:
			// drain whatever is still queued before exiting
			for {
				select {
				case snap := <-s.saveCh:
					write(snap)
				default:
					return
				}
			}
		}
	}
}

// archiveEnded records a torn-down match in the history table, best-effort.
func (s *Service) archiveEnded(m domain.Match, reason string) {
	if s.archive == nil {
		return
	}

	rec := &domain.MatchRecord{
		MatchID:     m.ID,
		PlayerAID:   m.PlayerA.ID,
		PlayerAName: m.PlayerA.Name,
		PlayerBID:   m.PlayerB.ID,
		PlayerBName: m.PlayerB.Name,
		Amount:      m.Amount,
		RoomCode:    m.GeneratedRoomCode,
		Reason:      reason,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.archive.Create(ctx, rec); err != nil {
			s.log.Error("match archive failed", "match", rec.MatchID, "error", err)
		}
	}()
}

func (s *Service) send(connID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("message marshal failed", "type", msg.Type, "error", err)
		return
	}
	s.sender.Send(connID, data)
}

func (s *Service) ack(connID, event string, ok bool) {
	s.send(connID, Message{
		Type:    EventAck,
		Payload: map[string]any{"event": event, "ok": ok},
	})
}

// defaultName derives a display name from the connection id for clients
// that never sent one.
func defaultName(connID string) string {
	if len(connID) > 4 {
		return "Player_" + connID[:4]
	}
	return "Player_" + connID
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateChallenge):
		return "duplicate"
	case errors.Is(err, ErrChallengeNotFound):
		return "not_found"
	case errors.Is(err, ErrSelfAccept):
		return "self_accept"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrAlreadyInMatch):
		return "already_in_match"
	default:
		return "other"
	}
}
