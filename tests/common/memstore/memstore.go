//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for usecase tests. Each
// transaction runs under one store-wide lock and is rolled back by restoring
// a snapshot when fn fails, which is enough to exercise all-or-nothing
// behaviour without a database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	nextID   int64
	slots    map[slot.Key]*slot.TimeSlot
	policies map[int64]*policy.OperatingPolicy
	messages map[uuid.UUID]*outbox.Message
	order    []uuid.UUID
	genReqs  map[int64]*job.GenerationRequest
	cdReqs   map[int64]*job.ClosedDateUpdateRequest
}

type Store struct {
	mu sync.Mutex
	st state

	// FailWith makes the next transaction fail before fn runs.
	FailWith error
	// Commits counts successful write transactions.
	Commits int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{st: state{
		slots:    make(map[slot.Key]*slot.TimeSlot),
		policies: make(map[int64]*policy.OperatingPolicy),
		messages: make(map[uuid.UUID]*outbox.Message),
		genReqs:  make(map[int64]*job.GenerationRequest),
		cdReqs:   make(map[int64]*job.ClosedDateUpdateRequest),
	}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) run(ctx context.Context, write bool, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailWith != nil {
		err := s.FailWith
		s.FailWith = nil
		return err
	}

	snapshot := s.st.clone()
	if err := fn(ctx, &tx{st: &s.st}); err != nil {
		s.st = snapshot
		return err
	}
	if write {
		s.Commits++
	}
	return nil
}

func (st state) clone() state {
	c := state{
		nextID:   st.nextID,
		slots:    make(map[slot.Key]*slot.TimeSlot, len(st.slots)),
		policies: make(map[int64]*policy.OperatingPolicy, len(st.policies)),
		messages: make(map[uuid.UUID]*outbox.Message, len(st.messages)),
		order:    append([]uuid.UUID(nil), st.order...),
		genReqs:  make(map[int64]*job.GenerationRequest, len(st.genReqs)),
		cdReqs:   make(map[int64]*job.ClosedDateUpdateRequest, len(st.cdReqs)),
	}
	for k, v := range st.slots {
		c.slots[k] = copySlot(v)
	}
	for k, v := range st.policies {
		c.policies[k] = copyPolicy(v)
	}
	for k, v := range st.messages {
		c.messages[k] = copyMessage(v)
	}
	for k, v := range st.genReqs {
		cp := *v
		c.genReqs[k] = &cp
	}
	for k, v := range st.cdReqs {
		cp := *v
		c.cdReqs[k] = &cp
	}
	return c
}

func copySlot(s *slot.TimeSlot) *slot.TimeSlot {
	cp := *s
	return &cp
}

func copyPolicy(p *policy.OperatingPolicy) *policy.OperatingPolicy {
	return policy.ReconstructOperatingPolicy(
		p.ID(), p.RoomID(), p.WeeklySchedule(), p.Recurrence(), p.SlotUnit(),
		p.ClosedDates(), p.CreatedAt(), p.UpdatedAt(),
	)
}

func copyMessage(m *outbox.Message) *outbox.Message {
	cp := *m
	return &cp
}

func (st *state) id() int64 {
	st.nextID++
	return st.nextID
}

// --- seeding and inspection -------------------------------------------------

// PutSlot stores s as-is, assigning an id when it has none.
func (s *Store) PutSlot(ts *slot.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts.ID() == 0 {
		ts.SetID(s.st.id())
	}
	s.st.slots[ts.Key()] = copySlot(ts)
}

func (s *Store) PutPolicy(p *policy.OperatingPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID() == 0 {
		p.SetID(s.st.id())
	}
	s.st.policies[p.RoomID()] = copyPolicy(p)
}

func (s *Store) Slot(key slot.Key) (*slot.TimeSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.st.slots[key]
	if !ok {
		return nil, false
	}
	return copySlot(ts), true
}

// Slots returns every stored slot ordered by room, date and time.
func (s *Store) Slots() []*slot.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.filterSlots(func(*slot.TimeSlot) bool { return true })
}

func (s *Store) Policy(roomID int64) (*policy.OperatingPolicy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.policies[roomID]
	if !ok {
		return nil, false
	}
	return copyPolicy(p), true
}

// Messages returns outbox rows in append order.
func (s *Store) Messages() []*outbox.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*outbox.Message, 0, len(s.st.order))
	for _, id := range s.st.order {
		if m, ok := s.st.messages[id]; ok {
			out = append(out, copyMessage(m))
		}
	}
	return out
}

func (s *Store) Message(id uuid.UUID) (*outbox.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.st.messages[id]
	if !ok {
		return nil, false
	}
	return copyMessage(m), true
}

func (s *Store) GenerationRequest(id int64) (*job.GenerationRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.genReqs[id]
	if !ok {
		return nil, false
	}
	cp := *r
	return &cp, true
}

func (s *Store) ClosedDateRequest(id int64) (*job.ClosedDateUpdateRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.cdReqs[id]
	if !ok {
		return nil, false
	}
	cp := *r
	return &cp, true
}

func (st *state) filterSlots(keep func(*slot.TimeSlot) bool) []*slot.TimeSlot {
	var out []*slot.TimeSlot
	for _, ts := range st.slots {
		if keep(ts) {
			out = append(out, copySlot(ts))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RoomID() != b.RoomID() {
			return a.RoomID() < b.RoomID()
		}
		if a.Date() != b.Date() {
			return a.Date().Before(b.Date())
		}
		return a.StartTime().Before(b.StartTime())
	})
	return out
}

// --- transaction-bound repositories ----------------------------------------

type tx struct {
	st *state
}

func (t *tx) Slots() shared.SlotRepository                           { return slotRepo{t.st} }
func (t *tx) Policies() shared.PolicyRepository                      { return policyRepo{t.st} }
func (t *tx) Outbox() shared.OutboxRepository                        { return outboxRepo{t.st} }
func (t *tx) GenerationRequests() shared.GenerationRequestRepository { return genReqRepo{t.st} }
func (t *tx) ClosedDateRequests() shared.ClosedDateRequestRepository { return cdReqRepo{t.st} }

type slotRepo struct{ st *state }

func (r slotRepo) InsertMissing(_ context.Context, slots []*slot.TimeSlot) (int, error) {
	n := 0
	for _, ts := range slots {
		if _, ok := r.st.slots[ts.Key()]; ok {
			continue
		}
		ts.SetID(r.st.id())
		r.st.slots[ts.Key()] = copySlot(ts)
		n++
	}
	return n, nil
}

func (r slotRepo) FindForUpdate(_ context.Context, key slot.Key) (*slot.TimeSlot, error) {
	ts, ok := r.st.slots[key]
	if !ok {
		return nil, errs.Mark(errs.Newf("slot %s", key), errs.ErrSlotNotFound)
	}
	return copySlot(ts), nil
}

func (r slotRepo) FindManyForUpdate(_ context.Context, roomID int64, date civil.Date, times []civil.TimeOfDay) ([]*slot.TimeSlot, error) {
	want := make(map[civil.TimeOfDay]bool, len(times))
	for _, t := range times {
		want[t] = true
	}
	return r.st.filterSlots(func(ts *slot.TimeSlot) bool {
		return ts.RoomID() == roomID && ts.Date() == date && want[ts.StartTime()]
	}), nil
}

func (r slotRepo) FindByDateForUpdate(_ context.Context, roomID int64, date civil.Date) ([]*slot.TimeSlot, error) {
	return r.st.filterSlots(func(ts *slot.TimeSlot) bool {
		return ts.RoomID() == roomID && ts.Date() == date
	}), nil
}

func (r slotRepo) FindByReservationIDForUpdate(_ context.Context, reservationID int64) ([]*slot.TimeSlot, error) {
	return r.st.filterSlots(func(ts *slot.TimeSlot) bool {
		id := ts.ReservationID()
		return id != nil && *id == reservationID
	}), nil
}

func (r slotRepo) FindExpiredPendingForUpdate(_ context.Context, updatedBefore time.Time, limit int) ([]*slot.TimeSlot, error) {
	out := r.st.filterSlots(func(ts *slot.TimeSlot) bool {
		return ts.Status() == slot.StatusPending && ts.UpdatedAt().Before(updatedBefore)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r slotRepo) ListByRoomAndDate(ctx context.Context, roomID int64, date civil.Date) ([]*slot.TimeSlot, error) {
	return r.FindByDateForUpdate(ctx, roomID, date)
}

func (r slotRepo) CommittedKeys(_ context.Context, roomID int64, start, end civil.Date) ([]slot.Key, error) {
	var keys []slot.Key
	for _, ts := range r.st.filterSlots(func(ts *slot.TimeSlot) bool {
		return ts.RoomID() == roomID && !ts.Date().Before(start) && !ts.Date().After(end) && !ts.IsAvailable()
	}) {
		keys = append(keys, ts.Key())
	}
	return keys, nil
}

func (r slotRepo) Save(_ context.Context, ts *slot.TimeSlot) error {
	cur, ok := r.st.slots[ts.Key()]
	if !ok || cur.ID() != ts.ID() {
		return errs.Mark(errs.Newf("slot %d", ts.ID()), errs.ErrSlotNotFound)
	}
	r.st.slots[ts.Key()] = copySlot(ts)
	return nil
}

func (r slotRepo) DeleteBefore(_ context.Context, cutoff civil.Date) (int64, error) {
	var n int64
	for k := range r.st.slots {
		if k.Date.Before(cutoff) {
			delete(r.st.slots, k)
			n++
		}
	}
	return n, nil
}

func (r slotRepo) DeleteAvailableInRange(_ context.Context, roomID int64, start, end civil.Date) (int64, error) {
	var n int64
	for k, ts := range r.st.slots {
		if k.RoomID == roomID && !k.Date.Before(start) && !k.Date.After(end) && ts.IsAvailable() {
			delete(r.st.slots, k)
			n++
		}
	}
	return n, nil
}

type policyRepo struct{ st *state }

func (r policyRepo) Create(_ context.Context, p *policy.OperatingPolicy) (int64, error) {
	if _, ok := r.st.policies[p.RoomID()]; ok {
		return 0, errs.Mark(errs.Newf("room %d", p.RoomID()), errs.ErrPolicyConflict)
	}
	id := r.st.id()
	p.SetID(id)
	r.st.policies[p.RoomID()] = copyPolicy(p)
	return id, nil
}

func (r policyRepo) FindByRoomID(_ context.Context, roomID int64) (*policy.OperatingPolicy, error) {
	p, ok := r.st.policies[roomID]
	if !ok {
		return nil, errs.Mark(errs.Newf("room %d", roomID), errs.ErrPolicyNotFound)
	}
	return copyPolicy(p), nil
}

func (r policyRepo) FindByRoomIDForUpdate(ctx context.Context, roomID int64) (*policy.OperatingPolicy, error) {
	return r.FindByRoomID(ctx, roomID)
}

func (r policyRepo) Update(_ context.Context, p *policy.OperatingPolicy) error {
	if _, ok := r.st.policies[p.RoomID()]; !ok {
		return errs.Mark(errs.Newf("room %d", p.RoomID()), errs.ErrPolicyNotFound)
	}
	r.st.policies[p.RoomID()] = copyPolicy(p)
	return nil
}

func (r policyRepo) ListRoomIDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(r.st.policies))
	for id := range r.st.policies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type outboxRepo struct{ st *state }

func (r outboxRepo) Append(_ context.Context, msg *outbox.Message) error {
	r.st.messages[msg.ID] = copyMessage(msg)
	r.st.order = append(r.st.order, msg.ID)
	return nil
}

func (r outboxRepo) FindByID(_ context.Context, id uuid.UUID) (*outbox.Message, error) {
	m, ok := r.st.messages[id]
	if !ok {
		return nil, errs.Newf("outbox message %s not found", id)
	}
	return copyMessage(m), nil
}

func (r outboxRepo) ListPending(_ context.Context, createdBefore time.Time, limit int) ([]*outbox.Message, error) {
	var out []*outbox.Message
	for _, id := range r.st.order {
		m := r.st.messages[id]
		if m.IsPending() && m.CreatedAt.Before(createdBefore) {
			out = append(out, copyMessage(m))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, msg *outbox.Message) (bool, error) {
	cur, ok := r.st.messages[msg.ID]
	if !ok || !cur.IsPending() {
		return false, nil
	}
	cur.Status = outbox.StatusPublished
	cur.PublishedAt = msg.PublishedAt
	cur.LastError = nil
	return true, nil
}

func (r outboxRepo) RecordFailure(_ context.Context, msg *outbox.Message, cause error, maxRetries int) (bool, error) {
	cur, ok := r.st.messages[msg.ID]
	if !ok || !cur.IsPending() {
		return false, nil
	}
	cur.RecordFailure(cause, maxRetries)
	lastError := *cur.LastError
	msg.Status = cur.Status
	msg.RetryCount = cur.RetryCount
	msg.LastError = &lastError
	return true, nil
}

func (r outboxRepo) DeletePublishedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	kept := r.st.order[:0]
	for _, id := range r.st.order {
		m := r.st.messages[id]
		if m.Status == outbox.StatusPublished && m.PublishedAt != nil && m.PublishedAt.Before(cutoff) {
			delete(r.st.messages, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	r.st.order = kept
	return n, nil
}

type genReqRepo struct{ st *state }

func (r genReqRepo) Create(_ context.Context, req *job.GenerationRequest) (int64, error) {
	req.ID = r.st.id()
	cp := *req
	r.st.genReqs[req.ID] = &cp
	return req.ID, nil
}

func (r genReqRepo) FindByID(_ context.Context, id int64) (*job.GenerationRequest, error) {
	req, ok := r.st.genReqs[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("generation request %d", id), errs.ErrRequestNotFound)
	}
	cp := *req
	return &cp, nil
}

func (r genReqRepo) FindByIDForUpdate(ctx context.Context, id int64) (*job.GenerationRequest, error) {
	return r.FindByID(ctx, id)
}

func (r genReqRepo) ListStalledForUpdate(_ context.Context, before time.Time, limit int) ([]*job.GenerationRequest, error) {
	var out []*job.GenerationRequest
	for _, req := range r.st.genReqs {
		if stalled(req.Tracking, before) {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r genReqRepo) Update(_ context.Context, req *job.GenerationRequest) error {
	if _, ok := r.st.genReqs[req.ID]; !ok {
		return errs.Mark(errs.Newf("generation request %d", req.ID), errs.ErrRequestNotFound)
	}
	cp := *req
	r.st.genReqs[req.ID] = &cp
	return nil
}

func (r genReqRepo) DeleteFinishedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, req := range r.st.genReqs {
		if req.Status.IsFinished() && req.CompletedAt != nil && req.CompletedAt.Before(cutoff) {
			delete(r.st.genReqs, id)
			n++
		}
	}
	return n, nil
}

type cdReqRepo struct{ st *state }

func (r cdReqRepo) Create(_ context.Context, req *job.ClosedDateUpdateRequest) (int64, error) {
	req.ID = r.st.id()
	cp := *req
	r.st.cdReqs[req.ID] = &cp
	return req.ID, nil
}

func (r cdReqRepo) FindByID(_ context.Context, id int64) (*job.ClosedDateUpdateRequest, error) {
	req, ok := r.st.cdReqs[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("closed-date request %d", id), errs.ErrRequestNotFound)
	}
	cp := *req
	return &cp, nil
}

func (r cdReqRepo) FindByIDForUpdate(ctx context.Context, id int64) (*job.ClosedDateUpdateRequest, error) {
	return r.FindByID(ctx, id)
}

func (r cdReqRepo) ListStalledForUpdate(_ context.Context, before time.Time, limit int) ([]*job.ClosedDateUpdateRequest, error) {
	var out []*job.ClosedDateUpdateRequest
	for _, req := range r.st.cdReqs {
		if stalled(req.Tracking, before) {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r cdReqRepo) Update(_ context.Context, req *job.ClosedDateUpdateRequest) error {
	if _, ok := r.st.cdReqs[req.ID]; !ok {
		return errs.Mark(errs.Newf("closed-date request %d", req.ID), errs.ErrRequestNotFound)
	}
	cp := *req
	r.st.cdReqs[req.ID] = &cp
	return nil
}

func (r cdReqRepo) DeleteFinishedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, req := range r.st.cdReqs {
		if req.Status.IsFinished() && req.CompletedAt != nil && req.CompletedAt.Before(cutoff) {
			delete(r.st.cdReqs, id)
			n++
		}
	}
	return n, nil
}

func stalled(t job.Tracking, before time.Time) bool {
	switch t.Status {
	case job.StatusRequested:
		return t.RequestedAt.Before(before)
	case job.StatusInProgress:
		return t.StartedAt != nil && t.StartedAt.Before(before)
	}
	return false
}
