package state

import "github.com/twoem/whiz-pos-apk/pkg/model"

// AddToSyncQueue appends an operation to the queue, assigning a queue
// id if the operation lacks one. This is the only way pending sync work
// is created; it never blocks and never fails. The stored operation is
// returned so callers can hold its queue id.
func (s *Store) AddToSyncQueue(op model.Operation) model.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enqueueLocked(op)
}

func (s *Store) enqueueLocked(op model.Operation) model.Operation {
	if op.QueueID == "" {
		op.QueueID = model.NewQueueID()
	}
	s.syncQueue = append(s.syncQueue, op)
	return op
}

// RemoveSyncedItems removes every queue entry whose queue id matches
// one of the given operations. Matching is by queue id only, never by
// payload content, so a still-pending operation that happens to share a
// record id is never removed by mistake.
func (s *Store) RemoveSyncedItems(items []model.Operation) {
	if len(items) == 0 {
		return
	}
	ids := make(map[string]struct{}, len(items))
	for _, it := range items {
		ids[it.QueueID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.syncQueue[:0]
	for _, op := range s.syncQueue {
		if _, acked := ids[op.QueueID]; !acked {
			kept = append(kept, op)
		}
	}
	s.syncQueue = kept
}

// ClearSyncQueue drops all pending operations. Manual recovery only.
func (s *Store) ClearSyncQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncQueue = nil
}

// Queue returns a copy of the pending operations, in enqueue order.
func (s *Store) Queue() []model.Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Operation(nil), s.syncQueue...)
}

// QueueLen returns the number of pending operations.
func (s *Store) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.syncQueue)
}
