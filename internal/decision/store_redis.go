package decision

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	dErrors "arbiter/pkg/domain-errors"
)

const decisionKeyPrefix = "arbiter:decision:"

// RedisStore keeps decision records in Redis so workflow actions survive
// process restarts and can be served by any node. State transitions run
// inside WATCH transactions so concurrent approve/reject calls cannot both
// finalize the same decision.
type RedisStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an established client. A zero ttl disables expiry.
func NewRedisStore(client *goredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func decisionKey(id string) string {
	return decisionKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	if rec.Decision.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "decision id is required")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "encode decision record", err)
	}
	if err := s.client.Set(ctx, decisionKey(rec.Decision.ID), payload, s.ttl).Err(); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "decision store unavailable", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	raw, err := s.client.Get(ctx, decisionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Record{}, dErrors.New(dErrors.CodeNotFound, "decision not found")
	}
	if err != nil {
		return Record{}, dErrors.Wrap(dErrors.CodeUnavailable, "decision store unavailable", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, dErrors.Wrap(dErrors.CodeInternal, "decode decision record", err)
	}
	return rec, nil
}

func (s *RedisStore) Finalize(ctx context.Context, id string, res Resolution) (Record, error) {
	return s.transition(ctx, id, func(rec *Record) {
		rec.Resolution = res
	})
}

func (s *RedisStore) Escalate(ctx context.Context, id, approver string) (Record, error) {
	return s.transition(ctx, id, func(rec *Record) {
		rec.Decision.RequiredApprover = approver
	})
}

// transition loads, mutates, and rewrites a pending record under WATCH,
// retrying on contention. Terminal records are left untouched.
func (s *RedisStore) transition(ctx context.Context, id string, mutate func(*Record)) (Record, error) {
	key := decisionKey(id)
	var out Record

	txn := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return dErrors.New(dErrors.CodeNotFound, "decision not found")
		}
		if err != nil {
			return err
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return dErrors.Wrap(dErrors.CodeInternal, "decode decision record", err)
		}
		if rec.Resolution != ResolutionPending {
			return dErrors.New(dErrors.CodeConflict, "decision already finalized")
		}

		mutate(&rec)
		payload, err := json.Marshal(rec)
		if err != nil {
			return dErrors.Wrap(dErrors.CodeInternal, "encode decision record", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, goredis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}
		out = rec
		return nil
	}

	for i := 0; i < 3; i++ {
		err := s.client.Watch(ctx, txn, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			var dErr *dErrors.Error
			if errors.As(err, &dErr) {
				return Record{}, err
			}
			return Record{}, dErrors.Wrap(dErrors.CodeUnavailable, "decision store unavailable", err)
		}
		return out, nil
	}
	return Record{}, dErrors.New(dErrors.CodeConflict, "decision update contention, retry")
}
