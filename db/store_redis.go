package db

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DCSO/hostnamer/types"

	"github.com/buger/jsonparser"
	"github.com/gomodule/redigo/redis"
	log "github.com/sirupsen/logrus"
)

// RedisStore is a Store keeping a sheet in Redis. The header is stored as a
// JSON array of strings in <Key>:header, the data rows as JSON arrays in the
// list <Key>:rows, in row order.
type RedisStore struct {
	Pool   *redis.Pool
	Key    string
	Logger *log.Entry
}

func (s *RedisStore) headerKey() string {
	return s.Key + ":header"
}

func (s *RedisStore) rowsKey() string {
	return s.Key + ":rows"
}

// MakeRedisStore returns a new RedisStore connecting to the given address
// via the given protocol ("tcp" or "unix").
func MakeRedisStore(proto, addr, key string) *RedisStore {
	l := log.WithFields(log.Fields{
		"domain": "store",
		"store":  "redis",
		"key":    key,
	})
	return &RedisStore{
		Pool: &redis.Pool{
			MaxIdle:     5,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				c, err := redis.Dial(proto, addr)
				l.Debugf("dialing %s... result: %v", addr, err == nil)
				return c, err
			},
		},
		Key:    key,
		Logger: l,
	}
}

func decodeRecord(b []byte) ([]string, error) {
	out := make([]string, 0)
	var innerErr error
	_, err := jsonparser.ArrayEach(b, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if innerErr != nil {
			return
		}
		switch dataType {
		case jsonparser.String:
			s, perr := jsonparser.ParseString(value)
			if perr != nil {
				innerErr = perr
				return
			}
			out = append(out, s)
		case jsonparser.Null:
			out = append(out, "")
		default:
			out = append(out, string(value))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, innerErr
}

// Load replaces the sheet under the store's key with the given header and
// rows.
func (s *RedisStore) Load(header types.Header, rows [][]string) error {
	conn := s.Pool.Get()
	defer conn.Close()
	hb, err := json.Marshal([]string(header))
	if err != nil {
		return err
	}
	if err = conn.Send("MULTI"); err != nil {
		return err
	}
	conn.Send("DEL", s.headerKey(), s.rowsKey())
	conn.Send("SET", s.headerKey(), hb)
	for _, r := range rows {
		rb, err := json.Marshal(r)
		if err != nil {
			conn.Do("DISCARD")
			return err
		}
		conn.Send("RPUSH", s.rowsKey(), rb)
	}
	_, err = conn.Do("EXEC")
	return err
}

// Header returns the decoded header record.
func (s *RedisStore) Header() (types.Header, error) {
	conn := s.Pool.Get()
	defer conn.Close()
	b, err := redis.Bytes(conn.Do("GET", s.headerKey()))
	if err == redis.ErrNil {
		return nil, fmt.Errorf("no header stored at %s", s.headerKey())
	}
	if err != nil {
		return nil, err
	}
	h, err := decodeRecord(b)
	if err != nil {
		return nil, fmt.Errorf("invalid header at %s: %w", s.headerKey(), err)
	}
	return types.Header(h), nil
}

// Rows returns all decoded data rows.
func (s *RedisStore) Rows() ([][]string, error) {
	conn := s.Pool.Get()
	defer conn.Close()
	vals, err := redis.ByteSlices(conn.Do("LRANGE", s.rowsKey(), 0, -1))
	if err != nil && err != redis.ErrNil {
		return nil, err
	}
	out := make([][]string, 0, len(vals))
	for i, v := range vals {
		r, err := decodeRecord(v)
		if err != nil {
			return nil, fmt.Errorf("invalid row %d at %s: %w", i+1, s.rowsKey(), err)
		}
		out = append(out, r)
	}
	return out, nil
}

// WriteRow overwrites the leading cells of list element rowNumber-1 with
// values. Cells beyond len(values) are kept.
func (s *RedisStore) WriteRow(rowNumber int, values []string) error {
	if rowNumber < 1 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowNumber)
	}
	conn := s.Pool.Get()
	defer conn.Close()
	cur, err := redis.Bytes(conn.Do("LINDEX", s.rowsKey(), rowNumber-1))
	if err == redis.ErrNil {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowNumber)
	}
	if err != nil {
		return err
	}
	old, err := decodeRecord(cur)
	if err != nil {
		return fmt.Errorf("invalid row %d at %s: %w", rowNumber, s.rowsKey(), err)
	}
	b, err := json.Marshal(mergeRecord(old, values))
	if err != nil {
		return err
	}
	_, err = conn.Do("LSET", s.rowsKey(), rowNumber-1, b)
	if err != nil {
		if rerr, ok := err.(redis.Error); ok && rerr.Error() == "ERR index out of range" {
			return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowNumber)
		}
		return err
	}
	return nil
}

// Finish closes the connection pool.
func (s *RedisStore) Finish() error {
	return s.Pool.Close()
}
