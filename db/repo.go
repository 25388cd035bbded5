package db

import (
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/go-redis/redis"

	"github.com/cbsinteractive/clip-trimmer/config"
	"github.com/cbsinteractive/clip-trimmer/job"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

const (
	jobPrefix = "cut:"
	jobIndex  = "cuts"
)

// Repository stores cut jobs
type Repository interface {
	Put(j *job.Job) error
	Get(id string) (*job.Job, error)
	List(limit int) ([]*job.Job, error)
	Delete(id string) error
}

func NewClient(cfg config.Redis) *Client {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		addr = net.JoinHostPort(addr, "6379")
	}
	return &Client{
		rc: redis.NewClient(&redis.Options{
			Addr:     addr,
			DB:       cfg.DB,
			Password: cfg.Password,
			PoolSize: cfg.PoolSize,
		}),
	}
}

// Client is a Repository backed by Redis. Jobs are stored as JSON under
// cut:<id> and indexed by creation time in a sorted set.
type Client struct {
	rc *redis.Client
}

func (c *Client) Ping() error {
	return c.rc.Ping().Err()
}

func (c *Client) Close() error {
	return c.rc.Close()
}

func (c *Client) Put(j *job.Job) error {
	data, err := json.Marshal(j)
	if err != nil {
		return err
	}
	_, err = c.rc.TxPipelined(func(p redis.Pipeliner) error {
		p.Set(jobPrefix+j.ID, data, exp)
		p.ZAdd(jobIndex, redis.Z{Score: float64(j.CreatedAt.UnixNano()), Member: j.ID})
		return nil
	})
	return err
}

func (c *Client) Get(id string) (*job.Job, error) {
	val, err := c.rc.Get(jobPrefix + id).Result()
	if err == redis.Nil {
		return nil, ErrJobNotFound
	} else if err != nil {
		return nil, err
	}
	j := &job.Job{}
	if err := json.Unmarshal([]byte(val), j); err != nil {
		return nil, err
	}
	return j, nil
}

// List returns up to limit jobs, newest first. Index entries whose job
// has expired are skipped.
func (c *Client) List(limit int) ([]*job.Job, error) {
	if limit <= 0 {
		return nil, nil
	}
	ids, err := c.rc.ZRevRange(jobIndex, 0, int64(limit-1)).Result()
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = jobPrefix + id
	}
	vals, err := c.rc.MGet(keys...).Result()
	if err != nil {
		return nil, err
	}
	jobs := make([]*job.Job, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		j := &job.Job{}
		if err := json.Unmarshal([]byte(s), j); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (c *Client) Delete(id string) error {
	_, err := c.rc.TxPipelined(func(p redis.Pipeliner) error {
		p.Del(jobPrefix + id)
		p.ZRem(jobIndex, id)
		return nil
	})
	return err
}

var exp = 24 * time.Hour * 365 * 10
