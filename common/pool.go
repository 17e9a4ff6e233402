package common

import (
  "context"
  "database/sql"
  "errors"
  "strconv"
  "strings"
  "sync"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/nats-io/nats.go"
  "github.com/rs/xid"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
)

var (
  dbPool *sql.DB
)

type ApiContext struct {
  Db  *gorm.DB
  Rdb *redis.Client
  Ctx context.Context
  Mux sync.Mutex
}

type NatsContext struct {
  Db       *gorm.DB
  Rdb      *redis.Client
  Ctx      context.Context
  Conn     *nats.Conn
  Settings *Settings
}

type AnsqServerContext struct {
  Db       *gorm.DB
  Rdb      *redis.Client
  Ctx      context.Context
  Mux      *asynq.ServeMux
  Nats     *nats.Conn
  Settings *Settings
}

type AnsqClientContext struct {
  Db   *gorm.DB
  Rdb  *redis.Client
  Ctx  context.Context
  Conn *asynq.Client
  Nats *nats.Conn
}

type Mutex struct {
  rdb   *redis.Client
  ctx   context.Context
  key   string
  value string
}

func NewRedis() *redis.Client {
  return redis.NewClient(&redis.Options{
    Addr:     GetEnvString("REDIS_HOST"),
    Password: GetEnvString("REDIS_PASSWORD"),
    DB:       GetEnvInt("REDIS_DB"),
  })
}

func NewDBPool() *sql.DB {
  if dbPool == nil {
    dsn := GetEnvString("DB_DSN")
    pool, err := sql.Open("pgx", dsn)
    if err != nil {
      panic(err)
    }
    pool.SetMaxIdleConns(10)
    pool.SetMaxOpenConns(20)
    pool.SetConnMaxLifetime(5 * time.Minute)
    dbPool = pool
  }
  return dbPool
}

func NewDB() *gorm.DB {
  db, err := gorm.Open(postgres.New(postgres.Config{
    Conn: NewDBPool(),
  }), &gorm.Config{})
  if errors.Is(err, context.DeadlineExceeded) {
    return NewDB()
  }
  if err != nil {
    panic(err)
  }
  return db
}

func NewAsynqServer() *asynq.Server {
  rdb := asynq.RedisClientOpt{
    Addr: GetEnvString("ASYNQ_REDIS_ADDR"),
    DB:   GetEnvInt("ASYNQ_REDIS_DB"),
  }
  queues := make(map[string]int)
  for _, item := range GetEnvArray("ASYNQ_QUEUE") {
    data := strings.Split(item, ",")
    weight := 1
    if len(data) > 1 {
      weight, _ = strconv.Atoi(data[1])
    }
    queues[data[0]] = weight
  }
  concurrency := GetEnvInt("ASYNQ_CONCURRENCY")
  if concurrency < 1 {
    // collectors share one search API rate limit
    concurrency = 1
  }
  return asynq.NewServer(rdb, asynq.Config{
    Concurrency: concurrency,
    Queues:      queues,
  })
}

func NewAsynqClient() *asynq.Client {
  return asynq.NewClient(asynq.RedisClientOpt{
    Addr: GetEnvString("ASYNQ_REDIS_ADDR"),
    DB:   GetEnvInt("ASYNQ_REDIS_DB"),
  })
}

func NewNats() *nats.Conn {
  url := GetEnvString("NATS_URL")
  if url == "" {
    url = nats.DefaultURL
  }
  nc, err := nats.Connect(url, nats.Token(GetEnvString("NATS_TOKEN")))
  if err != nil {
    panic(err)
  }
  return nc
}

func NewMutex(
  rdb *redis.Client,
  ctx context.Context,
  key string,
) *Mutex {
  return &Mutex{
    rdb:   rdb,
    ctx:   ctx,
    key:   key,
    value: xid.New().String(),
  }
}

func (m *Mutex) Lock(ttl time.Duration) bool {
  result, err := m.rdb.SetNX(
    m.ctx,
    m.key,
    m.value,
    ttl,
  ).Result()
  if err != nil {
    return false
  }
  return result
}

func (m *Mutex) Unlock() {
  script := redis.NewScript(`
  if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
  else
    return 0
  end
  `)
  script.Run(m.ctx, m.rdb, []string{m.key}, m.value).Result()
}
