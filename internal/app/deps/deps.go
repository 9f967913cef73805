package deps

import (
	"context"
	"credstore/internal/config"
	"credstore/internal/core/domain/credential"
	dl "credstore/internal/core/domain/logging"
	drl "credstore/internal/core/domain/rate_limiter"
	"credstore/internal/core/domain/record"
	duow "credstore/internal/core/domain/unit_of_work"
	"credstore/internal/db/migrations"
	dbrecord "credstore/internal/db/record"
	uow "credstore/internal/db/unit_of_work"
	"credstore/internal/implementations/identity"
	"credstore/internal/implementations/logging"
	ratelimiter "credstore/internal/implementations/rate_limiter"
	secretderiver "credstore/internal/implementations/secret_deriver"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now func() time.Time

	UnitOfWork         duow.UnitOfWork
	PasswordEntryStore record.Store[credential.ResetToken]

	RateLimiter drl.RateLimiter

	SecretDeriver     credential.SecretDeriver
	IdentityGenerator credential.IdentityGenerator
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB, deps.Config.RollbackTimeout)
	deps.PasswordEntryStore = dbrecord.NewPgxResetTokenStore(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.SecretDeriver = deps.initSecretDeriver()
	deps.IdentityGenerator = identity.NewUUID()

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if err := migrations.Up(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "DB migrations applied.")
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initSecretDeriver() credential.SecretDeriver {
	cfg := deps.Config
	if cfg.SecretDeriver == config.SecretDeriverArgon2id {
		deriver, err := secretderiver.NewArgon2id(secretderiver.Argon2Config{
			Memory:      cfg.Argon2Memory,
			Time:        cfg.Argon2Time,
			Parallelism: cfg.Argon2Parallelism,
			SaltLength:  cfg.Argon2SaltLength,
			KeyLength:   cfg.Argon2KeyLength,
		})
		if err != nil {
			deps.Logger.Error(context.Background(), "Invalid Argon2 parameters.", dl.Entry("err", err))
			panic(err)
		}
		return deriver
	}
	return secretderiver.NewPBKDF2(cfg.PBKDF2Iterations, cfg.PBKDF2KeyLength, cfg.PBKDF2SaltLength)
}
