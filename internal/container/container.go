package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/config"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *gorm.DB
	redisClient *redis.Client
	clock       helpers.Clock = helpers.SystemClock{}

	jwtManager *helpers.JWTManager
	hasher     *helpers.PasswordHasher

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetDB(d *gorm.DB)                        { db = d }
func GetDB() *gorm.DB                         { return db }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetClock(c helpers.Clock)                { clock = c }
func GetClock() helpers.Clock                 { return clock }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func GetJWT() *helpers.JWTManager             { return jwtManager }
func SetHasher(h *helpers.PasswordHasher)     { hasher = h }
func GetHasher() *helpers.PasswordHasher      { return hasher }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
