package tester

import (
	"os"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/draftloom/manuscript/internal/cache"
	"github.com/draftloom/manuscript/internal/model"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
)

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"/db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(testPath+"db/manuscript.db"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

// MemoryDB opens a fresh in-memory sqlite database with the schema applied.
// Each call gets its own database; the shared cache keeps it alive across the
// pooled connections of one *gorm.DB.
func MemoryDB() *gorm.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	mem, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := model.Migrate(mem); err != nil {
		panic(err)
	}
	return mem
}

func RemoveDBFile() {
	err := os.RemoveAll(testPath)
	if err != nil {
		panic(err)
	}
}

// StatusCache returns a status cache backed by an in-process miniredis.
func StatusCache() *cache.StatusCache {
	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		panic(err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewStatusCacheFromClient(client)
}
