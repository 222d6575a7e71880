package test

import (
	"fmt"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	appapi "github.com/deenbuddy/minaret/internal/http/api/app/endpoints"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/redis"
)

const testSecret = "supersecret"

// dbAvailable gates every test that needs Postgres. The suite runs
// against TEST_DATABASE_URL and skips cleanly when it is not set.
var dbAvailable bool

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := db.InitTestDB("../migrations"); err != nil {
		fmt.Fprintf(os.Stderr, "integration DB unavailable, skipping DB tests: %v\n", err)
	} else {
		dbAvailable = true
	}

	if addr := os.Getenv("TEST_REDIS_ADDRESS"); addr != "" {
		redis.InitRedis(addr, "", "")
	}

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if !dbAvailable {
		t.Skip("TEST_DATABASE_URL not set, skipping")
	}
}

// setupRouter mounts the app surface the way cmd/server does, minus the
// pieces that need external services.
func setupRouter(store db.Store) *gin.Engine {
	r := gin.New()

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/app",
	},
		appapi.AuthPublicModule(testSecret, store),
		appapi.PrayerModule(prayer.NewProvider("local", ""), store, testSecret),
		appapi.QiblaModule(),
		appapi.CalendarModule(),
		appapi.GuidesModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/app",
		Auth:      true,
		SecretKey: testSecret,
	},
		appapi.AuthSessionModule(testSecret, store),
		appapi.SettingsModule(store),
		appapi.BookmarksModule(store),
		appapi.DhikrModule(store),
	)

	return r
}
