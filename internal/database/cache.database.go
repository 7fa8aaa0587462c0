package database

import (
	"fmt"
	"renthub/config"

	"github.com/valkey-io/valkey-go"
)

type CacheClient = valkey.Client

// Valkey database index organization. Each index provides logical separation
// for a cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - miscellaneous caching (room availability, report snapshots)
	GENERAL_CACHE_INDEX = iota

	// SESSION_CACHE_INDEX (DB 1) - refresh token allow-list and auth session data
	SESSION_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - user profiles and email lookups
	USER_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 3) - pub/sub channel for cross-instance invalidation
	EVENTS_CACHE_INDEX
)

type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
	Events  CacheClient
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.ErrMsg("cache address or port is empty")
	}

	initAddress := []string{fmt.Sprintf("%s:%d", address, port)}

	clients := []struct {
		target *CacheClient
		index  int
		name   string
	}{
		{&s.Cache.General, GENERAL_CACHE_INDEX, "general"},
		{&s.Cache.Session, SESSION_CACHE_INDEX, "session"},
		{&s.Cache.User, USER_CACHE_INDEX, "user"},
		{&s.Cache.Events, EVENTS_CACHE_INDEX, "events"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: initAddress,
			SelectDB:    c.index,
		})
		if err != nil {
			return log.Err("failed to create valkey client", err, "cache", c.name)
		}
		*c.target = client
	}

	log.Info("Successfully initialized cache database")
	return nil
}
