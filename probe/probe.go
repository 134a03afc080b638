package probe

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Func is a readiness or liveness check. It returns nil while the dependency
// is usable.
type Func func(ctx context.Context) error

// PingFunc reaches a dependency and reports whether it answered.
type PingFunc func(ctx context.Context) error

// DBPinger is the part of *sql.DB a probe needs.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// MongoPinger is the part of *mongo.Client a probe needs.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// NewPingProbe turns fn into a Func named name.
func NewPingProbe(name string, fn PingFunc) Func {
	if fn == nil {
		return broken(name, "ping function")
	}
	return guarded(name, fn)
}

// NewDBPingProbe pings a database/sql style client such as PostgreSQL.
func NewDBPingProbe(name string, db DBPinger) Func {
	if db == nil {
		return broken(name, "db client")
	}
	return guarded(name, db.PingContext)
}

// NewMongoPingProbe pings MongoDB with readPref, readpref.Primary when nil.
func NewMongoPingProbe(client MongoPinger, readPref *readpref.ReadPref) Func {
	const name = "mongo"
	if client == nil {
		return broken(name, "client")
	}
	if readPref == nil {
		readPref = readpref.Primary()
	}
	return guarded(name, func(ctx context.Context) error {
		return client.Ping(ctx, readPref)
	})
}

func guarded(name string, fn PingFunc) Func {
	return func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if err := fn(ctx); err != nil {
			return unavailable(name, err, name+" probe failed")
		}
		return nil
	}
}
