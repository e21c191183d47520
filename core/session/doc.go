// Package session holds the client's persisted authentication state.
//
// A Store owns exactly one Session for the whole process. It is hydrated
// from a Storage backend once at startup and written through on every
// mutation, so the durable record always matches the last committed state:
//
//	store, err := session.New(ctx, sessionstore.NewMemory(), session.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	_ = store.SetAuth(ctx, &session.User{ID: "u1", Name: "Ann"}, access, refresh)
//	store.Session().IsAuthenticated // true
//
// The durable record is a JSON envelope stored under a single key
// ("auth-storage" by default):
//
//	{"state":{"accessToken":"..","refreshToken":"..","isAuthenticated":true,"user":{..}},"version":0}
//
// A write-through failure does not roll back the in-memory state. It is
// logged, reported to the Observer and surfaced by LastPersistError and
// Healthcheck.
//
// Logout always wins over an in-flight login: ClearAuth advances the
// generation and SetAuthIfCurrent refuses to apply a login started under an
// older one.
package session
