// Package redis connects a go-redis client with startup retries and exposes
// a readiness check.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	check := redis.Healthcheck(client)
//
// Connect verifies connectivity with PING before returning, retrying with
// exponential backoff. Errors can be matched with errors.Is against the
// package's sentinel errors.
package redis
