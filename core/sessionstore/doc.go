// Package sessionstore provides durable backends for the session store:
// Memory, File (any afero filesystem), Redis and an Encrypted decorator
// sealing records with XChaCha20-Poly1305.
//
//	storage, err := sessionstore.Open(cfg, afero.NewOsFs(), redisClient)
//	if err != nil {
//		return err
//	}
//	store, err := session.New(ctx, storage)
package sessionstore
