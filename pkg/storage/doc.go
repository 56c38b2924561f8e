// Package storage provides backends implementing the uploadkit.Storage
// contract: local filesystem, in-memory, Amazon S3 (and S3-compatible
// services) and Redis.
//
// Backends store opaque content under forward-slash keys generated by the
// uploader. All backends are safe for concurrent use.
//
// # Choosing a backend
//
//   - Local: filesystem storage confined to a base directory, serving files
//     through a static route or reverse proxy.
//   - Memory: tests and ephemeral environments.
//   - S3: durable object storage; works with MinIO/Wasabi via a custom
//     endpoint and path-style addressing.
//   - Redis: short-lived cache storage with TTL, for uploads awaiting
//     promotion to a permanent backend.
//
// # Usage
//
//	local, err := storage.NewLocal("/var/uploads", "/files/")
//	if err != nil {
//		return err
//	}
//
//	s3store, err := storage.NewS3(ctx, storage.S3Config{
//		Bucket: "uploads",
//		Region: "us-east-1",
//	})
//	if err != nil {
//		return err
//	}
//
//	reg := uploadkit.NewRegistry()
//	reg.Register("cache", storage.NewMemory())
//	reg.Register("store", s3store)
//
// Configuration structs carry `env` tags; the FromEnv constructors load them
// through pkg/config (godotenv + caarlos0/env).
//
// # Error Handling
//
// Backends classify failures into the package sentinel errors so callers can
// branch with errors.Is:
//
//	_, err := backend.Open(ctx, id)
//	if errors.Is(err, storage.ErrNotFound) {
//		// stored content is gone
//	}
package storage
