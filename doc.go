// Package uploadkit provides a storage-agnostic file attachment toolkit.
//
// The package is built around three pieces:
//
//   - Storage: the narrow contract a backend must implement
//     (upload/open/exists/delete/url). Backends for the local filesystem,
//     memory, S3 and Redis live in pkg/storage.
//   - UploadedFile: a lightweight handle over a stored file. It carries the
//     storage name, the storage key and the extracted metadata, delegates IO
//     to the backend, and serializes to a compact JSON record suitable for a
//     database column.
//   - Uploader: the upload pipeline. It resolves the backend from a Registry,
//     generates a unique location, captures metadata and returns the
//     UploadedFile handle.
//
// Validation of uploaded files (size, dimension and type constraints) lives
// in pkg/validate and operates purely on the metadata accessors exposed by
// UploadedFile.
//
// Basic Usage:
//
//	reg := uploadkit.NewRegistry()
//	reg.Register("store", mustLocal("/var/uploads", "/files/"))
//
//	uploader := uploadkit.NewUploader(reg)
//	f, err := uploader.Upload(ctx, r, "store",
//		uploadkit.WithFilename("report.pdf"),
//		uploadkit.WithMIMEType("application/pdf"),
//	)
//	if err != nil {
//		return err
//	}
//
//	data, _ := json.Marshal(f) // {"id":"...","storage":"store","metadata":{...}}
//
// Later, rebuild the handle from the persisted record and read it back:
//
//	f, err := reg.File(data)
//	if err != nil {
//		return err
//	}
//	if err := f.Open(ctx); err != nil {
//		return err
//	}
//	defer f.Close()
//	io.Copy(dst, f)
package uploadkit
