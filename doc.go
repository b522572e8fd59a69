// Package roofserve provides a read-only file server for roofing materials data:
// a directory of product images and a single aggregated companies document,
// both published under a fixed URL prefix.
//
// The package never writes to the files it serves. Both resources are produced
// by an external process and may change or disappear at any time; every lookup
// is a single open attempt and absence maps to ErrNotFound.
//
// # Key Components
//
//   - Service: combines the image store and the companies document
//   - FileStorage: interface for sandboxed, read-only file access
//   - Document: interface for the single configured companies document
//   - IsValidPath: request path validation rejecting traversal and control characters
//
// # Example Usage
//
//	images := filesystem.NewFileStorage("output/images")
//	companies := filesystem.NewDocument("output/all-companies.json")
//
//	service, err := roofserve.NewService(images, companies)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	asset, content, err := service.Image(ctx, "shingles/asphalt.jpg")
//	if errors.Is(err, roofserve.ErrNotFound) {
//	    // 404
//	}
//	defer content.Close()
//
// See the http package for the HTTP surface and the filesystem package for the
// storage implementation.
package roofserve
