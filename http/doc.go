// Package http provides the HTTP surface of roofserve.
//
// All routes are read-only and live under a configurable prefix
// (DefaultPrefix, "/RoofingMaterials"):
//
//	GET /                                  informational HTML page
//	GET /RoofingMaterials/Images/{path}    image bytes, content type by extension
//	GET /RoofingMaterials/all-companies.json
//	                                       the companies document as application/json
//
// # Features
//
//   - Unrestricted cross-origin policy on every response, including errors
//   - Path traversal protection (request validation plus os.Root sandboxing)
//   - Range and conditional requests through http.ServeContent
//   - Request IDs, per-request logging and panic recovery
//   - Explicit Server lifecycle with graceful shutdown
//
// # Errors
//
// A missing or rejected image is a 404 with a JSON error body. A missing
// companies document is a 404 with the body
//
//	{"error": "all-companies.json file not found"}
//
// Any other path is a 404 with a minimal HTML page. Methods other than GET and
// HEAD on a defined route are a 405.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{Port: 3000}, service)
//	server := http.NewServer(http.ServerConfig{Port: 3000}, handler.Router())
//	if err := server.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
package http
