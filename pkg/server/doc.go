// Package server exposes the mind map pipeline over HTTP.
//
// # Routes
//
//	POST   /v1/layout                      lay out a document without storing it
//	POST   /v1/maps                        store a document, returns its id
//	GET    /v1/maps/{id}                   fetch a stored document
//	PUT    /v1/maps/{id}                   replace document and options
//	DELETE /v1/maps/{id}                   delete a stored document
//	GET    /v1/maps/{id}/layout            lay out a stored document
//	POST   /v1/maps/{id}/collapse/{node}   toggle collapse of one node
//	DELETE /v1/maps/{id}/collapse          expand every node
//	GET    /healthz                        liveness and build info
//
// Layout endpoints accept a format query parameter (json, svg, dot,
// dot-svg, png, pdf); json is the default and returns a [mindmap.Layout].
//
// Errors are JSON objects {"error", "code"} where code is the
// [errors.Code] of the failure. Validation and measurement failures map
// to 422, malformed requests to 400 and unknown ids to 404.
//
// [mindmap.Layout]: github.com/matzehuels/mindmap/pkg/mindmap.Layout
// [errors.Code]: github.com/matzehuels/mindmap/pkg/errors.Code
package server
