// Package auth resolves who is making a request and what they may do.
//
// A request is authenticated by exactly one of two middlewares: the front
// end uses a session cookie (SessionMiddleware), the REST API uses an
// X-Api-Key / X-Api-Secret header pair (KeyMiddleware). Both attach a
// *Context to the request. When no identity resolves, the context carries
// the anonymous permissions derived from the publicReadAccess setting.
//
// Routes are then guarded with Require, which rejects requests whose
// permissions lack a level.
package auth
