// Package router maps terminal paths to named routes and gates every
// navigation on the route's requirements.
//
// # Authorization
//
// Each navigation attempt resolves to exactly one Outcome:
//
//	requires auth, no credential         -> RedirectLogin
//	requires admin, no credential        -> RedirectLogin
//	requires admin, profile not loadable -> RedirectLogin
//	requires admin, role != admin        -> RedirectHome
//	otherwise                            -> Allow
//
// The authentication gate is always checked first. When an admin route is
// requested and no profile is cached, the Authorizer fetches it; this is the
// only blocking point of a navigation. Authorization never returns an
// error: every failure becomes a redirect, which is final for that attempt.
//
// # Paths
//
// Unknown paths redirect to Home. Segments written as ":name" in a route
// pattern capture one path segment into Location.Params.
package router
