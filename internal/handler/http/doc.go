// Package http serves the REST API of the todo sync server on a chi router.
//
//	POST   /api/auth/register   open an account, token in Authorization
//	POST   /api/auth/login      sign in, token in Authorization
//	GET    /api/version/        build version, used as a connectivity probe
//	POST   /api/tasks           create a task, idempotent on client_ref
//	PUT    /api/tasks/{id}      replace a task
//	DELETE /api/tasks/{id}      delete a task
//	POST   /api/sync            exchange changes since last_sync_at
//
// Task routes require a bearer token and name the calling device in
// X-Device-ID. Every request gets a trace id echoed in X-Trace-ID.
package http
