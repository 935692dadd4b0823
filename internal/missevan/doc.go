// Package missevan implements the retrieval collaborator for missevan.com:
// episode lists via the drama API and raw danmaku XML per sound id.
//
// Requests carry a browser user agent, use fixed timeouts, and retry
// transient failures (429 and 5xx responses, network errors) with bounded
// exponential backoff. The aggregator never issues concurrent requests, so
// the client performs no de-duplication.
package missevan
