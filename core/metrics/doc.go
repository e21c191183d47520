// Package metrics provides the Prometheus collectors of the client: session
// persistence outcomes, the signed-in gauge, remote call latency and HTTP
// request counts. *Metrics satisfies session.Observer and rpc.Observer.
package metrics
