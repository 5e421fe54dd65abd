// Package shutdown coordinates graceful termination of kvmesh-server.
//
// Hooks registered with OnShutdown run in reverse order after SIGINT,
// SIGTERM or an explicit Trigger, sharing one timeout-bound context:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
