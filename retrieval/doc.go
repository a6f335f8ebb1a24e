// Package retrieval is the phase-retrieval engine.
//
// A solve takes a measurement operator A, magnitudes b0 = |A·x| and an
// Options record, and iterates an algorithm-specific update until the stop
// rule fires or the iteration cap is hit:
//
//	Initializing ──► Iterating ──► Converged
//	      │              │ ├─────► MaxIterationsReached
//	      └──────────────┴─┴─────► Failed
//
// Algorithms are strategies looked up by name in a registry (Register); the
// built-in ones are Fienup, Gerchberg–Saxton, Gauss–Newton, Wirtinger flow
// and amplitude flow. Initial estimates come from InitialEstimate (custom,
// spectral, truncated spectral). Per-iteration diagnostics are returned as
// *Outs; progress can be logged through zap and outcomes exported as
// Prometheus metrics.
//
// Stop rule (StopNow): elapsed ≥ MaxTime, else reconstruction error < Tol
// when a true signal is supplied, else residual < Tol.
package retrieval
