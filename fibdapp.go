// Package fibdapp connects to an Ethereum node, binds a deployed Fibonacci
// contract and relays values to its read-only fib method.
//
// A Session is the unit of state. It is created empty, populated once by
// Bootstrap and then kept current by an AccountWatcher that polls the
// provider for the active accounts.
//
// # Basic Usage
//
//	artifact, err := fibdapp.LoadArtifactFile("build/contracts/Fibonacci.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := fibdapp.NewSession(fibdapp.WithLogger(logger))
//	defer session.Close()
//
//	connect := func(ctx context.Context) (fibdapp.Provider, error) {
//	    return fibdapp.DialProvider(ctx, "http://localhost:8545")
//	}
//	if err := session.Bootstrap(ctx, connect, artifact); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := session.Calculate(ctx, "10")
//
// # Bootstrap
//
// Bootstrap is strictly sequential: connect, read accounts, read the network
// id, resolve the deployment for that network, build the binding. An empty
// account list is not an error. A network without a deployment is not an
// error either; the binding is created without an address and the first
// call fails with ErrNoDeployment.
//
// # Account Polling
//
// The AccountWatcher re-reads the accounts on a fixed interval (one second by
// default) and replaces the stored list only when the primary account (the
// first entry) changes. Ticks are not serialized, so a slow read may overlap
// the next tick. The watcher is stopped by Session.Close or by cancelling the
// context handed to Bootstrap.
//
// # Calculations
//
// Calculate forwards the raw input string to fib. The string is only
// converted as far as ABI encoding requires; validation is left to the
// encoder and the contract. Failures are returned as *CallError and never
// replace the last result.
package fibdapp
