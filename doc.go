// Package dockerenv runs throwaway Docker containers for integration
// tests: declare an image, run it, wait until it is ready, talk to it
// through resolved host ports, and have it removed when the test is done.
//
// # Basic Usage
//
//	import "github.com/giantswarm/dockerenv"
//
//	ctx := context.Background()
//
//	client, err := dockerenv.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	img := dockerenv.NewImage("redis:7-alpine").
//	    WithExposedPort(6379).
//	    WithWaitFor(dockerenv.ForLog("Ready to accept connections"))
//
//	redis, err := client.Run(ctx, img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer redis.Terminate(ctx) // Returns nil on success; safe to ignore in defer
//
//	port, err := redis.MappedPort(ctx, 6379)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Connect to 127.0.0.1:port...
//
// # Readiness
//
// An image carries an ordered list of wait strategies that Run evaluates
// after starting the container: ForLog blocks until a log line contains a
// substring, ForHealthcheck polls the image's HEALTHCHECK until it turns
// healthy, ForDuration sleeps a fixed interval, and ForNothing returns
// immediately (the default). Run returns the container handle only once
// every strategy has passed.
//
// # Cleanup
//
// Terminate releases a container exactly once; handles that are dropped
// without Terminate are removed by a garbage-collection safety net, at a
// nondeterministic time. Setting DOCKERENV_CLEANUP=keep leaves containers
// and created networks behind for post-mortem inspection.
package dockerenv
