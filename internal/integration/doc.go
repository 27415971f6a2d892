// Package integration models integration test configuration and loads it
// from disk.
//
// # Layout
//
// Each integration lives in its own directory under the repository's
// scripts/integration directory:
//
//	scripts/integration/
//	    kafka/test.yaml
//	    redis/test.yaml
//
// # Configuration
//
//	args: [--features, kafka-integration-tests, --lib, "::kafka::"]
//	env:
//	  KAFKA_HOST: kafka
//	  AWS_PROFILE:            # passthrough
//	runner:
//	  env:
//	    RUST_LOG: info
//	  volumes:
//	    /certs: tests/data/ca  # target: source
//	  needs_docker_socket: false
//	matrix:
//	  version: ["2.8", "3.5"]
//
// Environments are the cartesian product of the matrix, in declaration
// order. Each is named by its values joined with "-" ("2.8", "3.5" above)
// and carries the matrix variables as environment overrides.
//
// # Loading
//
// Loader composes three collaborators: a Resolver that locates and reads
// the source for a name, a Parser that decodes it, and an Enumerator that
// lists every known integration. DirSource and YAMLParser are the on-disk
// implementations.
//
//	loader := integration.NewLoader(paths.IntegrationsDir)
//	dir, cfg, err := loader.Load("kafka")
//	entries, err := loader.CollectAll()
package integration
