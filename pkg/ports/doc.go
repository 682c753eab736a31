/*
Package ports defines the driven ports (interfaces) for the Espalier generator.

These interfaces decouple the core logic from external implementations, allowing
the generator to work with various row sources and artifact backends.

# Key Interfaces

  - RowLoader: Responsible for loading the flat process table (e.g., from CSV or Memory).
  - ArtifactStore: Responsible for persisting and retrieving generated Artifacts.
*/
package ports
