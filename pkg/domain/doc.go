/*
Package domain contains the core domain models for the Espalier generator.

It defines the fundamental entities of the pipeline tree, such as Rows, Nodes
and generated Artifacts. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Row: One record of the flat process table (process, label, module, params).
  - Node: A process in the resolved tree, linked to its parent and children.
  - Artifact: The rendered output of a generation run (named files + hierarchy).
*/
package domain
