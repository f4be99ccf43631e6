/*
Package nain is the root of a small game engine runtime built around typed, named event buses.

  - events holds the bus registry, the dispatch and subscribe operations, the deferred event queue, and the engine event taxonomy.
  - window translates native window and input notifications into engine events.
  - app runs the frame loop, and composes an application from layers.
  - eventmetrics reports bus activity through OpenTelemetry.
  - config and logging set up the ambient runtime from flags, environment, and YAML.

The sandbox command under cmd/sandbox wires these together against a headless window.
*/
package nain
