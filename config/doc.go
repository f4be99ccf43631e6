/*
Package config loads the runtime configuration for an application.

Values are layered, with later sources overriding earlier ones:
  - [Default] values.
  - A YAML file named with the --config flag.
  - Environment variables with the [EnvPrefix], such as NAIN_BUS or NAIN_WINDOW_WIDTH. Keys are compared case-insensitive.
  - Command line flags that were explicitly set.

Use [RegisterFlags] on a [pflag.FlagSet] and then [Load] after parsing.

[pflag.FlagSet]: https://pkg.go.dev/github.com/spf13/pflag#FlagSet
*/
package config
