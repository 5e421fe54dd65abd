// Package command defines the kvmesh-cli commands on urfave/cli/v2.
//
// Each of ping, echo, set and get sends one request and prints the reply
// in the selected output format. Running without a subcommand, or with
// repl, starts the interactive loop. Settings come from flags, then
// KVMESH_SERVER, then ~/.kvmesh/cli.yaml.
package command
