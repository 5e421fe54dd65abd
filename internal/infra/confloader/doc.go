// Package confloader loads kvmesh configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Defaults supplied as a flat map of dotted keys
//  2. A YAML configuration file
//  3. Dotenv files (.env, .env.local) which only fill unset variables
//  4. KVMESH_* environment variables
//
// Watcher reports writes to configuration files so that callers can reload
// the settings that are safe to change at runtime.
package confloader
