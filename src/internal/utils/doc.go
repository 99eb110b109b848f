// Package utils holds small helpers shared by the config, fetch and commands packages.
package utils
