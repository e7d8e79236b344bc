// Package wizard provides an interactive selection wizard for aks-storage.
//
// It uses charmbracelet/huh forms to ask for the run's group, region and use
// case selection. Answers are merged into the viper instance the CLI loads
// its configuration from, or written to a YAML file that --config accepts.
package wizard
