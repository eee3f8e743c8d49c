// Package catalog loads id sets (cards, relics, potions...) from a yaml,
// toml or json file and serves them as ports.IDSource values. The file can
// be watched for changes, so autocomplete follows edits without a restart.
package catalog
