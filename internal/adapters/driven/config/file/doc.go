// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps settings in a TOML file under ~/.flamesearch. Keys are
// addressed with dot notation ("search.fuzzy_threshold") and written back
// as nested tables.
package file
