// Package tabfile reads declarative table descriptions into a [table.Table].
//
// A table file lists columns, rows and groups. It is written in TOML or JSON;
// the format follows the file extension:
//
//	[table]
//	width = 60
//	maxout = true
//
//	[[columns]]
//	name  = "NAME"
//	flags = ["tree"]
//
//	[[columns]]
//	name  = "SIZE"
//	hint  = 6
//	flags = ["right"]
//
//	[[rows]]
//	id    = "sda"
//	cells = { NAME = "sda", SIZE = "931.5G" }
//
//	[[rows]]
//	id     = "sda1"
//	parent = "sda"
//	cells  = { NAME = "sda1", SIZE = "512M" }
//
//	[[groups]]
//	name    = "raid"
//	members = ["sda", "sda1"]
//
// # Hints
//
// A column hint is a single number: a value below one is a fraction of the
// target width, anything else a character count (see [table.ParseHint]).
//
// # Rows and Groups
//
// Rows are listed in tree order; a parent must appear before its children.
// Row IDs are only needed for rows that are referenced as a parent or group
// member. A group is closed at its last listed member unless it is declared
// open, in which case its span runs to the end of the table.
//
// # Usage
//
//	tb, err := tabfile.ReadFile(ctx, "disks.toml")
//	if err != nil {
//	    return err
//	}
//	res, err := layout.Calculate(ctx, tb, nil)
package tabfile
