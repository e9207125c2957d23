// # docgen
//
// `docgen` builds a Markdown reference from a hand-written template and the
// leading doc comments of the source files it names. It is the tool behind
// the per-file sections of the project README: each file documents itself
// in a `/* ... */` block at the top, and the README template only lists
// which files to pull in.
//
// ## Usage
//
//	docgen [flags] <template> <output>
//
// Examples:
//
//   - Regenerate the README from its template:
//
//     docgen docs/README.template.md README.md
//
//   - Pull in every utility file at once:
//
//     docgen -glob docs/README.template.md README.md
//
//   - Fail CI when the README was not regenerated:
//
//     docgen -check docs/README.template.md README.md
//
// ## Markers
//
// A template line containing `@parse(src/util/HexColor.swift)` is replaced by
// the same line with the marker swapped for `HexColor.swift`, followed by the
// body of the file's leading comment. The comment only counts when the file
// starts with a line holding just `/*`, then a blank line; it ends at a line
// holding just `*/`. Files that are missing or do not follow this layout
// contribute the header line only.
//
// With `-glob` the marker path may contain `*` wildcards. Each match gets its
// own header line and block, in the order the glob returns them. A pattern
// that matches nothing drops the line.
//
// ## Links
//
// Inside a block every file name with the link extension (`-ext`, default
// `swift`) becomes an anchor link: `Vector2.swift` turns into
// `[Vector2.swift](#vector2swift)`, which matches the heading anchors GitHub
// generates for the header lines.
//
// ## Supported Flags
//
//   - `-glob`, `-g`: expand `*` wildcards in marker paths.
//   - `-ext`: extension rewritten into anchor links.
//   - `-dir`, `-C`: resolve marker paths relative to a directory.
//   - `-config FILE`: YAML file providing `glob`, `extension` and `dir`
//     defaults. Flags given on the command line win.
//   - `-check`: compare instead of write; exit non-zero when stale.
//   - `-v`: log skipped sources and run statistics to stderr.
//
// The output path `-` writes to stdout.
//
// ## Shell Completion
//
//	docgen completion bash        # bash
//	docgen completion zsh         # zsh
//	docgen completion fish | source
//	docgen completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	docgen gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
