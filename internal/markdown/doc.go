// Package markdown implements the structured-markdown synchronization engine
// for knowledge entries. It keeps a free-form Markdown document and a set of
// typed, named fields mutually consistent through line-addressable rewrites:
// frontmatter insertion, H1 title replacement, and H2 section updates. Every
// operation is a pure string transformation that leaves untouched regions of
// the document byte-identical.
package markdown
