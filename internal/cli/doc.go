// Package cli assembles the regexcommit command tree.
package cli
